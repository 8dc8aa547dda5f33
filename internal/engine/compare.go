package engine

import (
	"context"

	"github.com/piwi3910/StickCut/internal/model"
)

// ComparisonScenario defines a named parameter set to compare.
type ComparisonScenario struct {
	Name   string
	Params model.CuttingParameters
}

// ComparisonResult holds the optimization result and headline statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario        ComparisonScenario
	Result          model.OptimizationResult
	SticksUsed      int
	TotalCuts       int
	Utilization     float64
	UnassignedUnits int
	Err             error
}

// CompareScenarios runs the same inputs under each scenario and returns the
// results in scenario order, enabling side-by-side comparison of parameter
// choices (kerf, tolerance, optimization priority, resaw).
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, inventory []model.LumberStock, parts []model.Part) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, sc := range scenarios {
		result, err := New(sc.Params).Optimize(ctx, inventory, parts)

		unassigned := 0
		for _, u := range result.Unassigned {
			unassigned += u.Quantity
		}

		results = append(results, ComparisonResult{
			Scenario:        sc,
			Result:          result,
			SticksUsed:      result.Summary.TotalSticks,
			TotalCuts:       result.Summary.TotalCuts,
			Utilization:     result.Summary.OverallUtilization,
			UnassignedUnits: unassigned,
			Err:             err,
		})
	}
	return results
}
