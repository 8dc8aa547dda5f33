package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/piwi3910/StickCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() model.CuttingParameters {
	p := model.DefaultParameters()
	// Simplify for testing: no kerf, no tolerance, keep every offcut
	p.Kerf = 0
	p.MinOffcut = 0
	p.Tolerance = 0
	p.EnforceGrain = false
	return p
}

func testStock(name string, l, w, t float64, qty int, cost float64) model.LumberStock {
	s := model.NewLumberStock(name, l, w, t, qty)
	s.CostPerUnit = cost
	return s
}

func TestOptimize_ExactFit_FiveParts(t *testing.T) {
	inventory := []model.LumberStock{testStock("2.5m board", 2500, 100, 20, 1, 5)}
	parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 5)}

	result, err := Optimize(context.Background(), inventory, parts, testParams())
	require.NoError(t, err)

	require.Len(t, result.Plans, 1)
	assert.Len(t, result.Plans[0].Cuts, 5)
	assert.Empty(t, result.Unassigned)
	assert.InDelta(t, 100.0, result.Plans[0].Utilization, 1e-9)
	assert.InDelta(t, 0.0, result.Plans[0].WasteVolume, 1e-6)
	// Four boundary cuts separate five pieces; the last piece ends at the
	// stick end and needs no cut.
	assert.Equal(t, 4, result.Plans[0].TotalCuts)
	assert.InDelta(t, 100.0, result.Summary.OverallUtilization, 1e-9)
	assert.True(t, result.Summary.Success)
}

func TestOptimize_PartTooBigForAnyStock(t *testing.T) {
	inventory := []model.LumberStock{testStock("Board", 2500, 100, 20, 3, 5)}
	parts := []model.Part{model.NewPart("Beam", 3000, 200, 50, 2)}

	result, err := Optimize(context.Background(), inventory, parts, testParams())
	require.NoError(t, err)

	assert.Empty(t, result.Plans)
	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, 2, result.Unassigned[0].Quantity)
	assert.Equal(t, model.ReasonNoMatchingMaterial, result.Unassigned[0].Reason)
	assert.True(t, result.Summary.Success, "a partial plan is still a successful run")
}

func TestOptimize_ShortTailBelowMinOffcutIsWaste(t *testing.T) {
	params := testParams()
	params.MinOffcut = 150

	inventory := []model.LumberStock{testStock("2m board", 2000, 100, 20, 1, 5)}
	parts := []model.Part{model.NewPart("Rail", 1900, 100, 20, 1)}

	result, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)

	require.Len(t, result.Plans, 1)
	plan := result.Plans[0]
	require.Len(t, plan.Cuts, 1)
	require.Len(t, plan.Offcuts, 1)
	assert.Equal(t, model.OffcutWaste, plan.Offcuts[0].Status)
	assert.InDelta(t, 100.0, plan.Offcuts[0].Length, 1e-9)
	assert.InDelta(t, 100*100*20.0, plan.WasteVolume, 1e-6)
}

func TestOptimize_HigherPriorityWinsContestedStick(t *testing.T) {
	inventory := []model.LumberStock{testStock("Board", 2000, 100, 20, 1, 5)}

	low := model.NewPart("Low", 1800, 100, 20, 1)
	low.Priority = 1
	high := model.NewPart("High", 1800, 100, 20, 1)
	high.Priority = 10

	result, err := Optimize(context.Background(), inventory, []model.Part{low, high}, testParams())
	require.NoError(t, err)

	require.Len(t, result.Plans, 1)
	require.Len(t, result.Plans[0].Cuts, 1)
	assert.Equal(t, "High", result.Plans[0].Cuts[0].PartName)
	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, "Low", result.Unassigned[0].PartName)
}

func TestOptimize_KerfReservedBetweenPlacements(t *testing.T) {
	params := testParams()
	params.Kerf = 3

	inventory := []model.LumberStock{testStock("Board", 1003, 100, 20, 1, 5)}
	parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 2)}

	result, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)

	require.Len(t, result.Plans, 1)
	plan := result.Plans[0]
	require.Len(t, plan.Cuts, 2)
	assert.InDelta(t, 0.0, plan.Cuts[0].X, 1e-9)
	assert.InDelta(t, 503.0, plan.Cuts[1].X, 1e-9, "second piece starts after the kerf")
	assert.Equal(t, 1, plan.TotalCuts)
	// The kerf slice is lost material.
	assert.InDelta(t, 3*100*20.0, plan.WasteVolume, 1e-6)
}

func TestOptimize_OffcutPromotedToVirtualStick(t *testing.T) {
	params := testParams()
	params.MinOffcut = 100

	inventory := []model.LumberStock{testStock("Board", 1000, 200, 20, 1, 8)}
	parts := []model.Part{
		model.NewPart("Wide", 900, 80, 20, 1),
		model.NewPart("Narrow", 800, 100, 20, 1),
	}

	result, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)
	require.Empty(t, result.Unassigned)
	require.Len(t, result.Plans, 2)

	first, second := result.Plans[0], result.Plans[1]
	assert.False(t, first.FromOffcut)
	assert.True(t, second.FromOffcut)
	assert.Equal(t, first.StickID, second.SourceStick)
	assert.Zero(t, second.CostPerUnit)
	assert.Equal(t, "Narrow", second.Cuts[0].PartName)

	// The virtual stick is free material: only the real board is billed and
	// only its volume enters the utilization denominator.
	assert.InDelta(t, 8.0, result.Summary.TotalCost, 1e-9)
	used := 900*80*20.0 + 800*100*20.0
	assert.InDelta(t, used/(1000*200*20.0)*100, result.Summary.OverallUtilization, 1e-6)
}

func TestOptimize_ResawUnlocksThicknessResidue(t *testing.T) {
	inventory := []model.LumberStock{testStock("Thick", 500, 100, 50, 1, 12)}
	parts := []model.Part{
		model.NewPart("Slab", 500, 100, 20, 1),
		model.NewPart("Thin", 450, 100, 25, 1),
	}

	params := testParams()
	params.MinOffcut = 20

	// Without resaw the thickness residue is dead material.
	result, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)
	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, "Thin", result.Unassigned[0].PartName)
	assert.Equal(t, model.ReasonNoMatchingMaterial, result.Unassigned[0].Reason)

	params.AllowResaw = true
	result, err = Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)
	assert.Empty(t, result.Unassigned)
	require.Len(t, result.Plans, 2)
	assert.True(t, result.Plans[1].FromOffcut)
	assert.Equal(t, "Thin", result.Plans[1].Cuts[0].PartName)
}

func TestOptimize_ToleranceShrinksNeverGrows(t *testing.T) {
	params := testParams()
	params.Tolerance = 2

	inventory := []model.LumberStock{testStock("Board", 2000, 100, 20, 1, 5)}
	parts := []model.Part{model.NewPart("Rail", 2000.5, 100, 20, 1)}

	result, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)

	require.Len(t, result.Plans, 1)
	cut := result.Plans[0].Cuts[0]
	assert.InDelta(t, 2000.0, cut.Length, 1e-9, "shrunk to the available span")
	assert.InDelta(t, 2000.5, cut.NominalLength, 1e-9)
	assert.LessOrEqual(t, cut.Length, cut.NominalLength)
	assert.LessOrEqual(t, cut.NominalLength-cut.Length, params.Tolerance)
}

func TestOptimize_ExceedsToleranceReason(t *testing.T) {
	params := testParams()
	params.Tolerance = 0.5

	inventory := []model.LumberStock{testStock("Board", 2000, 100, 20, 1, 5)}
	parts := []model.Part{model.NewPart("Rail", 2001, 100, 20, 1)}

	result, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)

	assert.Empty(t, result.Plans)
	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, model.ReasonExceedsTolerance, result.Unassigned[0].Reason)
}

func TestOptimize_GrainConflictReason(t *testing.T) {
	params := testParams()
	params.EnforceGrain = true

	inventory := []model.LumberStock{testStock("Board", 2000, 600, 20, 1, 5)}
	part := model.NewPart("Panel", 500, 1500, 20, 1)
	part.Rotations = model.RotateLengthWidth
	part.GrainAlongLength = true

	result, err := Optimize(context.Background(), inventory, []model.Part{part}, params)
	require.NoError(t, err)

	assert.Empty(t, result.Plans)
	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, model.ReasonGrainConflict, result.Unassigned[0].Reason)
}

func TestOptimize_RotationPlacesWhenGrainUnenforced(t *testing.T) {
	inventory := []model.LumberStock{testStock("Board", 2000, 600, 20, 1, 5)}
	part := model.NewPart("Panel", 500, 1500, 20, 1)
	part.Rotations = model.RotateLengthWidth

	result, err := Optimize(context.Background(), inventory, []model.Part{part}, testParams())
	require.NoError(t, err)

	require.Len(t, result.Plans, 1)
	cut := result.Plans[0].Cuts[0]
	assert.Equal(t, model.OrientLengthWidth, cut.Orientation)
	assert.InDelta(t, 1500.0, cut.Length, 1e-9)
	assert.InDelta(t, 500.0, cut.Width, 1e-9)
}

func TestOptimize_PlaningAbsorbsExtraThickness(t *testing.T) {
	params := testParams()
	params.AllowPlaning = true
	params.MaxPlaning = 5

	inventory := []model.LumberStock{testStock("Board", 500, 100, 20, 1, 5)}
	parts := []model.Part{model.NewPart("Shelf", 500, 100, 24, 1)}

	result, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)

	require.Len(t, result.Plans, 1)
	cut := result.Plans[0].Cuts[0]
	assert.InDelta(t, 20.0, cut.Thickness, 1e-9)
	assert.InDelta(t, 24.0, cut.NominalThickness, 1e-9)
}

func TestOptimize_StockSelectionByPriority(t *testing.T) {
	inventory := []model.LumberStock{
		testStock("Big cheap", 3000, 200, 50, 5, 1),
		testStock("Small pricey", 1000, 100, 20, 5, 10),
	}
	parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 1)}

	cases := []struct {
		priority model.OptimizationPriority
		want     string
	}{
		{model.PriorityEfficiency, "Small pricey"}, // smallest fitting volume
		{model.PriorityCost, "Big cheap"},          // cheapest fitting stick
		{model.PrioritySpeed, "Big cheap"},         // first fitting catalog row
	}

	for _, tc := range cases {
		params := testParams()
		params.Priority = tc.priority

		result, err := Optimize(context.Background(), inventory, parts, params)
		require.NoError(t, err)
		require.Len(t, result.Plans, 1, "priority %s", tc.priority)
		assert.Equal(t, tc.want, result.Plans[0].StockName, "priority %s", tc.priority)
	}
}

func TestOptimize_QuantityBound(t *testing.T) {
	SetDebugChecks(true)
	defer SetDebugChecks(false)

	params := model.DefaultParameters()
	params.EnforceGrain = false

	inventory := []model.LumberStock{
		testStock("Long", 2400, 150, 30, 3, 6),
		testStock("Short", 1200, 100, 20, 4, 3),
	}
	parts := []model.Part{
		model.NewPart("Rail", 900, 60, 20, 4),
		model.NewPart("Leg", 700, 70, 30, 4),
		model.NewPart("Slat", 400, 90, 18, 10),
		model.NewPart("Huge", 5000, 500, 100, 2),
	}

	result, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)

	assigned := map[string]int{}
	for _, plan := range result.Plans {
		for _, c := range plan.Cuts {
			assigned[c.PartID]++
		}
	}
	unassigned := map[string]int{}
	for _, u := range result.Unassigned {
		unassigned[u.PartID] += u.Quantity
	}
	for _, p := range parts {
		assert.Equal(t, p.Quantity, assigned[p.ID]+unassigned[p.ID], "part %s", p.Name)
	}

	// Every stick balances: parts + reusable offcuts + waste = volume.
	for _, plan := range result.Plans {
		total := plan.UsedVolume() + plan.ReusableVolume() + plan.WasteVolume
		assert.InDelta(t, plan.Volume(), total, plan.Volume()*1e-6, "stick %s", plan.StickID)
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	params := model.DefaultParameters()
	params.EnforceGrain = false

	inventory := []model.LumberStock{
		testStock("Long", 2400, 150, 30, 3, 6),
		testStock("Short", 1200, 100, 20, 4, 3),
	}
	parts := []model.Part{
		model.NewPart("Rail", 900, 60, 20, 4),
		model.NewPart("Leg", 700, 70, 30, 4),
		model.NewPart("Slat", 400, 90, 18, 10),
	}

	first, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)
	second, err := Optimize(context.Background(), inventory, parts, params)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first.Plans)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second.Plans)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
	assert.Equal(t, first.Unassigned, second.Unassigned)
}

func TestOptimize_InputSlicesNotMutated(t *testing.T) {
	inventory := []model.LumberStock{testStock("Board", 2500, 100, 20, 2, 5)}
	parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 5)}

	wantQty := inventory[0].Quantity
	wantParts := parts[0].Quantity

	_, err := Optimize(context.Background(), inventory, parts, testParams())
	require.NoError(t, err)

	assert.Equal(t, wantQty, inventory[0].Quantity)
	assert.Equal(t, wantParts, parts[0].Quantity)
}

func TestOptimize_DeadlineMarksRemainingUnits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inventory := []model.LumberStock{testStock("Board", 2500, 100, 20, 5, 5)}
	parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 5)}

	result, err := Optimize(ctx, inventory, parts, testParams())
	require.NoError(t, err)

	assert.Empty(t, result.Plans)
	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, 5, result.Unassigned[0].Quantity)
	assert.Equal(t, model.ReasonTimeBudget, result.Unassigned[0].Reason)
	assert.True(t, result.Summary.Success)
}

func TestOptimize_ValidationFailures(t *testing.T) {
	inventory := []model.LumberStock{testStock("Board", 2500, 100, 20, 1, 5)}

	t.Run("non-positive part dimension", func(t *testing.T) {
		bad := model.NewPart("Bad", -10, 100, 20, 1)
		result, err := Optimize(context.Background(), inventory, []model.Part{bad}, testParams())

		var invalid *model.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "Length", invalid.Field)
		assert.False(t, result.Summary.Success)
		assert.NotEmpty(t, result.Summary.Message)
	})

	t.Run("unknown priority", func(t *testing.T) {
		params := testParams()
		params.Priority = "fastest"
		parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 1)}

		_, err := Optimize(context.Background(), inventory, parts, params)
		var invalid *model.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "Priority", invalid.Field)
	})

	t.Run("planing without depth", func(t *testing.T) {
		params := testParams()
		params.AllowPlaning = true
		params.MaxPlaning = 0
		parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 1)}

		_, err := Optimize(context.Background(), inventory, parts, params)
		var invalid *model.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "MaxPlaning", invalid.Field)
	})
}

func TestOptimize_MaterialMatching(t *testing.T) {
	inventory := []model.LumberStock{
		func() model.LumberStock {
			s := testStock("Oak board", 2000, 100, 20, 1, 15)
			s.Material = "oak"
			return s
		}(),
		func() model.LumberStock {
			s := testStock("Pine board", 2000, 100, 20, 1, 4)
			s.Material = "pine"
			return s
		}(),
	}

	oakPart := model.NewPart("Oak rail", 500, 100, 20, 1)
	oakPart.Material = "oak"
	anyPart := model.NewPart("Any slat", 400, 100, 20, 1)

	params := testParams()
	params.Priority = model.PriorityCost

	result, err := Optimize(context.Background(), inventory, []model.Part{oakPart, anyPart}, params)
	require.NoError(t, err)
	require.Empty(t, result.Unassigned)

	byPart := map[string]string{}
	for _, plan := range result.Plans {
		for _, c := range plan.Cuts {
			byPart[c.PartName] = plan.Material
		}
	}
	assert.Equal(t, "oak", byPart["Oak rail"], "material-bound part must land on matching stock")
}

func TestCompareScenarios_RunsAllInOrder(t *testing.T) {
	inventory := []model.LumberStock{testStock("Board", 2500, 100, 20, 3, 5)}
	parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 5)}

	scenarios := []ComparisonScenario{
		{Name: "efficiency", Params: testParams()},
		{Name: "cost", Params: func() model.CuttingParameters { p := testParams(); p.Priority = model.PriorityCost; return p }()},
		{Name: "speed", Params: func() model.CuttingParameters { p := testParams(); p.Priority = model.PrioritySpeed; return p }()},
	}

	results := CompareScenarios(context.Background(), scenarios, inventory, parts)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
		require.NoError(t, r.Err)
		assert.Equal(t, 1, r.SticksUsed)
		assert.Zero(t, r.UnassignedUnits)
	}
}

func TestOptimize_ComputationTimeRecorded(t *testing.T) {
	inventory := []model.LumberStock{testStock("Board", 2500, 100, 20, 1, 5)}
	parts := []model.Part{model.NewPart("Slat", 500, 100, 20, 5)}

	result, err := Optimize(context.Background(), inventory, parts, testParams())
	require.NoError(t, err)
	assert.Greater(t, result.Summary.ComputationTime, time.Duration(0))
}

func TestOptimize_ErrorIsInvalidInput(t *testing.T) {
	_, err := Optimize(context.Background(), nil, []model.Part{model.NewPart("P", 0, 1, 1, 1)}, testParams())
	require.Error(t, err)
	var invalid *model.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}
