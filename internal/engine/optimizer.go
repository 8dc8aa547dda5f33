// Package engine implements the 3D guillotine cut-list optimizer: a
// deterministic greedy heuristic that assigns required parts to lumber
// inventory, reuses offcuts, and reports per-stick cutting plans.
package engine

import (
	"context"
	"time"

	"github.com/piwi3910/StickCut/internal/model"
)

// Optimizer runs the packing algorithm for one parameter set.
type Optimizer struct {
	Params model.CuttingParameters
}

func New(params model.CuttingParameters) *Optimizer {
	return &Optimizer{Params: params}
}

// Optimize assigns every required part-unit to inventory sticks and offcuts.
// The run is a pure function of its inputs: the caller's slices are never
// mutated and two runs with identical inputs produce identical plans.
//
// The context provides an optional cooperative deadline, checked once per
// part-unit; on expiry the partial plan built so far is returned with the
// remaining units marked TimeBudgetExceeded. An error is returned only when
// the inputs fail validation.
func (o *Optimizer) Optimize(ctx context.Context, inventory []model.LumberStock, parts []model.Part) (model.OptimizationResult, error) {
	start := time.Now()

	if err := model.ValidateInputs(inventory, parts, o.Params); err != nil {
		return model.OptimizationResult{
			Summary: model.Summary{Success: false, Message: err.Error()},
		}, err
	}

	queue := newPartQueue(parts)
	alloc := newAllocator(o.Params, inventory)

	var failures []failedUnit
	for {
		if ctx.Err() != nil {
			for _, rest := range queue.drain() {
				failures = append(failures, failedUnit{part: rest, reason: model.ReasonTimeBudget})
			}
			break
		}
		unit, ok := queue.next()
		if !ok {
			break
		}
		if placed, reason := alloc.place(unit); !placed {
			failures = append(failures, failedUnit{part: unit, reason: reason})
		}
	}

	result := aggregate(alloc, consolidate(failures))
	result.Summary.ComputationTime = time.Since(start)
	return result, nil
}

// Optimize is the package-level convenience entry point.
func Optimize(ctx context.Context, inventory []model.LumberStock, parts []model.Part, params model.CuttingParameters) (model.OptimizationResult, error) {
	return New(params).Optimize(ctx, inventory, parts)
}

type failedUnit struct {
	part   model.Part
	reason model.UnassignedReason
}

// consolidate groups failed units by part and reason, preserving first-seen
// order for deterministic output.
func consolidate(failures []failedUnit) []model.UnassignedPart {
	var out []model.UnassignedPart
	for _, f := range failures {
		merged := false
		for i := range out {
			if out[i].PartID == f.part.ID && out[i].Reason == f.reason {
				out[i].Quantity++
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, model.UnassignedPart{
				PartID:   f.part.ID,
				PartName: f.part.Name,
				Quantity: 1,
				Reason:   f.reason,
			})
		}
	}
	return out
}
