package engine

import (
	"github.com/piwi3910/StickCut/internal/model"
)

// aggregate turns the allocator's sticks into the final plan set and
// run summary. Sticks without a single assignment are discarded and their
// inventory reservation released. Virtual sticks (promoted offcuts) carry
// no cost and are excluded from the overall utilization denominator: their
// material volume is already counted on the source stick.
func aggregate(a *allocator, unassigned []model.UnassignedPart) model.OptimizationResult {
	a.finalize()

	var plans []model.CuttingPlan
	var stockVolume, usedVolume, totalWaste, totalCost float64
	totalCuts := 0
	partsCut := 0

	for _, st := range a.sticks {
		if len(st.cuts) == 0 {
			// Never observed in practice: sticks open only on a
			// successful placement. Release the reservation anyway.
			if !st.fromOffcut {
				for i, row := range a.catalog {
					if row.ID == st.stockID {
						a.left[i]++
						break
					}
				}
			}
			continue
		}
		if debugChecks {
			verifyStick(st)
		}

		used := 0.0
		for _, c := range st.cuts {
			used += c.Volume()
		}
		reusable := 0.0
		for _, o := range st.offcuts {
			if o.Status == model.OffcutReusable {
				reusable += o.Volume()
			}
		}
		volume := st.volume()
		waste := volume - used - reusable

		plan := model.CuttingPlan{
			StickID:     st.id,
			StockID:     st.stockID,
			StockName:   st.stockName,
			StickIndex:  st.index,
			Length:      st.length,
			Width:       st.width,
			Thickness:   st.thickness,
			Material:    st.material,
			CostPerUnit: st.costPerUnit,
			FromOffcut:  st.fromOffcut,
			SourceStick: st.sourceStick,
			Cuts:        st.cuts,
			Offcuts:     st.offcuts,
			WasteVolume: waste,
			TotalCuts:   st.cutCount,
		}
		if volume > 0 {
			plan.Utilization = used / volume * 100.0
		}
		plans = append(plans, plan)

		usedVolume += used
		totalCuts += st.cutCount
		partsCut += len(st.cuts)
		totalWaste += waste
		if !st.fromOffcut {
			stockVolume += volume
			totalCost += st.costPerUnit
		}
	}

	summary := model.Summary{
		TotalSticks:   len(plans),
		TotalPartsCut: partsCut,
		TotalCuts:     totalCuts,
		TotalWaste:    totalWaste,
		TotalCost:     totalCost,
		Success:       true,
	}
	if stockVolume > 0 {
		summary.OverallUtilization = usedVolume / stockVolume * 100.0
	}

	return model.OptimizationResult{
		Plans:      plans,
		Unassigned: unassigned,
		Summary:    summary,
	}
}
