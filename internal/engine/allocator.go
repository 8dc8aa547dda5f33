package engine

import (
	"github.com/piwi3910/StickCut/internal/model"
)

// allocator owns all run-scoped placement state: the inventory counter
// snapshot, the opened sticks in open order, and the offcut pool. For each
// part-unit it tries open sticks first, then reusable offcuts, then new
// inventory, stopping at the first success.
type allocator struct {
	params  model.CuttingParameters
	catalog []model.LumberStock // immutable snapshot of the caller's inventory
	left    []int               // per-row counter copy; the catalog itself is never mutated
	opened  []int               // per-row count of consumed units, for stick indices

	placer  *placer
	tracker *offcutTracker
	sticks  []*stick
	nextSeq int
}

func newAllocator(params model.CuttingParameters, inventory []model.LumberStock) *allocator {
	catalog := make([]model.LumberStock, len(inventory))
	copy(catalog, inventory)
	left := make([]int, len(catalog))
	for i, row := range catalog {
		left[i] = row.Quantity
	}
	return &allocator{
		params:  params,
		catalog: catalog,
		left:    left,
		opened:  make([]int, len(catalog)),
		placer:  newPlacer(params),
		tracker: newOffcutTracker(params),
		nextSeq: 1,
	}
}

// place attempts one part-unit everywhere permitted. On failure it returns
// the reason code describing the closest miss.
func (a *allocator) place(p model.Part) (bool, model.UnassignedReason) {
	// 1. Open sticks, in the order they were opened.
	for _, st := range a.sticks {
		if !st.open || !model.MaterialsCompatible(p.Material, st.material) {
			continue
		}
		if a.placer.place(st, p, a.tracker) {
			return true, ""
		}
	}

	// 2. Reusable offcuts, largest volume first. A successful placement
	// promotes the offcut to a zero-cost virtual stick.
	for _, oc := range a.tracker.candidates() {
		if !model.MaterialsCompatible(p.Material, oc.material) {
			continue
		}
		st := a.openVirtual(oc)
		if a.placer.place(st, p, a.tracker) {
			a.sticks = append(a.sticks, st)
			a.tracker.consume(oc.seq)
			return true, ""
		}
		a.nextSeq-- // placement failed; the virtual stick was never opened
	}

	// 3. New stick from inventory, chosen per the optimization priority.
	if row := a.selectStock(p); row >= 0 {
		st := a.openStick(row)
		if !a.placer.place(st, p, a.tracker) {
			// canFit and place agree on virgin sticks; reaching here is a bug.
			faultf("stick %s accepted part %s in selection but rejected it in placement", st.id, p.ID)
		}
		a.sticks = append(a.sticks, st)
		a.left[row]--
		a.opened[row]++
		return true, ""
	}

	return false, a.diagnose(p)
}

// selectStock picks the inventory row for a new stick: rows with remaining
// quantity and compatible material that can fit the unit, ranked by the
// configured priority. Returns -1 when no row qualifies.
func (a *allocator) selectStock(p model.Part) int {
	best := -1
	for i, row := range a.catalog {
		if a.left[i] <= 0 || !model.MaterialsCompatible(p.Material, row.Material) {
			continue
		}
		if !a.placer.canFit(p, row.Length, row.Width, row.Thickness) {
			continue
		}
		switch a.params.Priority {
		case model.PrioritySpeed:
			// First fitting candidate in catalog order.
			return i
		case model.PriorityCost:
			if best < 0 || row.CostPerUnit < a.catalog[best].CostPerUnit {
				best = i
			}
		default: // efficiency: smallest volume that still fits
			if best < 0 || row.Volume() < a.catalog[best].Volume() {
				best = i
			}
		}
	}
	return best
}

// openStick instantiates one unit of a catalog row as a fresh open stick.
func (a *allocator) openStick(row int) *stick {
	src := a.catalog[row]
	st := &stick{
		id:          stickID(a.nextSeq),
		stockID:     src.ID,
		stockName:   src.Name,
		index:       a.opened[row] + 1,
		length:      src.Length,
		width:       src.Width,
		thickness:   src.Thickness,
		costPerUnit: src.CostPerUnit,
		material:    src.Material,
		open:        true,
	}
	st.tail = region{l: st.length, w: st.width, t: st.thickness}
	a.nextSeq++
	return st
}

// openVirtual instantiates a reusable offcut as a zero-cost virtual stick.
// Offcut faces are already cut, so no leading kerf is pending.
func (a *allocator) openVirtual(oc poolOffcut) *stick {
	st := &stick{
		id:          stickID(a.nextSeq),
		stockID:     oc.sourceStick,
		stockName:   "Offcut " + oc.sourceStick,
		index:       1,
		length:      oc.length,
		width:       oc.width,
		thickness:   oc.thickness,
		material:    oc.material,
		fromOffcut:  true,
		sourceStick: oc.sourceStick,
		open:        true,
	}
	st.tail = region{l: st.length, w: st.width, t: st.thickness}
	a.nextSeq++
	return st
}

// diagnose explains a failed unit. A grain conflict is reported when only
// grain-excluded orientations would have fit; a tolerance miss when a
// permitted orientation was within one extra tolerance width of fitting;
// otherwise no compatible stock had the dimensions at all.
func (a *allocator) diagnose(p model.Part) model.UnassignedReason {
	grainHit := false
	closeHit := false

	check := func(material string, l, w, t float64) {
		if !model.MaterialsCompatible(p.Material, material) {
			return
		}
		virgin := region{l: l, w: w, t: t}
		for _, d := range grainBlocked(p, a.params.EnforceGrain) {
			if _, _, _, ok := fitInRegion(virgin, d, a.params.Kerf, a.placer.shrink); ok {
				grainHit = true
			}
		}
		relaxed := a.placer.shrink
		relaxed.length += a.params.Tolerance
		relaxed.width += a.params.Tolerance
		relaxed.thickness += a.params.Tolerance
		for _, d := range orientations(p, a.params.EnforceGrain) {
			if _, _, _, ok := fitInRegion(virgin, d, a.params.Kerf, relaxed); ok {
				closeHit = true
			}
		}
	}

	for i, row := range a.catalog {
		if a.left[i] <= 0 {
			continue
		}
		check(row.Material, row.Length, row.Width, row.Thickness)
	}
	for _, oc := range a.tracker.pool {
		check(oc.material, oc.length, oc.width, oc.thickness)
	}

	switch {
	case grainHit:
		return model.ReasonGrainConflict
	case closeHit:
		return model.ReasonExceedsTolerance
	default:
		return model.ReasonNoMatchingMaterial
	}
}

// finalize closes every stick still open at run end.
func (a *allocator) finalize() {
	for _, st := range a.sticks {
		a.tracker.closeStick(st, a.params.Kerf)
	}
}
