package engine

import (
	"sort"

	"github.com/piwi3910/StickCut/internal/model"
)

// partQueue emits individual part-units in placement order: priority
// descending, then largest dimension descending (first-fit-decreasing),
// then id ascending as a deterministic tie-break. Ordering happens once
// at construction; the queue is drained unit by unit.
type partQueue struct {
	units []model.Part
	pos   int
}

func newPartQueue(parts []model.Part) *partQueue {
	sorted := make([]model.Part, len(parts))
	copy(sorted, parts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		di, dj := sorted[i].MaxDimension(), sorted[j].MaxDimension()
		if di != dj {
			return di > dj
		}
		return sorted[i].ID < sorted[j].ID
	})

	q := &partQueue{}
	for _, p := range sorted {
		for n := 0; n < p.Quantity; n++ {
			unit := p
			unit.Quantity = 1
			q.units = append(q.units, unit)
		}
	}
	return q
}

// next returns the next part-unit, or false when the queue is drained.
func (q *partQueue) next() (model.Part, bool) {
	if q.pos >= len(q.units) {
		return model.Part{}, false
	}
	u := q.units[q.pos]
	q.pos++
	return u, true
}

// drain returns all remaining units without consuming state beyond them.
// Used when a deadline aborts the run mid-queue.
func (q *partQueue) drain() []model.Part {
	rest := q.units[q.pos:]
	q.pos = len(q.units)
	return rest
}

func (q *partQueue) len() int {
	return len(q.units)
}
