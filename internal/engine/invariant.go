package engine

import "fmt"

// relEps is the relative tolerance for volume-conservation checks.
const relEps = 1e-6

// debugChecks enables the expensive per-stick verification pass. Tests turn
// it on; a violation means an engine bug, not bad input, so it panics.
var debugChecks = false

// SetDebugChecks toggles per-stick invariant verification.
func SetDebugChecks(v bool) {
	debugChecks = v
}

// faultf reports an internal engine fault. Faults are never swallowed.
func faultf(format string, args ...any) {
	panic("engine: internal fault: " + fmt.Sprintf(format, args...))
}

// verifyStick checks the structural invariants of a finalized stick:
// volume conservation, positive extents, and pairwise non-overlap of cuts.
func verifyStick(st *stick) {
	total := st.volume()

	var used, offcut float64
	for _, c := range st.cuts {
		if c.Length <= 0 || c.Width <= 0 || c.Thickness <= 0 {
			faultf("stick %s: cut for part %s has non-positive extent", st.id, c.PartID)
		}
		used += c.Volume()
	}
	for _, o := range st.offcuts {
		if o.Length <= 0 || o.Width <= 0 || o.Thickness <= 0 {
			faultf("stick %s: offcut has non-positive extent", st.id)
		}
		offcut += o.Volume()
	}
	if st.kerfVolume < -eps {
		faultf("stick %s: negative kerf volume %.4f", st.id, st.kerfVolume)
	}

	free := st.tail.volume()
	if diff := used + offcut + st.kerfVolume + free - total; diff > relEps*total || diff < -relEps*total {
		faultf("stick %s: volume mismatch: used %.2f + offcuts %.2f + kerf %.2f + free %.2f != %.2f",
			st.id, used, offcut, st.kerfVolume, free, total)
	}

	for i := 0; i < len(st.cuts); i++ {
		for j := i + 1; j < len(st.cuts); j++ {
			a, b := st.cuts[i], st.cuts[j]
			if a.X < b.X+b.Length-eps && a.X+a.Length > b.X+eps &&
				a.Y < b.Y+b.Width-eps && a.Y+a.Width > b.Y+eps &&
				a.Z < b.Z+b.Thickness-eps && a.Z+a.Thickness > b.Z+eps {
				faultf("stick %s: cuts for parts %s and %s overlap", st.id, a.PartID, b.PartID)
			}
		}
	}
}
