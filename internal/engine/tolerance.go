package engine

// eps absorbs floating-point noise in dimension comparisons.
const eps = 1e-6

// fitAxis returns the largest effective dimension <= nominal that fits the
// available span, shrinking at most maxShrink below nominal. It never grows
// a dimension: an over-sized substitution is not a valid fit. Returns false
// when even the maximum permitted shrink cannot fit.
func fitAxis(nominal, avail, maxShrink float64) (float64, bool) {
	if avail <= eps {
		return 0, false
	}
	if nominal <= avail+eps {
		return nominal, true
	}
	if nominal-maxShrink <= avail+eps {
		return avail, true
	}
	return 0, false
}

// axisShrink returns the per-axis shrink budget. The thickness axis gains
// the planing allowance when planing is enabled: the part is planed down to
// the stock's thickness after the cut.
type axisShrink struct {
	length, width, thickness float64
}

func shrinkBudget(tolerance, maxPlaning float64, allowPlaning bool) axisShrink {
	s := axisShrink{length: tolerance, width: tolerance, thickness: tolerance}
	if allowPlaning {
		s.thickness += maxPlaning
	}
	return s
}
