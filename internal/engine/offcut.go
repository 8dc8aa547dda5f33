package engine

import (
	"sort"

	"github.com/piwi3910/StickCut/internal/model"
)

// axis identifies the split axis that defined a residual region. A residual
// qualifies as a reusable offcut when its net extent along that axis meets
// the minimum offcut size.
type axis int

const (
	axisLength axis = iota
	axisWidth
	axisThickness
)

// netExtent returns the region's extent along the given axis after the
// leading kerf pending on that face.
func netExtent(r region, a axis, kerf float64) float64 {
	kx, ky, kz := leadKerf(r, kerf)
	switch a {
	case axisWidth:
		return r.w - ky
	case axisThickness:
		return r.t - kz
	default:
		return r.l - kx
	}
}

// poolOffcut is a reusable remnant registered as zero-cost virtual stock.
type poolOffcut struct {
	sourceStick string
	material    string
	length      float64
	width       float64
	thickness   float64
	seq         int // registration order, tie-break for equal volumes
}

func (o poolOffcut) volume() float64 {
	return o.length * o.width * o.thickness
}

// offcutTracker captures leftover regions as reusable virtual stock or
// tallies them as waste, and owns the reusable candidate pool.
type offcutTracker struct {
	minOffcut  float64
	allowResaw bool
	pool       []poolOffcut
	nextSeq    int
}

func newOffcutTracker(params model.CuttingParameters) *offcutTracker {
	return &offcutTracker{
		minOffcut:  params.MinOffcut,
		allowResaw: params.AllowResaw,
	}
}

// capture records a residual region on its stick. The region's volume
// splits into pending kerf plus the net offcut; the net piece is either
// registered as reusable or kept as waste. Thickness residue is reusable
// only when resawing is allowed, since reuse would require a resaw cut.
func (t *offcutTracker) capture(st *stick, r region, a axis, kerf float64) {
	kx, ky, kz := leadKerf(r, kerf)
	nl, nw, nt := r.l-kx, r.w-ky, r.t-kz
	if nl <= eps || nw <= eps || nt <= eps {
		// Nothing but saw dust left of this region.
		st.kerfVolume += r.volume()
		return
	}
	st.kerfVolume += r.volume() - nl*nw*nt

	oc := model.Offcut{
		StickID:   st.id,
		X:         r.x + kx,
		Y:         r.y + ky,
		Z:         r.z + kz,
		Length:    nl,
		Width:     nw,
		Thickness: nt,
		Status:    model.OffcutWaste,
	}

	reusable := netExtent(r, a, kerf) >= t.minOffcut
	if a == axisThickness && !t.allowResaw {
		reusable = false
	}
	if reusable {
		oc.Status = model.OffcutReusable
		t.pool = append(t.pool, poolOffcut{
			sourceStick: st.id,
			material:    st.material,
			length:      nl,
			width:       nw,
			thickness:   nt,
			seq:         t.nextSeq,
		})
		t.nextSeq++
	}
	st.offcuts = append(st.offcuts, oc)
}

// closeStick finalizes a stick: the remaining shelf tail is captured and
// the stick stops accepting placements.
func (t *offcutTracker) closeStick(st *stick, kerf float64) {
	if !st.open {
		return
	}
	if st.tail.volume() > eps {
		t.capture(st, st.tail, axisLength, kerf)
		st.tail = region{}
	}
	st.open = false
}

// candidates returns the reusable pool ordered largest-volume-first with a
// deterministic tie-break on registration order.
func (t *offcutTracker) candidates() []poolOffcut {
	out := make([]poolOffcut, len(t.pool))
	copy(out, t.pool)
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := out[i].volume(), out[j].volume()
		if vi != vj {
			return vi > vj
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// consume removes a pool entry once the offcut has been promoted to a
// virtual stick.
func (t *offcutTracker) consume(seq int) {
	for i := range t.pool {
		if t.pool[i].seq == seq {
			t.pool = append(t.pool[:i], t.pool[i+1:]...)
			return
		}
	}
}
