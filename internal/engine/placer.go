package engine

import (
	"fmt"

	"github.com/piwi3910/StickCut/internal/model"
)

// region is a free rectangular volume inside a stick. The cut flags mark
// leading faces that coincide with a pending saw cut: placing into or
// detaching such a region consumes kerf along that face first.
type region struct {
	x, y, z float64
	l, w, t float64
	cutX    bool
	cutY    bool
	cutZ    bool
}

func (r region) volume() float64 {
	return r.l * r.w * r.t
}

// stick is the run-scoped mutable state of one opened stock unit (or a
// virtual stick promoted from a reusable offcut). The shelf tail is the
// single active free region: placements advance along length; width and
// thickness residue is handed to the offcut tracker as it is carved off.
type stick struct {
	id          string
	stockID     string
	stockName   string
	index       int
	length      float64
	width       float64
	thickness   float64
	costPerUnit float64
	material    string
	fromOffcut  bool
	sourceStick string

	open       bool
	tail       region
	cuts       []model.CutAssignment
	offcuts    []model.Offcut
	kerfVolume float64
	cutCount   int
}

func (s *stick) volume() float64 {
	return s.length * s.width * s.thickness
}

// orientedDims is one candidate orientation of a part.
type orientedDims struct {
	tag     model.Orientation
	l, w, t float64
}

// orientations returns the permitted orientations in the fixed trial order:
// identity first, then each allowed axis-pair swap. When grain is enforced
// and the part's grain runs along its length, swaps that rotate the length
// axis away from the stock's length axis are excluded.
func orientations(p model.Part, enforceGrain bool) []orientedDims {
	grainPinned := enforceGrain && p.GrainAlongLength
	dims := []orientedDims{{model.OrientIdentity, p.Length, p.Width, p.Thickness}}
	if p.Rotations.Allows(model.RotateLengthWidth) && !grainPinned {
		dims = append(dims, orientedDims{model.OrientLengthWidth, p.Width, p.Length, p.Thickness})
	}
	if p.Rotations.Allows(model.RotateWidthThickness) {
		dims = append(dims, orientedDims{model.OrientWidthThickness, p.Length, p.Thickness, p.Width})
	}
	if p.Rotations.Allows(model.RotateLengthThickness) && !grainPinned {
		dims = append(dims, orientedDims{model.OrientLengthThickness, p.Thickness, p.Width, p.Length})
	}
	return dims
}

// grainBlocked returns the orientations the part's rotation flags allow but
// grain enforcement excludes. Used only for failure diagnosis.
func grainBlocked(p model.Part, enforceGrain bool) []orientedDims {
	if !(enforceGrain && p.GrainAlongLength) {
		return nil
	}
	var dims []orientedDims
	if p.Rotations.Allows(model.RotateLengthWidth) {
		dims = append(dims, orientedDims{model.OrientLengthWidth, p.Width, p.Length, p.Thickness})
	}
	if p.Rotations.Allows(model.RotateLengthThickness) {
		dims = append(dims, orientedDims{model.OrientLengthThickness, p.Thickness, p.Width, p.Length})
	}
	return dims
}

// fitInRegion checks one orientation against one region, reserving leading
// kerf on each axis whose face is a pending cut boundary. Returns the
// effective (possibly shrunk) dimensions on success.
func fitInRegion(r region, d orientedDims, kerf float64, shrink axisShrink) (el, ew, et float64, ok bool) {
	kx, ky, kz := leadKerf(r, kerf)
	el, okL := fitAxis(d.l, r.l-kx, shrink.length)
	ew, okW := fitAxis(d.w, r.w-ky, shrink.width)
	et, okT := fitAxis(d.t, r.t-kz, shrink.thickness)
	if !okL || !okW || !okT {
		return 0, 0, 0, false
	}
	return el, ew, et, true
}

func leadKerf(r region, kerf float64) (kx, ky, kz float64) {
	if r.cutX {
		kx = kerf
	}
	if r.cutY {
		ky = kerf
	}
	if r.cutZ {
		kz = kerf
	}
	return
}

// placer finds positions for part-units inside sticks under the guillotine
// shelf rule and hands residue to the offcut tracker.
type placer struct {
	params model.CuttingParameters
	shrink axisShrink
}

func newPlacer(params model.CuttingParameters) *placer {
	return &placer{
		params: params,
		shrink: shrinkBudget(params.Tolerance, params.MaxPlaning, params.AllowPlaning),
	}
}

// place attempts to put one part-unit on the stick. Orientations are tried
// in their fixed order and the first fit wins; a failed attempt leaves the
// stick untouched. Residual regions created by a successful placement are
// routed through the offcut tracker.
func (pl *placer) place(st *stick, p model.Part, tracker *offcutTracker) bool {
	if !st.open {
		return false
	}
	for _, d := range orientations(p, pl.params.EnforceGrain) {
		el, ew, et, ok := fitInRegion(st.tail, d, pl.params.Kerf, pl.shrink)
		if !ok {
			continue
		}
		pl.commit(st, p, d, el, ew, et, tracker)
		return true
	}
	return false
}

// commit performs the placement and the guillotine splits around it.
// The region decomposes exactly into the placed column plus up to three
// residuals, so volume conservation holds by construction:
//
//	R1: remainder along length (becomes the new shelf tail)
//	R2: remainder along width within the cut-off column
//	R3: remainder along thickness under the placed piece
func (pl *placer) commit(st *stick, p model.Part, d orientedDims, el, ew, et float64, tracker *offcutTracker) {
	r := st.tail
	kerf := pl.params.Kerf
	kx, ky, kz := leadKerf(r, kerf)

	cut := model.CutAssignment{
		PartID:           p.ID,
		PartName:         p.Name,
		StickID:          st.id,
		X:                r.x + kx,
		Y:                r.y + ky,
		Z:                r.z + kz,
		Orientation:      d.tag,
		Length:           el,
		Width:            ew,
		Thickness:        et,
		NominalLength:    p.Length,
		NominalWidth:     p.Width,
		NominalThickness: p.Thickness,
	}
	st.cuts = append(st.cuts, cut)

	colL, colW, colT := kx+el, ky+ew, kz+et
	st.kerfVolume += colL*colW*colT - el*ew*et

	// Width residual within the column.
	if r.w-colW > eps {
		r2 := region{
			x: r.x, y: r.y + colW, z: r.z,
			l: colL, w: r.w - colW, t: r.t,
			cutX: r.cutX, cutY: true, cutZ: r.cutZ,
		}
		st.cutCount++
		tracker.capture(st, r2, axisWidth, kerf)
	}

	// Thickness residual under the placed piece.
	if r.t-colT > eps {
		r3 := region{
			x: r.x, y: r.y, z: r.z + colT,
			l: colL, w: colW, t: r.t - colT,
			cutX: r.cutX, cutY: r.cutY, cutZ: true,
		}
		st.cutCount++
		tracker.capture(st, r3, axisThickness, kerf)
	}

	// Length remainder becomes the new tail; the boundary cut's kerf is
	// charged to whoever uses the tail next.
	if r.l-colL > eps {
		st.tail = region{
			x: r.x + colL, y: r.y, z: r.z,
			l: r.l - colL, w: r.w, t: r.t,
			cutX: true, cutY: r.cutY, cutZ: r.cutZ,
		}
		st.cutCount++
	} else {
		st.tail = region{}
	}

	// Close the stick once the tail cannot yield a keepable offcut.
	if netExtent(st.tail, axisLength, kerf) < pl.params.MinOffcut || st.tail.volume() <= eps {
		tracker.closeStick(st, kerf)
	}
}

// canFit reports whether the part would fit a virgin stick of the given
// catalog dimensions in any permitted orientation. Used by the allocator
// before opening new inventory.
func (pl *placer) canFit(p model.Part, length, width, thickness float64) bool {
	virgin := region{l: length, w: width, t: thickness}
	for _, d := range orientations(p, pl.params.EnforceGrain) {
		if _, _, _, ok := fitInRegion(virgin, d, pl.params.Kerf, pl.shrink); ok {
			return true
		}
	}
	return false
}

func stickID(seq int) string {
	return fmt.Sprintf("stick-%d", seq)
}
