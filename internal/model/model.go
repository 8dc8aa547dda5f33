package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rotation is a bitset of permitted axis-pair swaps for a part.
// Grain enforcement interacts with all three pairs at once, so the
// permissions are kept in one value rather than three booleans.
type Rotation uint8

const (
	RotateLengthWidth     Rotation = 1 << iota // length <-> width
	RotateWidthThickness                       // width <-> thickness
	RotateLengthThickness                      // length <-> thickness

	RotateNone Rotation = 0
	RotateAll           = RotateLengthWidth | RotateWidthThickness | RotateLengthThickness
)

// Allows reports whether the given swap is permitted.
func (r Rotation) Allows(swap Rotation) bool {
	return r&swap != 0
}

func (r Rotation) String() string {
	if r == RotateNone {
		return "none"
	}
	s := ""
	if r.Allows(RotateLengthWidth) {
		s += "LW"
	}
	if r.Allows(RotateWidthThickness) {
		s += "WT"
	}
	if r.Allows(RotateLengthThickness) {
		s += "LT"
	}
	return s
}

// Orientation tags how a part-unit was oriented when placed.
// The constant order is the order the placer tries them.
type Orientation int

const (
	OrientIdentity        Orientation = iota // nominal L/W/T as given
	OrientLengthWidth                        // length and width swapped
	OrientWidthThickness                     // width and thickness swapped
	OrientLengthThickness                    // length and thickness swapped
)

func (o Orientation) String() string {
	switch o {
	case OrientLengthWidth:
		return "rotated L/W"
	case OrientWidthThickness:
		return "rotated W/T"
	case OrientLengthThickness:
		return "rotated L/T"
	default:
		return "as-is"
	}
}

// LumberStock represents one row of the lumber catalog: a stick size that
// can be drawn from inventory a limited number of times.
type LumberStock struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Length      float64 `json:"length" validate:"gt=0"`    // mm
	Width       float64 `json:"width" validate:"gt=0"`     // mm
	Thickness   float64 `json:"thickness" validate:"gt=0"` // mm
	Quantity    int     `json:"quantity" validate:"gte=0"`
	CostPerUnit float64 `json:"cost_per_unit" validate:"gte=0"`
	Material    string  `json:"material"` // empty = compatible with any part
}

func NewLumberStock(name string, length, width, thickness float64, qty int) LumberStock {
	return LumberStock{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Length:    length,
		Width:     width,
		Thickness: thickness,
		Quantity:  qty,
	}
}

// Volume returns the stick volume in cubic mm.
func (s LumberStock) Volume() float64 {
	return s.Length * s.Width * s.Thickness
}

func (s LumberStock) String() string {
	return fmt.Sprintf("%s (%.0fx%.0fx%.0fmm) qty:%d", s.Name, s.Length, s.Width, s.Thickness, s.Quantity)
}

// Part represents a required piece to be cut.
type Part struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Length           float64  `json:"length" validate:"gt=0"`    // mm
	Width            float64  `json:"width" validate:"gt=0"`     // mm
	Thickness        float64  `json:"thickness" validate:"gt=0"` // mm
	Quantity         int      `json:"quantity" validate:"gt=0"`
	Rotations        Rotation `json:"rotations"`
	GrainAlongLength bool     `json:"grain_along_length"` // long axis must follow stock length when grain is enforced
	Material         string   `json:"material"`           // empty = any stock material
	Priority         int      `json:"priority"`           // higher = placed earlier
}

func NewPart(name string, length, width, thickness float64, qty int) Part {
	return Part{
		ID:               uuid.New().String()[:8],
		Name:             name,
		Length:           length,
		Width:            width,
		Thickness:        thickness,
		Quantity:         qty,
		Rotations:        RotateNone,
		GrainAlongLength: true,
		Priority:         5,
	}
}

// Volume returns the part volume in cubic mm.
func (p Part) Volume() float64 {
	return p.Length * p.Width * p.Thickness
}

// MaxDimension returns the largest of the part's three dimensions.
func (p Part) MaxDimension() float64 {
	m := p.Length
	if p.Width > m {
		m = p.Width
	}
	if p.Thickness > m {
		m = p.Thickness
	}
	return m
}

func (p Part) String() string {
	return fmt.Sprintf("%s (%.0fx%.0fx%.0fmm) qty:%d", p.Name, p.Length, p.Width, p.Thickness, p.Quantity)
}

// OptimizationPriority selects how new sticks are drawn from inventory.
type OptimizationPriority string

const (
	PriorityEfficiency OptimizationPriority = "efficiency" // smallest fitting stick first
	PriorityCost       OptimizationPriority = "cost"       // cheapest fitting stick first
	PrioritySpeed      OptimizationPriority = "speed"      // first fitting stick in catalog order
)

// CuttingParameters holds the run configuration.
type CuttingParameters struct {
	Kerf         float64              `json:"kerf" validate:"gte=0"`       // mm consumed by each saw cut
	MinOffcut    float64              `json:"min_offcut" validate:"gte=0"` // mm; smaller remnants are waste
	Tolerance    float64              `json:"tolerance" validate:"gte=0"`  // mm of permitted shrink per axis
	EnforceGrain bool                 `json:"grain_direction_enforcement"`
	Priority     OptimizationPriority `json:"optimization_priority"`
	AllowResaw   bool                 `json:"allow_resaw"`                  // permit thickness layering
	AllowPlaning bool                 `json:"allow_planing"`                // permit planing the thickness down
	MaxPlaning   float64              `json:"max_planing" validate:"gte=0"` // mm; extra thickness shrink when planing
}

func DefaultParameters() CuttingParameters {
	return CuttingParameters{
		Kerf:         3.0,
		MinOffcut:    100.0,
		Tolerance:    2.0,
		EnforceGrain: true,
		Priority:     PriorityEfficiency,
		AllowResaw:   false,
		AllowPlaning: false,
		MaxPlaning:   5.0,
	}
}

// CutAssignment records one part-unit placed on a stick. Effective
// dimensions are after tolerance/planing shrink; nominal dimensions are the
// part's requested size, kept for deviation reporting.
type CutAssignment struct {
	PartID      string      `json:"part_id"`
	PartName    string      `json:"part_name"`
	StickID     string      `json:"stick_id"`
	X           float64     `json:"x"` // mm from stick origin along length
	Y           float64     `json:"y"` // mm along width
	Z           float64     `json:"z"` // mm along thickness
	Orientation Orientation `json:"orientation"`

	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Thickness float64 `json:"thickness"`

	NominalLength    float64 `json:"nominal_length"`
	NominalWidth     float64 `json:"nominal_width"`
	NominalThickness float64 `json:"nominal_thickness"`
}

// Volume returns the effective cut volume in cubic mm.
func (c CutAssignment) Volume() float64 {
	return c.Length * c.Width * c.Thickness
}

// OffcutStatus classifies a leftover region.
type OffcutStatus string

const (
	OffcutReusable OffcutStatus = "reusable"
	OffcutWaste    OffcutStatus = "waste"
)

// Offcut is a leftover rectangular region of a stick.
type Offcut struct {
	StickID   string       `json:"stick_id"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Z         float64      `json:"z"`
	Length    float64      `json:"length"`
	Width     float64      `json:"width"`
	Thickness float64      `json:"thickness"`
	Status    OffcutStatus `json:"status"`
}

// Volume returns the offcut volume in cubic mm.
func (o Offcut) Volume() float64 {
	return o.Length * o.Width * o.Thickness
}

// CuttingPlan is the finished plan for one consumed stick.
type CuttingPlan struct {
	StickID     string  `json:"stick_id"`
	StockID     string  `json:"stock_id"`
	StockName   string  `json:"stock_name"`
	StickIndex  int     `json:"stick_index"` // which unit of this stock row
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Thickness   float64 `json:"thickness"`
	Material    string  `json:"material"`
	CostPerUnit float64 `json:"cost_per_unit"`
	FromOffcut  bool    `json:"from_offcut"` // true for zero-cost virtual sticks
	SourceStick string  `json:"source_stick,omitempty"`

	Cuts    []CutAssignment `json:"cuts"`
	Offcuts []Offcut        `json:"offcuts"`

	Utilization float64 `json:"utilization"`  // percent of stick volume in parts
	WasteVolume float64 `json:"waste_volume"` // cubic mm, excludes reusable offcuts
	TotalCuts   int     `json:"total_cuts"`   // guillotine boundary cuts
}

// Volume returns the stick volume in cubic mm.
func (p CuttingPlan) Volume() float64 {
	return p.Length * p.Width * p.Thickness
}

// UsedVolume returns the summed effective cut volume.
func (p CuttingPlan) UsedVolume() float64 {
	var v float64
	for _, c := range p.Cuts {
		v += c.Volume()
	}
	return v
}

// ReusableVolume returns the summed volume of reusable offcuts.
func (p CuttingPlan) ReusableVolume() float64 {
	var v float64
	for _, o := range p.Offcuts {
		if o.Status == OffcutReusable {
			v += o.Volume()
		}
	}
	return v
}

// UnassignedReason explains why a part-unit could not be placed.
type UnassignedReason string

const (
	ReasonNoMatchingMaterial UnassignedReason = "NoMatchingMaterial"
	ReasonExceedsTolerance   UnassignedReason = "ExceedsTolerance"
	ReasonGrainConflict      UnassignedReason = "GrainConflict"
	ReasonTimeBudget         UnassignedReason = "TimeBudgetExceeded"
)

// UnassignedPart reports units of a part that could not be placed.
type UnassignedPart struct {
	PartID   string           `json:"part_id"`
	PartName string           `json:"part_name"`
	Quantity int              `json:"quantity"`
	Reason   UnassignedReason `json:"reason"`
}

// Summary aggregates run-wide statistics.
type Summary struct {
	TotalSticks        int           `json:"total_sticks"`
	TotalPartsCut      int           `json:"total_parts_cut"`
	TotalCuts          int           `json:"total_cuts"`
	OverallUtilization float64       `json:"overall_utilization"` // percent
	TotalWaste         float64       `json:"total_waste"`         // cubic mm
	TotalCost          float64       `json:"total_cost"`
	ComputationTime    time.Duration `json:"computation_time"`
	Success            bool          `json:"success"`
	Message            string        `json:"message,omitempty"`
}

// OptimizationResult is the full output of one engine run.
type OptimizationResult struct {
	Plans      []CuttingPlan    `json:"plans"`
	Unassigned []UnassignedPart `json:"unassigned"`
	Summary    Summary          `json:"summary"`
}

// Project ties an input set together for save/load.
type Project struct {
	Name       string              `json:"name"`
	Inventory  []LumberStock       `json:"inventory"`
	Parts      []Part              `json:"parts"`
	Parameters CuttingParameters   `json:"parameters"`
	Result     *OptimizationResult `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:       "Untitled",
		Inventory:  []LumberStock{},
		Parts:      []Part{},
		Parameters: DefaultParameters(),
	}
}

// MaterialsCompatible reports whether a part material may be cut from a
// stock material. Empty on either side is a wildcard.
func MaterialsCompatible(partMaterial, stockMaterial string) bool {
	return partMaterial == "" || stockMaterial == "" || partMaterial == stockMaterial
}
