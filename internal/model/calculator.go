package model

import "math"

// PurchaseEstimate holds the results of a lumber purchasing calculation.
type PurchaseEstimate struct {
	TotalPartVolume   float64 `json:"total_part_volume"`   // cubic mm, kerf allowance included
	TotalBoardFeet    float64 `json:"total_board_feet"`    // 1 bf = 144 cubic inches
	TotalCubicFeet    float64 `json:"total_cubic_feet"`    // cubic feet
	StickVolume       float64 `json:"stick_volume"`        // volume of one stick (cubic mm)
	SticksNeededExact float64 `json:"sticks_needed_exact"` // fractional sticks
	SticksNeededMin   int     `json:"sticks_needed_min"`   // ceiling of exact
	SticksWithWaste   int     `json:"sticks_with_waste"`   // recommended, waste factor applied
	WastePercent      float64 `json:"waste_percent"`
	EstimatedCost     float64 `json:"estimated_cost"`
	CostPerStick      float64 `json:"cost_per_stick"`
	Kerf              float64 `json:"kerf"`
}

// Unit conversion constants for lumber volume.
const (
	// 1 board foot = 144 cubic inches = 2359737.216 cubic mm.
	cummPerBoardFoot = 2359737.216
	// 1 cubic foot = 28316846.592 cubic mm.
	cummPerCubicFoot = 28316846.592
)

// CalculatePurchaseEstimate computes how many sticks of one stock size to
// buy for a cut list. Each part is padded by the kerf on every axis as a
// rough allowance for saw loss, then an additional waste percentage covers
// packing inefficiency and defects.
func CalculatePurchaseEstimate(parts []Part, stock LumberStock, kerf, wastePercent float64) PurchaseEstimate {
	var totalVolume float64
	for _, p := range parts {
		l := p.Length + kerf
		w := p.Width + kerf
		t := p.Thickness + kerf
		totalVolume += l * w * t * float64(p.Quantity)
	}

	est := PurchaseEstimate{
		TotalPartVolume: totalVolume,
		TotalBoardFeet:  totalVolume / cummPerBoardFoot,
		TotalCubicFeet:  totalVolume / cummPerCubicFoot,
		WastePercent:    wastePercent,
		CostPerStick:    stock.CostPerUnit,
		Kerf:            kerf,
	}

	stickVolume := stock.Volume()
	if stickVolume <= 0 {
		return est
	}
	est.StickVolume = stickVolume

	exact := totalVolume / stickVolume
	est.SticksNeededExact = exact
	est.SticksNeededMin = int(math.Ceil(exact))

	wasteFactor := 1.0 + wastePercent/100.0
	est.SticksWithWaste = int(math.Ceil(exact * wasteFactor))
	if est.SticksWithWaste < est.SticksNeededMin {
		est.SticksWithWaste = est.SticksNeededMin
	}

	est.EstimatedCost = float64(est.SticksWithWaste) * stock.CostPerUnit
	return est
}
