package model

import (
	"math"
	"testing"
)

func TestCalculatePurchaseEstimate(t *testing.T) {
	parts := []Part{
		NewPart("Slat", 997, 97, 17, 10),
	}
	stock := NewLumberStock("Board", 2000, 100, 20, 0)
	stock.CostPerUnit = 5.0

	est := CalculatePurchaseEstimate(parts, stock, 3, 15)

	// With the kerf allowance each slat counts as 1000x100x20.
	wantVolume := 1000.0 * 100 * 20 * 10
	if math.Abs(est.TotalPartVolume-wantVolume) > 1e-6 {
		t.Errorf("expected part volume %f, got %f", wantVolume, est.TotalPartVolume)
	}
	if math.Abs(est.SticksNeededExact-5.0) > 1e-9 {
		t.Errorf("expected exactly 5 sticks, got %f", est.SticksNeededExact)
	}
	if est.SticksNeededMin != 5 {
		t.Errorf("expected minimum 5 sticks, got %d", est.SticksNeededMin)
	}
	// 5 * 1.15 = 5.75, rounded up.
	if est.SticksWithWaste != 6 {
		t.Errorf("expected 6 sticks with waste, got %d", est.SticksWithWaste)
	}
	if math.Abs(est.EstimatedCost-30.0) > 1e-9 {
		t.Errorf("expected cost 30, got %f", est.EstimatedCost)
	}
	wantBF := wantVolume / 2359737.216
	if math.Abs(est.TotalBoardFeet-wantBF) > 1e-9 {
		t.Errorf("expected %f board feet, got %f", wantBF, est.TotalBoardFeet)
	}
}

func TestCalculatePurchaseEstimateZeroStock(t *testing.T) {
	parts := []Part{NewPart("Slat", 500, 100, 20, 1)}
	est := CalculatePurchaseEstimate(parts, LumberStock{}, 3, 10)
	if est.SticksNeededMin != 0 || est.SticksWithWaste != 0 {
		t.Error("zero-volume stock should produce no stick counts")
	}
	if est.TotalPartVolume <= 0 {
		t.Error("part volume should still be computed")
	}
}

func TestCalculatePurchaseEstimateWasteNeverBelowMin(t *testing.T) {
	parts := []Part{NewPart("Slat", 1000, 100, 20, 1)}
	stock := NewLumberStock("Board", 2000, 100, 20, 0)
	est := CalculatePurchaseEstimate(parts, stock, 0, 0)
	if est.SticksWithWaste < est.SticksNeededMin {
		t.Errorf("waste recommendation %d below minimum %d", est.SticksWithWaste, est.SticksNeededMin)
	}
}
