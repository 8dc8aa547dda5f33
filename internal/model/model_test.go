package model

import (
	"testing"
)

func TestRotationAllows(t *testing.T) {
	r := RotateLengthWidth | RotateWidthThickness
	if !r.Allows(RotateLengthWidth) {
		t.Error("expected length-width swap to be allowed")
	}
	if !r.Allows(RotateWidthThickness) {
		t.Error("expected width-thickness swap to be allowed")
	}
	if r.Allows(RotateLengthThickness) {
		t.Error("length-thickness swap should not be allowed")
	}
	if RotateNone.Allows(RotateLengthWidth) {
		t.Error("RotateNone should allow nothing")
	}
	if !RotateAll.Allows(RotateLengthThickness) {
		t.Error("RotateAll should allow every swap")
	}
}

func TestRotationString(t *testing.T) {
	if got := RotateNone.String(); got != "none" {
		t.Errorf("expected none, got %s", got)
	}
	if got := RotateAll.String(); got == "" || got == "none" {
		t.Errorf("unexpected string for RotateAll: %s", got)
	}
}

func TestNewPartDefaults(t *testing.T) {
	p := NewPart("Leg", 700, 70, 70, 4)
	if p.ID == "" {
		t.Error("expected generated ID")
	}
	if p.Rotations != RotateNone {
		t.Error("new parts should not rotate by default")
	}
	if !p.GrainAlongLength {
		t.Error("grain should default to along the length")
	}
	if p.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", p.Quantity)
	}
}

func TestPartMaxDimension(t *testing.T) {
	p := NewPart("Panel", 200, 900, 20, 1)
	if got := p.MaxDimension(); got != 900 {
		t.Errorf("expected 900, got %f", got)
	}
}

func TestVolumes(t *testing.T) {
	s := NewLumberStock("Board", 1000, 100, 20, 1)
	if got := s.Volume(); got != 1000*100*20 {
		t.Errorf("unexpected stock volume %f", got)
	}
	p := NewPart("Slat", 500, 100, 20, 1)
	if got := p.Volume(); got != 500*100*20 {
		t.Errorf("unexpected part volume %f", got)
	}
}

func TestMaterialsCompatible(t *testing.T) {
	cases := []struct {
		part, stock string
		want        bool
	}{
		{"", "", true},
		{"", "pine", true},
		{"oak", "", true},
		{"oak", "oak", true},
		{"oak", "pine", false},
	}
	for _, tc := range cases {
		if got := MaterialsCompatible(tc.part, tc.stock); got != tc.want {
			t.Errorf("MaterialsCompatible(%q, %q) = %v, want %v", tc.part, tc.stock, got, tc.want)
		}
	}
}

func TestCuttingPlanVolumes(t *testing.T) {
	plan := CuttingPlan{
		Length: 1000, Width: 100, Thickness: 20,
		Cuts: []CutAssignment{
			{Length: 500, Width: 100, Thickness: 20},
			{Length: 300, Width: 100, Thickness: 20},
		},
		Offcuts: []Offcut{
			{Length: 150, Width: 100, Thickness: 20, Status: OffcutReusable},
			{Length: 50, Width: 100, Thickness: 20, Status: OffcutWaste},
		},
	}
	if got := plan.UsedVolume(); got != 800*100*20 {
		t.Errorf("unexpected used volume %f", got)
	}
	if got := plan.ReusableVolume(); got != 150*100*20 {
		t.Errorf("unexpected reusable volume %f", got)
	}
}

func TestNewProjectDefaults(t *testing.T) {
	p := NewProject()
	if p.Name != "Untitled" {
		t.Errorf("expected Untitled, got %s", p.Name)
	}
	if p.Inventory == nil || p.Parts == nil {
		t.Error("expected non-nil slices")
	}
	if p.Parameters.Kerf != DefaultParameters().Kerf {
		t.Error("expected default parameters")
	}
}
