package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StickCut/internal/model"
)

func TestCollectLabelInfos(t *testing.T) {
	result := buildTestResult()
	labels := CollectLabelInfos(result)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	first := labels[0]
	if first.PartName != "Side rail" {
		t.Errorf("expected Side rail, got %s", first.PartName)
	}
	if first.StickIndex != 1 || first.StickID != "stick-1" {
		t.Errorf("unexpected stick reference: %+v", first)
	}
	if first.Length != 2000 || first.Width != 89 || first.Thickness != 38 {
		t.Errorf("unexpected dimensions: %+v", first)
	}
	if first.Orientation != "" {
		t.Error("identity placements should have no orientation text")
	}

	last := labels[2]
	if last.StickIndex != 2 || last.PartName != "Block" {
		t.Errorf("unexpected last label: %+v", last)
	}
}

func TestCollectLabelInfos_RotatedParts(t *testing.T) {
	result := buildTestResult()
	result.Plans[0].Cuts[1].Orientation = model.OrientWidthThickness

	labels := CollectLabelInfos(result)
	if labels[1].Orientation == "" {
		t.Error("rotated placements should carry the orientation text")
	}
}

func TestExportLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestResult()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("label PDF was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("label PDF seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_NoParts(t *testing.T) {
	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), model.OptimizationResult{})
	if err == nil {
		t.Fatal("expected error when nothing was placed")
	}
}
