package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StickCut/internal/model"
)

func TestLoadInventoryCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(inv.Stocks) != len(model.DefaultInventory().Stocks) {
		t.Error("expected the default catalog for a missing file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("defaults should have been written to disk")
	}
}

func TestInventoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv := model.Inventory{Stocks: []model.StockPreset{
		model.NewStockPreset("Walnut board", 1800, 150, 30, "Walnut", 45),
	}}
	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Stocks) != 1 || loaded.Stocks[0].Name != "Walnut board" {
		t.Error("custom catalog should round-trip, not be replaced by defaults")
	}
}

func TestLoadTemplatesMissingReturnsBuiltins(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "templates.json"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(store.Templates) != 2 {
		t.Errorf("expected the 2 built-in templates, got %d", len(store.Templates))
	}
}

func TestTemplatesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := model.NewTemplateStore()
	store.Add(model.NewProductTemplate("Shelf", "wall shelf",
		[]model.Part{model.NewPart("Board", 800, 200, 18, 3)}))
	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Templates) != 1 || loaded.Templates[0].Name != "Shelf" {
		t.Error("saved templates should round-trip")
	}
}
