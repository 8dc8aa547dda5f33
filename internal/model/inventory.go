package model

import "github.com/google/uuid"

// StockPreset represents a reusable lumber definition for the catalog.
type StockPreset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Thickness   float64 `json:"thickness"`
	Material    string  `json:"material"`
	CostPerUnit float64 `json:"cost_per_unit"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, length, width, thickness float64, material string, cost float64) StockPreset {
	return StockPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Length:      length,
		Width:       width,
		Thickness:   thickness,
		Material:    material,
		CostPerUnit: cost,
	}
}

// ToLumberStock converts a preset into an inventory row with the given quantity.
func (sp StockPreset) ToLumberStock(qty int) LumberStock {
	s := NewLumberStock(sp.Name, sp.Length, sp.Width, sp.Thickness, qty)
	s.Material = sp.Material
	s.CostPerUnit = sp.CostPerUnit
	return s
}

// Inventory holds the user's saved lumber presets.
type Inventory struct {
	Stocks []StockPreset `json:"stocks"`
}

// DefaultInventory returns an inventory populated with common lumber sizes.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset("Pine 2x4 8ft (2440x89x38)", 2440, 89, 38, "Pine", 6.50),
			NewStockPreset("Pine 2x4 10ft (3050x89x38)", 3050, 89, 38, "Pine", 8.25),
			NewStockPreset("Pine 2x6 8ft (2440x140x38)", 2440, 140, 38, "Pine", 9.80),
			NewStockPreset("Pine 1x4 8ft (2440x89x19)", 2440, 89, 19, "Pine", 4.20),
			NewStockPreset("Oak board 2000x150x25", 2000, 150, 25, "Oak", 24.00),
			NewStockPreset("Oak board 2500x200x50", 2500, 200, 50, "Oak", 52.00),
			NewStockPreset("Teak plank 2100x100x20", 2100, 100, 20, "Teak", 38.00),
			NewStockPreset("Hardwood stringer 1500x100x75", 1500, 100, 75, "", 14.50),
		},
	}
}

// FindStockByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns the preset names in catalog order.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}
