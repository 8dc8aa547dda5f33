package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductTemplate captures the part list of a product built repeatedly
// (a pallet, a bed frame) so a cut list can be generated for any number
// of units without re-entering every part.
type ProductTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Parts       []Part `json:"parts"` // quantities are per single product unit
}

// NewProductTemplate creates a template from a per-unit part list.
func NewProductTemplate(name, description string, parts []Part) ProductTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProductTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Parts:       copyParts(parts),
	}
}

// Expand returns the full part list for building the given number of
// product units. Parts get fresh IDs so they are independent of the template.
func (t ProductTemplate) Expand(units int) []Part {
	if units < 1 {
		units = 1
	}
	parts := make([]Part, len(t.Parts))
	for i, p := range t.Parts {
		np := NewPart(p.Name, p.Length, p.Width, p.Thickness, p.Quantity*units)
		np.Rotations = p.Rotations
		np.GrainAlongLength = p.GrainAlongLength
		np.Material = p.Material
		np.Priority = p.Priority
		parts[i] = np
	}
	return parts
}

func copyParts(parts []Part) []Part {
	out := make([]Part, len(parts))
	copy(out, parts)
	return out
}

// TemplateStore holds a collection of product templates.
type TemplateStore struct {
	Templates []ProductTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ProductTemplate{}}
}

// Add appends a template to the store.
func (s *TemplateStore) Add(t ProductTemplate) {
	s.Templates = append(s.Templates, t)
}

// Remove deletes the template with the given ID. Returns true if found.
func (s *TemplateStore) Remove(id string) bool {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			s.Templates = append(s.Templates[:i], s.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (s *TemplateStore) FindByID(id string) *ProductTemplate {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			return &s.Templates[i]
		}
	}
	return nil
}

// DefaultTemplates returns the built-in product templates.
func DefaultTemplates() TemplateStore {
	plank := NewPart("Plank", 1200, 100, 20, 7)
	plank.Rotations = RotateWidthThickness
	stringer := NewPart("Stringer", 1200, 100, 75, 3)
	block := NewPart("Block", 100, 100, 75, 9)
	block.Rotations = RotateAll
	block.GrainAlongLength = false

	headboard := NewPart("Headboard rail", 1400, 140, 38, 2)
	sideRail := NewPart("Side rail", 2000, 140, 38, 2)
	slat := NewPart("Slat", 1400, 89, 19, 12)
	slat.Priority = 3
	leg := NewPart("Leg", 300, 89, 89, 4)
	leg.Priority = 8

	return TemplateStore{
		Templates: []ProductTemplate{
			NewProductTemplate("Euro pallet", "Standard 1200x800 stringer pallet",
				[]Part{plank, stringer, block}),
			NewProductTemplate("Bed frame", "Queen slatted bed frame",
				[]Part{headboard, sideRail, slat, leg}),
		},
	}
}
