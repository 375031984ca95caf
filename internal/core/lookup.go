package core

import "github.com/jmylchreest/shopfront/internal/model"

// LookupByID finds a product by its id.
// Returns nil if not found.
func LookupByID(products []model.Product, id string) *model.Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}

// LookupByIndex finds a product by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(products []model.Product, index int) *model.Product {
	idx := index - 1
	if idx < 0 || idx >= len(products) {
		return nil
	}
	return &products[idx]
}

// NewIDs returns the ids in current that are absent from previous, in current order.
func NewIDs(previous, current []model.Product) []string {
	known := make(map[string]struct{}, len(previous))
	for _, p := range previous {
		known[p.ID] = struct{}{}
	}

	var fresh []string
	for _, p := range current {
		if _, ok := known[p.ID]; !ok {
			fresh = append(fresh, p.ID)
		}
	}
	return fresh
}
