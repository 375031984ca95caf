// Package core provides filtering, sorting, and lookup logic.
package core

import (
	"strings"

	"github.com/jmylchreest/shopfront/internal/model"
)

// FilterOptions specifies criteria for filtering products.
type FilterOptions struct {
	Category    string // Case-insensitive exact match on category
	InStockOnly bool   // Drop products with no stock
	Limit       int    // Maximum results (0=unlimited)
}

// Filter filters products based on the provided options.
// The input order is preserved.
func Filter(products []model.Product, opts FilterOptions) []model.Product {
	result := make([]model.Product, 0, len(products))

	for _, p := range products {
		if opts.Category != "" && !strings.EqualFold(p.Category, opts.Category) {
			continue
		}

		if opts.InStockOnly && !p.InStock() {
			continue
		}

		result = append(result, p)
		if opts.Limit > 0 && len(result) >= opts.Limit {
			break
		}
	}

	return result
}

// Search finds products whose name, description or category contain term.
// Case-insensitive substring match.
func Search(products []model.Product, term string) []model.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}

	var result []model.Product
	for _, p := range products {
		if Matches(p, term) {
			result = append(result, p)
		}
	}

	return result
}

// Matches reports whether a product matches an already lower-cased term.
func Matches(p model.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

// Categories returns the sorted, de-duplicated categories present in products.
func Categories(products []model.Product) []string {
	seen := make(map[string]bool)
	var categories []string

	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	sortStrings(categories)
	return categories
}

// sortStrings sorts strings in place (simple insertion sort for small lists).
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && strings.ToLower(s[j]) < strings.ToLower(s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
