package core

import (
	"sort"
	"strings"

	"github.com/jmylchreest/shopfront/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByCreated SortField = "created"
	SortByName    SortField = "name"
	SortByPrice   SortField = "price"
	SortByStock   SortField = "stock"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns default sort options (newest first).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByCreated,
		Order: SortDesc,
	}
}

// Sort sorts products in place based on the provided options.
// Equal keys keep their relative order.
func Sort(products []model.Product, opts SortOptions) {
	if len(products) == 0 {
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if opts.Order == SortDesc {
			a, b = b, a
		}

		switch opts.Field {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByPrice:
			return a.Price < b.Price
		case SortByStock:
			return a.Stock < b.Stock
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

// ParseSortField parses a sort field string.
// Unknown values fall back to creation time.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "n":
		return SortByName, nil
	case "price", "p":
		return SortByPrice, nil
	case "stock", "s":
		return SortByStock, nil
	default:
		return SortByCreated, nil
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "a":
		return SortAsc, nil
	default:
		return SortDesc, nil
	}
}
