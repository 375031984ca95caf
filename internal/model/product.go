// Package model defines the core data structures for shopfront.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Product is the normalized product record handed to every consumer.
// All fields are always populated; nullable source columns become "".
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	Stock       int     `json:"stock" yaml:"stock"`
	ImageURL    string  `json:"imageUrl" yaml:"imageUrl"`

	// CreatedAt is kept for presentation only and is not part of the wire shape.
	CreatedAt time.Time `json:"-" yaml:"-"`
}

// ProductRow is one raw row of the products table.
// Nullable columns are pointers; Price holds the stored value in text form.
type ProductRow struct {
	ID          string
	Name        *string
	Description *string
	Price       *string
	Category    *string
	Stock       int64
	ImageURL    *string
	CreatedAt   time.Time
}

// Normalization and validation errors.
var (
	ErrEmptyID       = errors.New("id cannot be empty")
	ErrInvalidPrice  = errors.New("price is not a number")
	ErrNegativePrice = errors.New("price cannot be negative")
)

// NormalizeProduct maps a raw row onto the Product shape.
func NormalizeProduct(row ProductRow) (Product, error) {
	price, err := coercePrice(row.Price)
	if err != nil {
		return Product{}, fmt.Errorf("product %s: %w", row.ID, err)
	}

	p := Product{
		ID:          row.ID,
		Name:        deref(row.Name),
		Description: deref(row.Description),
		Price:       price,
		Category:    deref(row.Category),
		Stock:       int(row.Stock),
		ImageURL:    deref(row.ImageURL),
		CreatedAt:   row.CreatedAt,
	}
	if err := p.Validate(); err != nil {
		return Product{}, fmt.Errorf("product %q: %w", row.ID, err)
	}
	return p, nil
}

// NormalizeProducts maps every row, newest first.
// The first row that cannot be mapped aborts the whole batch.
func NormalizeProducts(rows []ProductRow) ([]Product, error) {
	ordered := make([]ProductRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	products := make([]Product, 0, len(ordered))
	for _, row := range ordered {
		p, err := NormalizeProduct(row)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// coercePrice converts the stored price text into a float.
// A null price is treated as zero.
func coercePrice(raw *string) (float64, error) {
	if raw == nil {
		return 0, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativePrice, d.String())
	}

	// Prices are exposed as float64; rounding is accepted here
	return d.InexactFloat64(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Validate checks the invariants of a normalized product.
func (p *Product) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// FormattedPrice renders the price with two decimals.
func (p *Product) FormattedPrice() string {
	return decimal.NewFromFloat(p.Price).StringFixed(2)
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Age returns a human-readable age such as "3 days ago".
// Returns "" when the creation time is unknown.
func (p *Product) Age() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return humanize.Time(p.CreatedAt)
}

// DescriptionTruncated returns the description cut to maxLen runes with an ellipsis.
func (p *Product) DescriptionTruncated(maxLen int) string {
	desc := strings.ReplaceAll(p.Description, "\n", " ")
	runes := []rune(desc)
	if maxLen <= 0 || len(runes) <= maxLen {
		return desc
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
