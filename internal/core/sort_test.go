package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/shopfront/internal/model"
)

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSort_Empty(t *testing.T) {
	var products []model.Product
	Sort(products, DefaultSortOptions())
	assert.Len(t, products, 0)
}

func TestSort_ByCreatedDesc(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{
		{ID: "1", CreatedAt: base},
		{ID: "2", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "3", CreatedAt: base.Add(time.Hour)},
	}

	Sort(products, DefaultSortOptions())

	assert.Equal(t, []string{"2", "3", "1"}, ids(products))
}

func TestSort_ByPrice(t *testing.T) {
	products := []model.Product{
		{ID: "1", Price: 5},
		{ID: "2", Price: 1.5},
		{ID: "3", Price: 20},
	}

	Sort(products, SortOptions{Field: SortByPrice, Order: SortAsc})
	assert.Equal(t, []string{"2", "1", "3"}, ids(products))

	Sort(products, SortOptions{Field: SortByPrice, Order: SortDesc})
	assert.Equal(t, []string{"3", "1", "2"}, ids(products))
}

func TestSort_ByNameIgnoresCase(t *testing.T) {
	products := []model.Product{
		{ID: "1", Name: "mug"},
		{ID: "2", Name: "Apron"},
		{ID: "3", Name: "kettle"},
	}

	Sort(products, SortOptions{Field: SortByName, Order: SortAsc})

	assert.Equal(t, []string{"2", "3", "1"}, ids(products))
}

func TestSort_DescIsStable(t *testing.T) {
	products := []model.Product{
		{ID: "1", Stock: 3},
		{ID: "2", Stock: 3},
		{ID: "3", Stock: 9},
	}

	Sort(products, SortOptions{Field: SortByStock, Order: SortDesc})

	assert.Equal(t, []string{"3", "1", "2"}, ids(products))
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected SortField
	}{
		{"name", SortByName},
		{"N", SortByName},
		{"price", SortByPrice},
		{"stock", SortByStock},
		{"created", SortByCreated},
		{"whatever", SortByCreated},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	got, _ := ParseSortOrder("asc")
	assert.Equal(t, SortAsc, got)

	got, _ = ParseSortOrder("DESC")
	assert.Equal(t, SortDesc, got)

	got, _ = ParseSortOrder("")
	assert.Equal(t, SortDesc, got)
}
