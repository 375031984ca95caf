package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/shopfront/internal/model"
)

// JSONFormatter formats products as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes products as a JSON array; no products encode as [].
func (f *JSONFormatter) Format(w io.Writer, products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(products)
}

// FormatSingle writes a single product as JSON.
func (f *JSONFormatter) FormatSingle(w io.Writer, p *model.Product) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(p)
}
