// Package output provides output formatters for products.
package output

import (
	"io"

	"github.com/jmylchreest/shopfront/internal/model"
)

// Formatter formats products for output.
type Formatter interface {
	// Format writes formatted products to the writer.
	Format(w io.Writer, products []model.Product) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatDmenu FormatType = "dmenu"
	FormatIDs   FormatType = "ids"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template          string // Custom template for plain/dmenu format
	ShowIndex         bool   // Show 1-based index prefix
	ShowCategory      bool   // Show category
	ShowAge           bool   // Show relative creation time
	DescriptionMaxLen int    // Maximum description length (0 = unlimited)
	Separator         string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:         true,
		ShowCategory:      true,
		ShowAge:           false,
		DescriptionMaxLen: 80,
		Separator:         " | ",
	}
}
