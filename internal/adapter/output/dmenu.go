package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/shopfront/internal/model"
)

// DmenuFormatter formats products one per line for dmenu/rofi/fuzzel.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	return &DmenuFormatter{
		opts:     opts,
		template: parseTemplate("dmenu", opts.Template),
	}
}

// Format writes products in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, products []model.Product) error {
	for i := range products {
		if _, err := fmt.Fprintln(w, f.formatLine(i+1, &products[i])); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single product line: index | name | price | category.
func (f *DmenuFormatter) formatLine(index int, p *model.Product) string {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, newTemplateData(index, p)); err == nil {
			return buf.String()
		}
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	var parts []string
	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}
	parts = append(parts, p.Name, p.FormattedPrice())
	if f.opts.ShowCategory && p.Category != "" {
		parts = append(parts, p.Category)
	}

	// Lines must not contain newlines
	return strings.ReplaceAll(strings.Join(parts, sep), "\n", " ")
}
