package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/shopfront/internal/model"
)

// PlainFormatter formats products as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{
		opts:     opts,
		template: parseTemplate("plain", opts.Template),
	}
}

// Format writes products as plain text.
func (f *PlainFormatter) Format(w io.Writer, products []model.Product) error {
	for i := range products {
		if err := f.formatProduct(w, i+1, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

// formatProduct formats a single product.
func (f *PlainFormatter) formatProduct(w io.Writer, index int, p *model.Product) error {
	if f.template != nil {
		if err := f.template.Execute(w, newTemplateData(index, p)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	sb.WriteString(p.Name)
	sb.WriteString(" - " + p.FormattedPrice())

	if f.opts.ShowCategory && p.Category != "" {
		sb.WriteString(fmt.Sprintf(" <%s>", p.Category))
	}

	sb.WriteString(fmt.Sprintf(" (%s in stock)", humanize.Comma(int64(p.Stock))))

	if f.opts.ShowAge {
		if age := p.Age(); age != "" {
			sb.WriteString(" " + age)
		}
	}

	sb.WriteString("\n")

	if p.Description != "" {
		sb.WriteString("    " + p.DescriptionTruncated(f.opts.DescriptionMaxLen) + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatField outputs a specific field from a product.
func FormatField(p *model.Product, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return p.ID
	case "name":
		return p.Name
	case "description", "desc":
		return p.Description
	case "price":
		return p.FormattedPrice()
	case "category":
		return p.Category
	case "stock":
		return fmt.Sprintf("%d", p.Stock)
	case "image", "image_url", "imageurl":
		return p.ImageURL
	case "all", "full":
		return fmt.Sprintf("%s\n%s", p.Name, p.Description)
	default:
		return p.Name
	}
}
