package output

import (
	"text/template"

	"github.com/jmylchreest/shopfront/internal/model"
)

// templateData is passed to custom templates.
type templateData struct {
	Index   int
	Product *model.Product
	Price   string
	Age     string
}

func newTemplateData(index int, p *model.Product) templateData {
	return templateData{
		Index:   index,
		Product: p,
		Price:   p.FormattedPrice(),
		Age:     p.Age(),
	}
}

// templateFuncs returns the functions available to custom templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(n int, s string) string {
			p := model.Product{Description: s}
			return p.DescriptionTruncated(n)
		},
	}
}

// parseTemplate parses tmpl, returning nil when it is empty or invalid.
func parseTemplate(name, tmpl string) *template.Template {
	if tmpl == "" {
		return nil
	}
	t, err := template.New(name).Funcs(templateFuncs()).Parse(tmpl)
	if err != nil {
		return nil
	}
	return t
}
