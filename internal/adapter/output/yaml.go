package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/shopfront/internal/model"
)

// YAMLFormatter formats products as a YAML sequence.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes products as YAML.
func (f *YAMLFormatter) Format(w io.Writer, products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(products); err != nil {
		return err
	}
	return encoder.Close()
}
