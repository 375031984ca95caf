package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/shopfront/internal/model"
)

// IDsFormatter outputs just the product ids, one per line.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes product ids to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, products []model.Product) error {
	for _, p := range products {
		if _, err := fmt.Fprintln(w, p.ID); err != nil {
			return err
		}
	}
	return nil
}
