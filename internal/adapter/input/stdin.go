package input

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmylchreest/shopfront/internal/model"
)

// maxStdinSize caps how much input is read.
const maxStdinSize = 10 * 1024 * 1024

// StdinSource reads product rows as a JSON array from standard input,
// in the shape the hosted database's REST API returns.
type StdinSource struct {
	reader io.Reader
}

// NewStdinSource creates a new StdinSource reading from os.Stdin.
func NewStdinSource() *StdinSource {
	return &StdinSource{reader: os.Stdin}
}

// NewStdinSourceWithReader creates a new StdinSource with a custom reader.
func NewStdinSourceWithReader(r io.Reader) *StdinSource {
	return &StdinSource{reader: r}
}

// Name returns the source identifier.
func (s *StdinSource) Name() string {
	return "stdin"
}

// Import reads and decodes every row.
func (s *StdinSource) Import(ctx context.Context) ([]model.ProductRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(s.reader, maxStdinSize))
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "failed to read stdin", Err: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	return parseRows(data)
}

// restRow is one product as returned by the REST API.
type restRow struct {
	ID          json.RawMessage `json:"id"`
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price"`
	Category    *string         `json:"category"`
	Stock       *int64          `json:"stock"`
	ImageURL    *string         `json:"image_url"`
	CreatedAt   restTime        `json:"created_at"`
}

// restTimeLayouts are tried in order; layouts without a zone are read as UTC.
var restTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// restTime accepts timestamptz and timestamp (no zone) columns.
type restTime struct {
	time.Time
}

func (t *restTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range restTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("created_at: unrecognized timestamp %q", s)
}

// parseRows parses a JSON array of REST rows.
func parseRows(data []byte) ([]model.ProductRow, error) {
	var entries []restRow
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &SourceError{Source: "stdin", Message: "failed to parse JSON input", Err: err}
	}

	rows := make([]model.ProductRow, 0, len(entries))
	for i, entry := range entries {
		row, err := convertRestRow(entry)
		if err != nil {
			return nil, &SourceError{Source: "stdin", Message: fmt.Sprintf("invalid row %d", i), Err: err}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func convertRestRow(entry restRow) (model.ProductRow, error) {
	id, err := scalarText(entry.ID)
	if err != nil {
		return model.ProductRow{}, fmt.Errorf("id: %w", err)
	}
	if id == nil || *id == "" {
		return model.ProductRow{}, model.ErrEmptyID
	}

	price, err := scalarText(entry.Price)
	if err != nil {
		return model.ProductRow{}, fmt.Errorf("price: %w", err)
	}

	var stock int64
	if entry.Stock != nil {
		stock = *entry.Stock
	}

	return model.ProductRow{
		ID:          *id,
		Name:        entry.Name,
		Description: entry.Description,
		Price:       price,
		Category:    entry.Category,
		Stock:       stock,
		ImageURL:    entry.ImageURL,
		CreatedAt:   entry.CreatedAt.Time,
	}, nil
}

// scalarText returns a JSON string or number as text; null or absent is nil.
func scalarText(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("expected string or number, got %s", raw)
	}
	s := n.String()
	return &s, nil
}
