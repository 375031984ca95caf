// Package input provides product sources for the catalog.
package input

import (
	"context"

	"github.com/jmylchreest/shopfront/internal/config"
	"github.com/jmylchreest/shopfront/internal/model"
)

// Source reads raw product rows.
type Source interface {
	// Name returns the source identifier (e.g., "postgres", "stdin").
	Name() string

	// Import reads every row of the products table, newest first.
	Import(ctx context.Context) ([]model.ProductRow, error)
}

// NewSource creates a Source for the specified name.
// An empty name selects the configured source.
// The postgres source connects lazily on the first Import.
func NewSource(name string, cfg *config.Config) (Source, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if name == "" {
		name = cfg.Catalog.Source
	}

	switch name {
	case "postgres":
		return NewPostgresSource(cfg.Database), nil
	case "stdin":
		return NewStdinSource(), nil
	default:
		return nil, &SourceError{
			Source:  name,
			Message: "unknown product source",
		}
	}
}

// SourceError represents a source-related error.
type SourceError struct {
	Source  string
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	msg := e.Source + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
