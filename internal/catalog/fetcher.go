// Package catalog fetches and normalizes products from a product source.
package catalog

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/shopfront/internal/adapter/input"
	"github.com/jmylchreest/shopfront/internal/model"
)

// Result is the outcome of one fetch.
type Result struct {
	FetchID  string
	Products []model.Product
	Err      error
	Elapsed  time.Duration
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Fetcher reads products from a Source. It keeps no state between calls and
// is safe for concurrent use.
type Fetcher struct {
	source input.Source
	logger *slog.Logger
}

// NewFetcher creates a fetcher over source.
func NewFetcher(source input.Source, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{source: source, logger: logger}
}

// Fetch reads and normalizes every product, newest first, and reports the
// outcome explicitly. Products is never nil.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	start := time.Now()
	res := Result{FetchID: newFetchID(start), Products: []model.Product{}}

	logger := f.logger.With("fetch_id", res.FetchID, "source", f.source.Name())
	logger.Debug("fetching products")

	rows, err := f.source.Import(ctx)
	if err != nil {
		res.Err = fmt.Errorf("fetch products: %w", err)
		res.Elapsed = time.Since(start)
		return res
	}

	products, err := model.NormalizeProducts(rows)
	if err != nil {
		res.Err = fmt.Errorf("normalize products: %w", err)
		res.Elapsed = time.Since(start)
		return res
	}

	res.Products = products
	res.Elapsed = time.Since(start)
	logger.Debug("fetched products", "count", len(products), "elapsed", res.Elapsed)
	return res
}

// FetchProducts returns every product, newest first. Any failure is logged
// and yields an empty list, so an empty table and a failed fetch look the
// same to the caller; use Fetch to tell them apart.
func (f *Fetcher) FetchProducts(ctx context.Context) []model.Product {
	res := f.Fetch(ctx)
	if res.Err != nil {
		f.logger.Error("error fetching products",
			"fetch_id", res.FetchID,
			"source", f.source.Name(),
			"error", res.Err,
		)
		return []model.Product{}
	}
	return res.Products
}

// newFetchID returns a ULID used to correlate the log lines of one fetch.
func newFetchID(t time.Time) string {
	id, err := ulid.New(ulid.Timestamp(t), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}
