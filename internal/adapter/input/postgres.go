package input

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmylchreest/shopfront/internal/config"
	"github.com/jmylchreest/shopfront/internal/model"
)

// listProductsQuery reads every product, newest first. Numeric and uuid
// columns are cast to text so the row shape does not depend on column types.
const listProductsQuery = `
SELECT id::text, name, description, price::text, category, stock, image_url, created_at::timestamptz
FROM products
ORDER BY created_at DESC`

// Querier is the subset of pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads products from the hosted Postgres database.
type PostgresSource struct {
	cfg config.DatabaseConfig

	mu   sync.Mutex
	db   Querier
	pool *pgxpool.Pool
}

// NewPostgresSource creates a source that connects on first use.
func NewPostgresSource(cfg config.DatabaseConfig) *PostgresSource {
	return &PostgresSource{cfg: cfg}
}

// NewPostgresSourceWithQuerier creates a source over an existing connection.
func NewPostgresSourceWithQuerier(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// Name returns the source identifier.
func (s *PostgresSource) Name() string {
	return "postgres"
}

// Import runs the product query and scans every row.
func (s *PostgresSource) Import(ctx context.Context) ([]model.ProductRow, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "failed to connect", Err: err}
	}

	rows, err := db.Query(ctx, listProductsQuery)
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "failed to query products", Err: err}
	}

	products, err := pgx.CollectRows(rows, scanProductRow)
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "failed to read products", Err: err}
	}

	return products, nil
}

// Close releases the pool if this source created one.
func (s *PostgresSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
		s.db = nil
	}
}

// conn returns the querier, creating the pool on first use.
func (s *PostgresSource) conn(ctx context.Context) (Querier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	pool, err := newPgxPool(ctx, s.cfg)
	if err != nil {
		return nil, err
	}

	s.pool = pool
	s.db = pool
	return pool, nil
}

// newPgxPool creates a new pgx pool with the given configuration.
func newPgxPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pgConf, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.MaxConns > 0 {
		pgConf.MaxConns = cfg.MaxConns
	}
	pgConf.MinConns = cfg.MinConns
	if timeout := cfg.ConnectTimeout.Duration(); timeout > 0 {
		pgConf.ConnConfig.ConnectTimeout = timeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgConf)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// scanProductRow scans one result row; nullable columns go through pgtype.
func scanProductRow(row pgx.CollectableRow) (model.ProductRow, error) {
	var (
		id          string
		name        pgtype.Text
		description pgtype.Text
		price       pgtype.Text
		category    pgtype.Text
		stock       pgtype.Int8
		imageURL    pgtype.Text
		createdAt   pgtype.Timestamptz
	)

	if err := row.Scan(&id, &name, &description, &price, &category, &stock, &imageURL, &createdAt); err != nil {
		return model.ProductRow{}, err
	}

	return model.ProductRow{
		ID:          id,
		Name:        textPtr(name),
		Description: textPtr(description),
		Price:       textPtr(price),
		Category:    textPtr(category),
		Stock:       stock.Int64,
		ImageURL:    textPtr(imageURL),
		CreatedAt:   createdAt.Time,
	}, nil
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
