package input

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/shopfront/internal/config"
	"github.com/jmylchreest/shopfront/internal/model"
)

func TestNewSource(t *testing.T) {
	cfg := config.DefaultConfig()

	src, err := NewSource("", cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", src.Name())

	src, err = NewSource("stdin", cfg)
	require.NoError(t, err)
	assert.Equal(t, "stdin", src.Name())

	_, err = NewSource("mysql", cfg)
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "mysql", srcErr.Source)
}

func TestSourceError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &SourceError{Source: "postgres", Message: "failed to connect", Err: inner}

	assert.Equal(t, "postgres: failed to connect: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)

	err = &SourceError{Source: "stdin", Message: "empty"}
	assert.Equal(t, "stdin: empty", err.Error())
}

func TestStdinSource_Import(t *testing.T) {
	input := `[
		{"id": "1", "name": "A", "description": null, "price": "9.99", "category": null,
		 "stock": 5, "image_url": null, "created_at": "2024-01-01T00:00:00+00:00"},
		{"id": 2, "name": "B", "description": "Blue", "price": 12.5, "category": "Mugs",
		 "stock": null, "image_url": "https://img.example.com/b.png", "created_at": "2024-02-01T10:30:00.123456+00:00"}
	]`

	rows, err := NewStdinSourceWithReader(strings.NewReader(input)).Import(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0].ID)
	require.NotNil(t, rows[0].Name)
	assert.Equal(t, "A", *rows[0].Name)
	assert.Nil(t, rows[0].Description)
	require.NotNil(t, rows[0].Price)
	assert.Equal(t, "9.99", *rows[0].Price)
	assert.Nil(t, rows[0].Category)
	assert.Equal(t, int64(5), rows[0].Stock)
	assert.Nil(t, rows[0].ImageURL)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rows[0].CreatedAt.UTC())

	assert.Equal(t, "2", rows[1].ID)
	assert.Equal(t, "12.5", *rows[1].Price)
	assert.Equal(t, int64(0), rows[1].Stock)
	assert.Equal(t, "Mugs", *rows[1].Category)
}

func TestStdinSource_Timestamps(t *testing.T) {
	want := time.Date(2024, 1, 1, 12, 30, 0, 123456000, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"timestamptz", `"2024-01-01T12:30:00.123456+00:00"`, want},
		{"timestamptz with space", `"2024-01-01 12:30:00.123456+00:00"`, want},
		{"timestamp without zone", `"2024-01-01T12:30:00.123456"`, want},
		{"timestamp with space", `"2024-01-01 12:30:00.123456"`, want},
		{"whole seconds", `"2024-01-01T12:30:00"`, want.Truncate(time.Second)},
		{"null", `null`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `[{"id": "1", "created_at": ` + tt.raw + `}]`
			rows, err := NewStdinSourceWithReader(strings.NewReader(input)).Import(context.Background())
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.True(t, tt.want.Equal(rows[0].CreatedAt), "got %s", rows[0].CreatedAt)
		})
	}
}

func TestStdinSource_Empty(t *testing.T) {
	rows, err := NewStdinSourceWithReader(strings.NewReader("  \n")).Import(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStdinSource_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "products please"},
		{"missing id", `[{"name": "A"}]`},
		{"object price", `[{"id": "1", "price": {"amount": 1}}]`},
		{"bad timestamp", `[{"id": "1", "created_at": "yesterday"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStdinSourceWithReader(strings.NewReader(tt.input)).Import(context.Background())
			var srcErr *SourceError
			assert.ErrorAs(t, err, &srcErr)
		})
	}
}

func TestStdinSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStdinSourceWithReader(strings.NewReader("[]")).Import(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// fakeRows is an in-memory pgx.Rows.
type fakeRows struct {
	data   [][]any
	idx    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.data) {
		r.Close()
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.idx-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	values := r.data[r.idx-1]
	if len(dest) != len(values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *string:
			*target = values[i].(string)
		case interface{ Scan(any) error }:
			if err := target.Scan(values[i]); err != nil {
				return err
			}
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeQuerier struct {
	rows  *fakeRows
	err   error
	query string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.query = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestPostgresSource_Import(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	q := &fakeQuerier{rows: &fakeRows{data: [][]any{
		{"1", "A", nil, "9.99", nil, int64(5), nil, created},
		{"2", "B", "Blue", "12.50", "Mugs", nil, "https://img.example.com/b.png", created.Add(-time.Hour)},
	}}}

	rows, err := NewPostgresSourceWithQuerier(q).Import(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Contains(t, q.query, "FROM products")
	assert.Contains(t, q.query, "ORDER BY created_at DESC")
	assert.True(t, q.rows.closed)

	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, "A", *rows[0].Name)
	assert.Nil(t, rows[0].Description)
	assert.Equal(t, "9.99", *rows[0].Price)
	assert.Nil(t, rows[0].Category)
	assert.Equal(t, int64(5), rows[0].Stock)
	assert.Nil(t, rows[0].ImageURL)
	assert.True(t, created.Equal(rows[0].CreatedAt))

	assert.Equal(t, "Blue", *rows[1].Description)
	assert.Equal(t, int64(0), rows[1].Stock)

	products, err := model.NormalizeProducts(rows)
	require.NoError(t, err)
	assert.Equal(t, 12.5, products[1].Price)
}

func TestPostgresSource_QueryError(t *testing.T) {
	q := &fakeQuerier{err: errors.New("relation \"products\" does not exist")}

	_, err := NewPostgresSourceWithQuerier(q).Import(context.Background())

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "failed to query products", srcErr.Message)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestPostgresSource_RowsError(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{err: errors.New("connection reset")}}

	_, err := NewPostgresSourceWithQuerier(q).Import(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestPostgresSource_BadURL(t *testing.T) {
	src := NewPostgresSource(config.DatabaseConfig{URL: "postgres://shop:secret@%zz/shop"})

	_, err := src.Import(context.Background())

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "failed to connect", srcErr.Message)
	src.Close()
}
