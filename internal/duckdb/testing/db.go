package duckdbtesting

import (
	"database/sql"
	"testing"
	"time"

	"legalkit/internal/duckdb"
	"legalkit/internal/testutil"
)

const (
	defaultTimeout = 2 * time.Second
)

// Open opens an in-memory DuckDB connection with the schema applied.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	conn, err := duckdb.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
