package duckdbtesting

import (
	"database/sql"
	"testing"
	"time"

	"mturkqa/internal/duckdb"
	"mturkqa/internal/testutil"
)

const defaultTimeout = 2 * time.Second

// Open opens an archive at dsn with the schema applied and closes it when
// the test ends. Use ":memory:" for an isolated in-memory database.
func Open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	db, err := duckdb.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// QueryInt returns a single integer value from the database.
func QueryInt(t testing.TB, db *sql.DB, query string, args ...interface{}) int {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query int failed: %v", err)
	}
	return out
}
