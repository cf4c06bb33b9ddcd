// Package testutil provides throwaway SQLite catalogs for package tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/setup"
	"github.com/iliyamo/painting-catalog/schema"
)

// OpenDB creates an empty catalog schema in a temporary SQLite file. The
// pool is closed when the test ends.
func OpenDB(t testing.TB) *database.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	raw, err := sql.Open("sqlite", database.SQLiteDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := database.Wrap(raw, database.SQLite)
	fsys, err := schema.Files(string(database.SQLite))
	require.NoError(t, err)
	require.NoError(t, setup.Run(context.Background(), db, fsys, nil, schema.CreateTables))
	return db
}

// OpenSeededDB is OpenDB plus the bundled sample data.
func OpenSeededDB(t testing.TB) *database.DB {
	t.Helper()
	db := OpenDB(t)
	fsys, err := schema.Files(string(database.SQLite))
	require.NoError(t, err)
	require.NoError(t, setup.Run(context.Background(), db, fsys, nil, schema.SampleData))
	return db
}

// Session opens a scoped session on db, closed when the test ends.
func Session(t testing.TB, db *database.DB) *database.Session {
	t.Helper()
	s, err := db.Session(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// SeedMonet inserts France, Paris 75001, Claude Monet (1840-1926) and his
// Water Lilies located in Paris. It returns Monet's id.
func SeedMonet(t testing.TB, db *database.DB) int64 {
	t.Helper()
	ctx := context.Background()
	exec := func(q string, args ...any) {
		_, err := db.ExecContext(ctx, q, args...)
		require.NoError(t, err)
	}
	exec(`INSERT INTO country (iso, country_name) VALUES ('FR', 'France')`)
	exec(`INSERT INTO city (country_iso, zipcode, name) VALUES ('FR', '75001', 'Paris')`)
	res, err := db.ExecContext(ctx,
		`INSERT INTO artist (first_name, last_name, birth_year, death_year) VALUES ('Claude', 'Monet', 1840, 1926)`)
	require.NoError(t, err)
	artistID, err := res.LastInsertId()
	require.NoError(t, err)
	res, err = db.ExecContext(ctx,
		`INSERT INTO painting (title, style_type, year_created, wikipedia_url) VALUES ('Water Lilies', 'Impressionism', 1916, 'https://en.wikipedia.org/wiki/Water_Lilies_(Monet_series)')`)
	require.NoError(t, err)
	serial, err := res.LastInsertId()
	require.NoError(t, err)
	exec(`INSERT INTO painted (artist_id, painting_serial_number) VALUES (?, ?)`, artistID, serial)
	exec(`INSERT INTO visitable (city_country_iso, city_zipcode, painting_serial_number) VALUES ('FR', '75001', ?)`, serial)
	return artistID
}

// Count returns the row count of table.
func Count(t testing.TB, db *database.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
