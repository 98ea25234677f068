// Package sqlstoretest opens throwaway sqlite stores carrying the trips schema.
package sqlstoretest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/storage/sqlstore"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const schema = `
CREATE TABLE trips (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    destination    TEXT NOT NULL,
    departure_date TEXT NOT NULL,
    return_date    TEXT NOT NULL,
    activities     TEXT NOT NULL,
    accommodation  TEXT NOT NULL,
    plan_details   TEXT NOT NULL
);
CREATE TABLE feedback (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    trip_id  INTEGER,
    rating   INTEGER NOT NULL,
    comments TEXT NOT NULL
);
`

// Open creates a file-backed sqlite database under t.TempDir, applies the
// schema and returns a provider in the given connection mode.
func Open(t *testing.T, mode string) *sqlstore.Provider {
	t.Helper()

	cfg := &config.DatabaseConfig{
		URL:      filepath.Join(t.TempDir(), "trips.db"),
		Driver:   "sqlite",
		ConnMode: mode,
	}
	p := sqlstore.NewProvider(cfg)
	t.Cleanup(func() { _ = p.Close() })

	err := p.Do(context.Background(), func(db *sqlx.DB) error {
		_, err := db.Exec(schema)
		return err
	})
	require.NoError(t, err)

	return p
}
