package migrations

import (
	"path/filepath"
	"testing"

	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_SeedsCheckpoint(t *testing.T) {
	t.Parallel()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "indexer.db")}
	cfg.ApplyDefaults()

	require.NoError(t, RunMigrations(cfg))
	// second run is a no-op
	require.NoError(t, RunMigrations(cfg))

	database, err := db.NewSQLiteDBFromConfig(cfg)
	require.NoError(t, err)
	defer database.Close()

	var lastBlock uint64
	require.NoError(t, database.QueryRow(`SELECT last_block FROM sync_state WHERE id = 1`).Scan(&lastBlock))
	require.Zero(t, lastBlock)

	for _, table := range []string{"users", "user_socials", "event_places", "events", "tickets",
		"notifications", "quarantined_logs"} {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n), table)
	}
}

func TestRunMigrations_Down(t *testing.T) {
	t.Parallel()

	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "indexer.db"))
	require.NoError(t, err)
	defer database.Close()

	log := logger.NewNopLogger()
	require.NoError(t, RunMigrationsDB(log, database))
	require.NoError(t, db.RunMigrationsDBExtended(log, database, all(), migrate.Down, db.NoLimitMigrations))

	var n int
	require.NoError(t, database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'events'`).Scan(&n))
	require.Zero(t, n)
}
