package helpers

import (
	"database/sql"
	"path"
	"testing"

	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/migrations"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates a migrated temporary SQLite database that is closed with the test.
func NewTestDB(t *testing.T, dbName string) *sql.DB {
	t.Helper()

	dbConfig := config.DatabaseConfig{
		Path:              path.Join(t.TempDir(), dbName),
		EnableForeignKeys: true,
	}
	dbConfig.ApplyDefaults()

	require.NoError(t, migrations.RunMigrations(dbConfig))

	database, err := db.NewSQLiteDBFromConfig(dbConfig)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return database
}
