package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
)

//go:embed 001_core.sql
var mig001 string

//go:embed 002_indexer_state.sql
var mig002 string

func all() []db.Migration {
	return []db.Migration{
		{ID: "001_core.sql", SQL: mig001},
		{ID: "002_indexer_state.sql", SQL: mig002},
	}
}

// RunMigrations brings the indexer database described by cfg up to date.
func RunMigrations(cfg config.DatabaseConfig) error {
	return db.RunMigrations(cfg, all())
}

// RunMigrationsDB migrates an already opened database.
func RunMigrationsDB(log *logger.Logger, database *sql.DB) error {
	return db.RunMigrationsDB(log, database, all())
}
