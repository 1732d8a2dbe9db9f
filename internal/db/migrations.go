package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	upMarker          = "-- +migrate Up"
	downMarker        = "-- +migrate Down"
	NoLimitMigrations = 0 // indicate that there is no limit on the number of migrations to run
)

// Migration is one embedded SQL file with a Down section followed by an Up section.
type Migration struct {
	ID  string
	SQL string
}

// RunMigrations opens the database described by cfg and applies all pending migrations.
func RunMigrations(cfg config.DatabaseConfig, migrations []Migration) error {
	db, err := NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("error creating DB %w", err)
	}
	defer db.Close()

	return RunMigrationsDB(logger.GetDefaultLogger(), db, migrations)
}

// RunMigrationsDB applies all pending migrations on an open database.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return RunMigrationsDBExtended(log, db, migrations, migrate.Up, NoLimitMigrations)
}

// RunMigrationsDBExtended applies at most maxMigrations migrations in direction dir.
func RunMigrationsDBExtended(log *logger.Logger,
	db *sql.DB,
	migrations []Migration,
	dir migrate.MigrationDirection,
	maxMigrations int) error {
	source := &migrate.MemoryMigrationSource{}
	ids := make([]string, 0, len(migrations))

	for _, m := range migrations {
		down, up, found := strings.Cut(m.SQL, upMarker)
		if !found {
			return fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
		}

		if _, after, ok := strings.Cut(down, downMarker); ok {
			down = after
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.ID,
			Up:   []string{strings.TrimSpace(up)},
			Down: []string{strings.TrimSpace(down)},
		})
		ids = append(ids, m.ID)
	}

	log.Debugf("running migrations (max %d): %s", maxMigrations, strings.Join(ids, ", "))

	n, err := migrate.ExecMax(db, "sqlite3", source, dir, maxMigrations)
	if err != nil {
		return fmt.Errorf("error executing migrations %s: %w", strings.Join(ids, ", "), err)
	}

	log.Infof("successfully ran %d migrations from: %s", n, strings.Join(ids, ", "))
	return nil
}
