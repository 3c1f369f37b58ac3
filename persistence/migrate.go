package persistence

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

var migrationDirs = map[string]string{
	DriverPostgres: "migrations/postgres",
	DriverMySQL:    "migrations/mysql",
	DriverSQLite:   "migrations/sqlite3",
}

// Migrate applies every pending migration for the configured engine. It
// uses its own connection, closed before returning.
func Migrate(config Configuration) error {
	dir, ok := migrationDirs[config.Driver]
	if !ok {
		return fmt.Errorf("no migrations for driver '%s'", config.Driver)
	}
	src, err := iofs.New(migrations, dir)
	if err != nil {
		return fmt.Errorf("cannot read migrations: %w", err)
	}
	db, err := sql.Open(config.Driver, config.Connection)
	if err != nil {
		return fmt.Errorf("cannot open migration connection: %w", err)
	}
	driver, err := migrationDriver(config.Driver, db)
	if err != nil {
		db.Close()
		return fmt.Errorf("cannot create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, config.Driver, driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("cannot create migrator: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("[PMADMIN] Database schema is up to date")
			return nil
		}
		return fmt.Errorf("cannot apply migrations: %w", err)
	}
	version, _, _ := m.Version()
	log.Printf("[PMADMIN] Database schema migrated to version %d\n", version)
	return nil
}

func migrationDriver(name string, db *sql.DB) (database.Driver, error) {
	switch name {
	case DriverPostgres:
		return migratepgx.WithInstance(db, &migratepgx.Config{})
	case DriverMySQL:
		return migratemysql.WithInstance(db, &migratemysql.Config{})
	case DriverSQLite:
		return migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", name)
	}
}
