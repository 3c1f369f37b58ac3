package persistence

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/serenize/snaker"
)

const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite3"
)

// Configuration of the database connection.
// MySQL connections need multiStatements=true (migrations) and
// clientFoundRows=true (updates that change nothing still find the row).
type Configuration struct {
	Driver       string
	Connection   string
	MaxOpenConns int
	Debug        bool
}

func Connect(ctx context.Context, config Configuration) (*sqlx.DB, error) {
	switch config.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", config.Driver)
	}
	db, err := sqlx.Open(config.Driver, config.Connection)
	if err != nil {
		return nil, fmt.Errorf("error creating connection to database: %w", err)
	}
	db.MapperFunc(snaker.CamelToSnake)
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
		db.SetMaxIdleConns(config.MaxOpenConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error checking connection to database: %w", err)
	}
	log.Printf("[PMADMIN] Connected to database using %s\n", config.Driver)
	return db, nil
}
