package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/deltegui/pmadmin/persistence"
	"github.com/spf13/viper"
)

const EnvPrefix string = "PMADMIN"

type Server struct {
	Address        string
	CorsOrigins    []string
	Csrf           bool
	CsrfExpiration time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type Database struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	Migrate      bool
	Debug        bool
}

// Persistence is the connection configuration for this database.
func (db Database) Persistence() persistence.Configuration {
	return persistence.Configuration{
		Driver:       db.Driver,
		Connection:   db.DSN,
		MaxOpenConns: db.MaxOpenConns,
		Debug:        db.Debug,
	}
}

type Configuration struct {
	Server         Server
	Database       Database
	PageSize       int
	CypherPassword string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "localhost:8080")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.csrf", true)
	v.SetDefault("server.csrf_expiration", 2*time.Hour)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("database.driver", persistence.DriverSQLite)
	v.SetDefault("database.dsn", "file:pmadmin.db?_foreign_keys=on")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.migrate", true)
	v.SetDefault("database.debug", false)
	v.SetDefault("listing.page_size", persistence.DefaultElementsPerPage)
	v.SetDefault("cypher.password", "")
}

// Load reads config.yaml from path, if present. Every key can be overridden
// with an environment variable: database.dsn is PMADMIN_DATABASE_DSN.
func Load(path string) (Configuration, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Configuration{}, fmt.Errorf("cannot read configuration: %w", err)
		}
		log.Println("[CONFIG] No config.yaml found, using defaults and env vars")
	} else {
		log.Println("[CONFIG] Loaded", v.ConfigFileUsed())
	}

	cfg := Configuration{
		Server: Server{
			Address:        v.GetString("server.address"),
			CorsOrigins:    v.GetStringSlice("server.cors_origins"),
			Csrf:           v.GetBool("server.csrf"),
			CsrfExpiration: v.GetDuration("server.csrf_expiration"),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
		},
		Database: Database{
			Driver:       v.GetString("database.driver"),
			DSN:          v.GetString("database.dsn"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
			Migrate:      v.GetBool("database.migrate"),
			Debug:        v.GetBool("database.debug"),
		},
		PageSize:       v.GetInt("listing.page_size"),
		CypherPassword: v.GetString("cypher.password"),
	}
	return cfg, cfg.validate()
}

func (cfg Configuration) validate() error {
	switch cfg.Database.Driver {
	case persistence.DriverPostgres, persistence.DriverMySQL, persistence.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver '%s'", cfg.Database.Driver)
	}
	if cfg.PageSize <= 0 {
		return fmt.Errorf("listing.page_size must be positive, got %d", cfg.PageSize)
	}
	return nil
}
