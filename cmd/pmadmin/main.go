package main

import (
	"context"
	"flag"
	"log"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/config"
	"github.com/deltegui/pmadmin/controllers"
	"github.com/deltegui/pmadmin/extensions"
	"github.com/deltegui/pmadmin/middleware"
	"github.com/deltegui/pmadmin/persistence"
	"github.com/deltegui/pmadmin/web"
)

func main() {
	configPath := flag.String("config", ".", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[PMADMIN] Failed to load configuration: %s", err)
	}

	if cfg.Database.Migrate {
		if err := persistence.Migrate(cfg.Database.Persistence()); err != nil {
			log.Fatalf("[PMADMIN] Failed to run migrations: %s", err)
		}
	}
	db, err := persistence.Connect(context.Background(), cfg.Database.Persistence())
	if err != nil {
		log.Fatalf("[PMADMIN] Failed to connect to database: %s", err)
	}
	defer db.Close()

	r := pmadmin.NewRouter()
	if cfg.CypherPassword != "" {
		extensions.AddCypherWithPassword(r, cfg.CypherPassword)
	} else {
		extensions.AddCypher(r)
	}
	extensions.UseCors(r, cfg.Server.CorsOrigins)
	extensions.AddValidator(r)
	web.Parse(extensions.AddRendering(r, web.Views()))
	extensions.UseLocalizer(r, web.Locales(), web.SharedKey, web.ErrorsKey)
	r.Use(middleware.Logger)
	if cfg.Server.Csrf {
		extensions.UseCsrf(r, cfg.Server.CsrfExpiration)
	}
	r.Static("/static/*filepath", web.Static())

	controllers.Register(r, db, r.Validator(), cfg.PageSize, cfg.Database.Debug)

	r.Run(pmadmin.ServerOptions{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
}
