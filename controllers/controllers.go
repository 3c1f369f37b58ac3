package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/core"
	"github.com/deltegui/pmadmin/entities"
	"github.com/deltegui/pmadmin/persistence"
	"github.com/jmoiron/sqlx"
)

const homeView = "home"

type pagesKey struct{}

func pagesOf(ctx *pmadmin.Context) []Page {
	pages, _ := ctx.Get(pagesKey{}).([]Page)
	return pages
}

func withPages(pages []Page) pmadmin.Middleware {
	return func(next pmadmin.Handler) pmadmin.Handler {
		return func(ctx *pmadmin.Context) error {
			ctx.Set(pagesKey{}, pages)
			return next(ctx)
		}
	}
}

// Resources builds one resource per entity. Everything is built here, once,
// at start up.
func Resources(dao persistence.SQLDao, validate core.Validator, pageSize int) []Registrable {
	return []Registrable{
		NewResource[entities.Key, entities.Person](dao, entities.Persons, &entities.PersonOptions, PersonsPage, validate, pageSize),
		NewResource[entities.Key, entities.Partner](dao, entities.Partners, &entities.PartnerOptions, PartnersPage, validate, pageSize),
		NewResource[entities.Key, entities.Project](dao, entities.Projects, &entities.ProjectOptions, ProjectsPage, validate, pageSize),
		NewResource[entities.Key, entities.Request](dao, entities.Requests, &entities.RequestOptions, RequestsPage, validate, pageSize),
		NewResource[entities.Key, entities.Task](dao, entities.Tasks, nil, TasksPage, validate, pageSize),
		NewResource[entities.Key, entities.Card](dao, entities.Cards, &entities.CardOptions, CardsPage, validate, pageSize),
		NewResource[entities.Key, entities.Transaction](dao, entities.Transactions, nil, TransactionsPage, validate, pageSize),
		NewResource[entities.MemberKey, entities.Member](dao, entities.Members, nil, MembersPage, validate, pageSize),
		NewResource[entities.Key, entities.Lookup](dao, entities.Roles, &entities.RoleOptions, lookupPage("roles"), validate, pageSize),
		NewResource[entities.Key, entities.Lookup](dao, entities.ProjectTypes, &entities.ProjectTypeOptions, lookupPage("project-types"), validate, pageSize),
		NewResource[entities.Key, entities.Lookup](dao, entities.RequestTypes, &entities.RequestTypeOptions, lookupPage("request-types"), validate, pageSize),
		NewResource[entities.Key, entities.Lookup](dao, entities.PartnerTypes, &entities.PartnerTypeOptions, lookupPage("partner-types"), validate, pageSize),
		NewResource[entities.Key, entities.Lookup](dao, entities.TransactionTypes, &entities.TransactionTypeOptions, lookupPage("transaction-types"), validate, pageSize),
	}
}

// Register mounts every resource plus the home page, the language switch
// and the health check.
func Register(r *pmadmin.Router, db *sqlx.DB, validate core.Validator, pageSize int, debug bool) {
	resources := Resources(persistence.NewDao(db, debug), validate, pageSize)
	pages := make([]Page, len(resources))
	for i, res := range resources {
		pages[i] = res.Page()
	}
	nav := withPages(pages)
	for _, res := range resources {
		res.Register(r, nav)
	}
	r.Get("/", Home, nav)
	r.Get("/language/:lang", ChangeLanguage)
	r.Get("/health", Health(db))
}

type HomeViewModel struct {
	Pages []Page
}

func Home(ctx *pmadmin.Context) error {
	return ctx.RenderOk(homeView, HomeViewModel{Pages: pagesOf(ctx)})
}

// ChangeLanguage stores the language cookie and goes back to the previous page.
func ChangeLanguage(ctx *pmadmin.Context) error {
	if err := ctx.ChangeLanguage(ctx.GetURLParam("lang")); err != nil {
		return err
	}
	back := ctx.Req.Referer()
	if back == "" {
		back = "/"
	}
	return ctx.RedirectCode(back, http.StatusSeeOther)
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func Health(db *sqlx.DB) pmadmin.Handler {
	return func(ctx *pmadmin.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return ctx.Json(http.StatusServiceUnavailable, healthStatus{Status: "down", Database: err.Error()})
		}
		return ctx.JsonOk(healthStatus{Status: "up", Database: db.DriverName()})
	}
}
