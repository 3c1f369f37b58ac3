package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/core"
	"github.com/deltegui/pmadmin/export"
	"github.com/deltegui/pmadmin/jtable"
	"github.com/deltegui/pmadmin/localizer"
	"github.com/deltegui/pmadmin/pagination"
	"github.com/deltegui/pmadmin/persistence"
)

const resourceView = "resource"

// Registrable is a resource ready to be mounted on a router.
type Registrable interface {
	Register(r *pmadmin.Router, middlewares ...pmadmin.Middleware)
	Page() Page
}

// Resource serves one entity: the server rendered page, the widget
// endpoints and the spreadsheet export.
type Resource[K any, M any] struct {
	page       Page
	listing    persistence.Listing[M]
	controller jtable.Controller[K, M]
}

// NewResource builds the listing, the table and the gateway of def. Without
// an option source the resource has no options endpoint.
func NewResource[K any, M any](dao persistence.SQLDao, def persistence.Definition, options *persistence.OptionSource, page Page, validate core.Validator, pageSize int) Resource[K, M] {
	listing := persistence.NewListing[M](dao, def, pageSize)
	table := persistence.NewTable[K, M](dao, def)
	var loader jtable.OptionsLoader
	if options != nil {
		src := *options
		loader = func(ctx context.Context) ([]persistence.Option, error) {
			return src.Load(ctx, dao)
		}
	}
	gateway := jtable.NewGateway[K, M](listing, table, validate)
	return Resource[K, M]{
		page:       page,
		listing:    listing,
		controller: jtable.NewController(gateway, loader),
	}
}

func (res Resource[K, M]) Page() Page {
	return res.page
}

func (res Resource[K, M]) Register(r *pmadmin.Router, middlewares ...pmadmin.Middleware) {
	path := res.page.Path()
	r.Get(path, res.Show, middlewares...)
	r.Get(path+"/export", res.Export, middlewares...)
	res.controller.Register(r, path, middlewares...)
}

// listQuery is the state of a server rendered listing, kept in the url.
type listQuery struct {
	Page   int    `html:"page"`
	Search string `html:"search"`
	Sort   int    `html:"sort"`
	Desc   bool   `html:"desc"`
}

func (q listQuery) pagination(enabled bool) pagination.Pagination {
	order := pagination.OrderAscending
	if q.Desc {
		order = pagination.OrderDescending
	}
	return pagination.Pagination{
		CurrentPage: q.Page,
		SortCode:    q.Sort,
		Order:       order,
		Enabled:     enabled,
	}
}

type ResourceViewModel struct {
	Page       Page
	Title      string
	Columns    []string
	Rows       [][]string
	Pagination pagination.ViewModel
	Query      listQuery
	SortKeys   []SortOption
	JTable     JTableConfig
	Pages      []Page
}

type SortOption struct {
	Code     int
	Title    string
	Selected bool
}

func (res Resource[K, M]) Show(ctx *pmadmin.Context) error {
	query, err := parseListQuery(ctx)
	if err != nil {
		return err
	}
	list, err := res.listing.List(ctx.Context(), query.Search, query.pagination(true))
	if err != nil {
		return failure(ctx, core.ErrListing, err)
	}
	loc := ctx.GetLocalizer(resourceView)
	columns := res.page.Columns()
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = loc.Get(res.page.Name + "." + c.Name)
	}
	rows := make([][]string, len(list.Items))
	for i, item := range list.Items {
		rows[i] = res.page.Cells(loc, item)
	}
	return ctx.RenderOk(resourceView, ResourceViewModel{
		Page:       res.page,
		Title:      res.page.Title(loc),
		Columns:    titles,
		Rows:       rows,
		Pagination: ctx.PaginationToVM(list.Pagination),
		Query:      query,
		SortKeys:   res.sortOptions(loc, query.Sort),
		JTable:     res.page.JTable(loc, res.listing.ElementsPerPage()),
		Pages:      pagesOf(ctx),
	})
}

func (res Resource[K, M]) sortOptions(loc localizer.Localizer, selected int) []SortOption {
	keys := res.listing.Definition().Sort.Keys()
	options := make([]SortOption, len(keys))
	for i, k := range keys {
		options[i] = SortOption{
			Code:     k.Code,
			Title:    loc.Get(res.page.Name + "." + k.Field),
			Selected: k.Code == selected,
		}
	}
	return options
}

// parseListQuery reads the page controls. Unconvertible values keep their
// defaults.
func parseListQuery(ctx *pmadmin.Context) (listQuery, error) {
	var query listQuery
	_, err := ctx.ParseForm(&query)
	var formErr *pmadmin.FormError
	if errors.As(err, &formErr) {
		return query, nil
	}
	return query, err
}

func failure(ctx *pmadmin.Context, caseErr core.UseCaseError, err error) error {
	log.Printf("[PMADMIN] %s [%s]: %s\n", caseErr.Reason, ctx.RequestID(), err)
	return ctx.InternalServerError("%s", ctx.LocalizeError(caseErr))
}

// Export downloads every row matching the search, sorted as requested.
func (res Resource[K, M]) Export(ctx *pmadmin.Context) error {
	query, err := parseListQuery(ctx)
	if err != nil {
		return err
	}
	list, err := res.listing.List(ctx.Context(), query.Search, query.pagination(false))
	if err != nil {
		return failure(ctx, core.ErrExport, err)
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, res.page.Name, list.Items); err != nil {
		return failure(ctx, core.ErrExport, err)
	}
	ctx.Res.Header().Set("Content-Type", export.ContentType)
	ctx.Res.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", res.page.Name))
	ctx.Res.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(ctx.Res)
	return err
}
