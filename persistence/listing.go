package persistence

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/deltegui/pmadmin/pagination"
)

const DefaultElementsPerPage = 20

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Listing counts and pages the Source of a Definition: filter, count,
// sort, skip and take, and scan into M.
type Listing[M any] struct {
	SQLDao
	def             Definition
	elementsPerPage int
}

func NewListing[M any](dao SQLDao, def Definition, elementsPerPage int) Listing[M] {
	if elementsPerPage <= 0 {
		elementsPerPage = DefaultElementsPerPage
	}
	return Listing[M]{
		SQLDao:          dao,
		def:             def,
		elementsPerPage: elementsPerPage,
	}
}

func (repo Listing[M]) Definition() Definition {
	return repo.def
}

func (repo Listing[M]) ElementsPerPage() int {
	return repo.elementsPerPage
}

// SortCode maps a field name sent by the widget to its sort code. Unknown fields are 0.
func (repo Listing[M]) SortCode(field string) int {
	return repo.def.Sort.CodeOf(field)
}

func (repo Listing[M]) Count(ctx context.Context, filter string) (int, error) {
	params := map[string]any{}
	sql := repo.buildFindSql(filter, params)
	return repo.executeCount(ctx, sql, params)
}

// List returns the requested page. The total is computed over the filtered
// source before sorting and paging. A page past the end has no items.
// A disabled pagination returns every filtered row.
func (repo Listing[M]) List(ctx context.Context, filter string, pag pagination.Pagination) (pagination.List[M], error) {
	pag = pag.Normalize(repo.elementsPerPage)
	params := map[string]any{}
	sql := repo.buildFindSql(filter, params)
	count, err := repo.executeCount(ctx, sql, params)
	if err != nil {
		log.Printf("[SQL] Error while counting '%s': %s\n", repo.def.Name, err)
		return pagination.List[M]{}, fmt.Errorf("cannot count %s: %w", repo.def.Name, err)
	}
	pag.TotalElements = count
	if pag.Enabled && pag.Offset() >= count {
		return pagination.List[M]{
			Items:      []M{},
			Pagination: pag,
		}, nil
	}
	sql = repo.def.Sort.Apply(sql, pag.SortCode, pag.Ascending())
	if pag.Enabled {
		sql = repo.buildPaginationSql(sql, pag, params)
	}
	items := []M{}
	if err := repo.selectAll(ctx, &items, sql, params); err != nil {
		log.Printf("[SQL] Error while listing '%s': %s\n", repo.def.Name, err)
		return pagination.List[M]{}, fmt.Errorf("cannot list %s: %w", repo.def.Name, err)
	}
	return pagination.List[M]{
		Items:      items,
		Pagination: pag,
	}, nil
}

// buildFindSql wraps the source and adds the contains filter. An empty
// filter adds no condition.
func (repo Listing[M]) buildFindSql(filter string, params map[string]any) string {
	sql := repo.def.source()
	filter = strings.TrimSpace(filter)
	if filter == "" || len(repo.def.Filter) == 0 {
		return sql
	}
	params["filter"] = "%" + likeEscaper.Replace(filter) + "%"
	conditions := make([]string, len(repo.def.Filter))
	for i, column := range repo.def.Filter {
		conditions[i] = fmt.Sprintf("%s like :filter escape '!'", column)
	}
	return fmt.Sprintf("%s where (%s)", sql, strings.Join(conditions, " or "))
}

func (repo Listing[M]) buildPaginationSql(sql string, pag pagination.Pagination, params map[string]any) string {
	params["limit"] = pag.Limit()
	params["offset"] = pag.Offset()
	return fmt.Sprintf("%s limit :limit offset :offset", sql)
}

func (repo Listing[M]) executeCount(ctx context.Context, sql string, params map[string]any) (int, error) {
	var c int
	err := repo.get(ctx, &c, fmt.Sprintf("select count(*) from (%s) count_table", sql), params)
	return c, err
}
