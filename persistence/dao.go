package persistence

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/kr/pretty"
)

// SQLDao executes named queries against the configured engine.
type SQLDao struct {
	DB    *sqlx.DB
	Debug bool
}

func NewDao(db *sqlx.DB, debug bool) SQLDao {
	return SQLDao{DB: db, Debug: debug}
}

// bind resolves :named parameters and rebinds them for the driver.
func (dao SQLDao) bind(query string, params map[string]any) (string, []any, error) {
	q, args, err := sqlx.Named(query, params)
	if err != nil {
		return "", nil, fmt.Errorf("cannot bind named query: %w", err)
	}
	q = dao.DB.Rebind(q)
	if dao.Debug {
		log.Printf("[SQL] %s\n%# v\n", q, pretty.Formatter(args))
	}
	return q, args, nil
}

func (dao SQLDao) get(ctx context.Context, dst any, query string, params map[string]any) error {
	q, args, err := dao.bind(query, params)
	if err != nil {
		return err
	}
	return dao.DB.GetContext(ctx, dst, q, args...)
}

func (dao SQLDao) selectAll(ctx context.Context, dst any, query string, params map[string]any) error {
	q, args, err := dao.bind(query, params)
	if err != nil {
		return err
	}
	return dao.DB.SelectContext(ctx, dst, q, args...)
}

func (dao SQLDao) exec(ctx context.Context, query string, params map[string]any) (int64, error) {
	q, args, err := dao.bind(query, params)
	if err != nil {
		return 0, err
	}
	result, err := dao.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// insert runs query and returns the generated value of autoKey. Without
// autoKey the returned id is always 0.
func (dao SQLDao) insert(ctx context.Context, query, autoKey string, params map[string]any) (int64, error) {
	if autoKey != "" && dao.DB.DriverName() == DriverPostgres {
		q, args, err := dao.bind(fmt.Sprintf("%s returning %s", query, autoKey), params)
		if err != nil {
			return 0, err
		}
		var id int64
		if err := dao.DB.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	q, args, err := dao.bind(query, params)
	if err != nil {
		return 0, err
	}
	result, err := dao.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	if autoKey == "" {
		return 0, nil
	}
	return result.LastInsertId()
}

// params maps the column name of every field of each struct to its value.
// Later structs override earlier ones.
func (dao SQLDao) params(structs ...any) map[string]any {
	params := map[string]any{}
	for _, s := range structs {
		v := reflect.Indirect(reflect.ValueOf(s))
		if v.Kind() != reflect.Struct {
			continue
		}
		for _, fi := range dao.DB.Mapper.TypeMap(v.Type()).Index {
			if len(fi.Index) != 1 || fi.Path == "" || strings.Contains(fi.Path, ".") {
				continue
			}
			params[fi.Path] = v.FieldByIndex(fi.Index).Interface()
		}
	}
	return params
}
