package persistence

import (
	"context"
	"fmt"
	"strings"
)

// Option is one entry of a dropdown.
type Option struct {
	Value any
	Text  string
}

// OptionSource is a distinct projection of a table ordered by its text columns.
// The text of an option joins the non null Text columns with a space.
type OptionSource struct {
	Table string
	Value string
	Text  []string
}

func (src OptionSource) sql() string {
	columns := append([]string{src.Value}, src.Text...)
	return fmt.Sprintf(
		"select distinct %s from %s order by %s",
		strings.Join(columns, ", "),
		src.Table,
		strings.Join(src.Text, ", "))
}

func (src OptionSource) Load(ctx context.Context, dao SQLDao) ([]Option, error) {
	if len(src.Text) == 0 {
		return nil, fmt.Errorf("option source for '%s' has no text columns", src.Table)
	}
	q, args, err := dao.bind(src.sql(), map[string]any{})
	if err != nil {
		return nil, err
	}
	rows, err := dao.DB.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot load options of %s: %w", src.Table, err)
	}
	defer rows.Close()
	options := []Option{}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("cannot scan options of %s: %w", src.Table, err)
		}
		texts := make([]string, 0, len(values)-1)
		for _, v := range values[1:] {
			if s := stringify(v); s != "" {
				texts = append(texts, s)
			}
		}
		options = append(options, Option{
			Value: normalize(values[0]),
			Text:  strings.Join(texts, " "),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read options of %s: %w", src.Table, err)
	}
	return options, nil
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
