package persistence

import (
	"fmt"
	"strings"

	"github.com/deltegui/pmadmin/sorting"
)

// Definition is the SQL shape of one entity.
//
// Source is a select producing exactly the columns of the entity model, relation
// names included. Filter lists the Source columns searched by the contains filter.
// Table, Key and Columns describe the writable table: Key are the key columns
// and Columns the rest of the writable columns. AutoKey is the engine generated
// key column, empty for natural keys.
type Definition struct {
	Name    string
	Source  string
	Filter  []string
	Sort    sorting.Spec
	Table   string
	Key     []string
	Columns []string
	AutoKey string
}

func (def Definition) source() string {
	return fmt.Sprintf("select * from (%s) src", def.Source)
}

func (def Definition) keyCondition() string {
	conditions := make([]string, len(def.Key))
	for i, k := range def.Key {
		conditions[i] = fmt.Sprintf("%s = :%s", k, k)
	}
	return strings.Join(conditions, " and ")
}

func (def Definition) insertColumns() []string {
	if def.AutoKey != "" {
		return def.Columns
	}
	return append(append([]string{}, def.Key...), def.Columns...)
}

func (def Definition) InsertSQL() string {
	columns := def.insertColumns()
	values := make([]string, len(columns))
	for i, c := range columns {
		values[i] = ":" + c
	}
	return fmt.Sprintf(
		"insert into %s (%s) values (%s)",
		def.Table,
		strings.Join(columns, ", "),
		strings.Join(values, ", "))
}

func (def Definition) UpdateSQL() string {
	sets := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		sets[i] = fmt.Sprintf("%s = :%s", c, c)
	}
	return fmt.Sprintf("update %s set %s where %s", def.Table, strings.Join(sets, ", "), def.keyCondition())
}

func (def Definition) DeleteSQL() string {
	return fmt.Sprintf("delete from %s where %s", def.Table, def.keyCondition())
}

func (def Definition) FindOneSQL() string {
	return fmt.Sprintf("%s where %s", def.source(), def.keyCondition())
}
