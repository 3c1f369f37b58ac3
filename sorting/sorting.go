// Package sorting maps the numeric sort codes used by the listing widget to
// SQL ordering over an entity projection.
package sorting

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Key binds a stable sort code to a column of the projection.
// Field is the model field name the widget sends when sorting by this key.
type Key struct {
	Code   int
	Field  string
	Column string
}

// Spec is the fixed sort table of one entity.
type Spec struct {
	keys     map[int]Key
	tiebreak []string
}

// New builds a sort table. Tiebreak columns are appended (ascending) after the
// resolved column so rows with equal keys keep a deterministic order.
func New(tiebreak []string, keys ...Key) Spec {
	table := make(map[int]Key, len(keys))
	for _, k := range keys {
		if k.Code <= 0 {
			panic(fmt.Sprintf("sort code for column '%s' must be positive", k.Column))
		}
		if _, ok := table[k.Code]; ok {
			panic(fmt.Sprintf("duplicated sort code %d", k.Code))
		}
		table[k.Code] = k
	}
	return Spec{
		keys:     table,
		tiebreak: tiebreak,
	}
}

func (s Spec) Resolve(code int) (string, bool) {
	k, ok := s.keys[code]
	if !ok {
		return "", false
	}
	return k.Column, true
}

// CodeOf returns the code of the key whose field matches name (case insensitive).
// A numeric name is taken as a code if it is part of the table. Anything else is 0.
func (s Spec) CodeOf(name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0
	}
	if code, err := strconv.Atoi(name); err == nil {
		if _, ok := s.keys[code]; ok {
			return code
		}
		return 0
	}
	for code, k := range s.keys {
		if strings.EqualFold(k.Field, name) || strings.EqualFold(k.Column, name) {
			return code
		}
	}
	return 0
}

// Keys returns the table ordered by code.
func (s Spec) Keys() []Key {
	keys := make([]Key, 0, len(s.keys))
	for _, k := range s.keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Code < keys[j].Code
	})
	return keys
}

// Apply appends the order by clause for code to query. Unknown codes
// (zero, negative or outside the table) leave the query untouched.
func (s Spec) Apply(query string, code int, ascending bool) string {
	column, ok := s.Resolve(code)
	if !ok {
		return query
	}
	direction := "desc"
	if ascending {
		direction = "asc"
	}
	order := []string{fmt.Sprintf("%s %s", column, direction)}
	for _, t := range s.tiebreak {
		if t == column {
			continue
		}
		order = append(order, fmt.Sprintf("%s asc", t))
	}
	return fmt.Sprintf("%s order by %s", query, strings.Join(order, ", "))
}
