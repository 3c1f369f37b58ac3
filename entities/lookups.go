package entities

import (
	"fmt"

	"github.com/deltegui/pmadmin/persistence"
	"github.com/deltegui/pmadmin/sorting"
)

// Key identifies every entity with a generated id.
type Key struct {
	Id int64
}

// Lookup is a row of a name only table: roles, project types and so on.
type Lookup struct {
	Id   int64
	Name string `validate:"required,max=100"`
}

func lookup(name, table string) persistence.Definition {
	return persistence.Definition{
		Name:   name,
		Source: fmt.Sprintf("select id, name from %s", table),
		Filter: []string{"name"},
		Sort: sorting.New([]string{"id"},
			sorting.Key{Code: 1, Field: "Name", Column: "name"},
			sorting.Key{Code: 2, Field: "Id", Column: "id"},
		),
		Table:   table,
		Key:     []string{"id"},
		Columns: []string{"name"},
		AutoKey: "id",
	}
}

func lookupOptions(table string) persistence.OptionSource {
	return persistence.OptionSource{Table: table, Value: "id", Text: []string{"name"}}
}

var (
	Roles            = lookup("role", "roles")
	ProjectTypes     = lookup("project type", "project_types")
	RequestTypes     = lookup("request type", "request_types")
	PartnerTypes     = lookup("partner type", "partner_types")
	TransactionTypes = lookup("transaction type", "transaction_types")

	RoleOptions            = lookupOptions("roles")
	ProjectTypeOptions     = lookupOptions("project_types")
	RequestTypeOptions     = lookupOptions("request_types")
	PartnerTypeOptions     = lookupOptions("partner_types")
	TransactionTypeOptions = lookupOptions("transaction_types")
)
