package entities

import (
	"github.com/deltegui/pmadmin/persistence"
	"github.com/deltegui/pmadmin/sorting"
)

type Person struct {
	Id        int64
	FirstName string  `validate:"required,max=100"`
	LastName  string  `validate:"required,max=100"`
	Phone     *string `validate:"omitempty,max=30"`
	Email     *string `validate:"omitempty,email,max=200"`
	Iban      *string `validate:"omitempty,max=34"`
}

var Persons = persistence.Definition{
	Name:   "person",
	Source: "select id, first_name, last_name, phone, email, iban from persons",
	Filter: []string{"first_name", "last_name", "phone", "email", "iban"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "FirstName", Column: "first_name"},
		sorting.Key{Code: 2, Field: "LastName", Column: "last_name"},
		sorting.Key{Code: 3, Field: "Id", Column: "id"},
		sorting.Key{Code: 4, Field: "Phone", Column: "phone"},
		sorting.Key{Code: 5, Field: "Email", Column: "email"},
		sorting.Key{Code: 6, Field: "Iban", Column: "iban"},
	),
	Table:   "persons",
	Key:     []string{"id"},
	Columns: []string{"first_name", "last_name", "phone", "email", "iban"},
	AutoKey: "id",
}

var PersonOptions = persistence.OptionSource{
	Table: "persons",
	Value: "id",
	Text:  []string{"last_name", "first_name"},
}

type Partner struct {
	Id              int64
	Name            string `validate:"required,max=200"`
	PartnerTypeId   *int64
	PartnerTypeName *string `export:"PartnerType"`
	Email           *string `validate:"omitempty,email,max=200"`
	Phone           *string `validate:"omitempty,max=30"`
}

var Partners = persistence.Definition{
	Name: "partner",
	Source: `select pa.id, pa.name, pa.partner_type_id, pt.name as partner_type_name, pa.email, pa.phone
		from partners pa
		left join partner_types pt on pt.id = pa.partner_type_id`,
	Filter: []string{"name", "partner_type_name", "email", "phone"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "Name", Column: "name"},
		sorting.Key{Code: 2, Field: "PartnerTypeName", Column: "partner_type_name"},
		sorting.Key{Code: 3, Field: "Email", Column: "email"},
		sorting.Key{Code: 4, Field: "Phone", Column: "phone"},
	),
	Table:   "partners",
	Key:     []string{"id"},
	Columns: []string{"name", "partner_type_id", "email", "phone"},
	AutoKey: "id",
}

var PartnerOptions = persistence.OptionSource{Table: "partners", Value: "id", Text: []string{"name"}}
