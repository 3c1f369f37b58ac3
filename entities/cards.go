package entities

import (
	"time"

	"github.com/deltegui/pmadmin/persistence"
	"github.com/deltegui/pmadmin/sorting"
)

type Card struct {
	Id               int64
	Number           string `validate:"required,max=34"`
	HolderId         *int64
	HolderFirstName  *string `export:"-"`
	HolderLastName   *string `export:"Holder"`
	Balance          float64
	TransactionCount int64 `html:"-"`
}

var Cards = persistence.Definition{
	Name: "card",
	Source: `select c.id, c.number,
			c.holder_id, pe.first_name as holder_first_name, pe.last_name as holder_last_name,
			c.balance,
			(select count(*) from transactions t where t.card_id = c.id) as transaction_count
		from cards c
		left join persons pe on pe.id = c.holder_id`,
	Filter: []string{"number", "holder_first_name", "holder_last_name"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "Number", Column: "number"},
		sorting.Key{Code: 2, Field: "HolderLastName", Column: "holder_last_name"},
		sorting.Key{Code: 3, Field: "Balance", Column: "balance"},
		sorting.Key{Code: 4, Field: "TransactionCount", Column: "transaction_count"},
	),
	Table:   "cards",
	Key:     []string{"id"},
	Columns: []string{"number", "holder_id", "balance"},
	AutoKey: "id",
}

var CardOptions = persistence.OptionSource{Table: "cards", Value: "id", Text: []string{"number"}}

type Transaction struct {
	Id                  int64
	OccurredAt          time.Time `validate:"required"`
	Amount              float64
	CardId              *int64
	CardNumber          *string `export:"Card"`
	TransactionTypeId   *int64
	TransactionTypeName *string `export:"TransactionType"`
	Description         *string `validate:"omitempty,max=500"`
}

var Transactions = persistence.Definition{
	Name: "transaction",
	Source: `select t.id, t.occurred_at, t.amount,
			t.card_id, c.number as card_number,
			t.transaction_type_id, tt.name as transaction_type_name,
			t.description
		from transactions t
		left join cards c on c.id = t.card_id
		left join transaction_types tt on tt.id = t.transaction_type_id`,
	Filter: []string{"description", "card_number", "transaction_type_name"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "OccurredAt", Column: "occurred_at"},
		sorting.Key{Code: 2, Field: "Amount", Column: "amount"},
		sorting.Key{Code: 3, Field: "CardNumber", Column: "card_number"},
		sorting.Key{Code: 4, Field: "TransactionTypeName", Column: "transaction_type_name"},
		sorting.Key{Code: 5, Field: "Description", Column: "description"},
	),
	Table:   "transactions",
	Key:     []string{"id"},
	Columns: []string{"occurred_at", "amount", "card_id", "transaction_type_id", "description"},
	AutoKey: "id",
}
