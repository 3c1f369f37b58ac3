package persistence_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/deltegui/pmadmin/pagination"
	"github.com/deltegui/pmadmin/persistence"
	"github.com/deltegui/pmadmin/sorting"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

type person struct {
	Id        int64
	FirstName string
	LastName  string
	Phone     *string
	Email     *string
	Iban      *string
}

type personKey struct {
	Id int64
}

type project struct {
	Id          int64
	Name        string
	PartnerId   *int64
	PartnerName *string
}

var persons = persistence.Definition{
	Name:   "person",
	Source: "select id, first_name, last_name, phone, email, iban from persons",
	Filter: []string{"first_name", "last_name", "email"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "FirstName", Column: "first_name"},
		sorting.Key{Code: 2, Field: "LastName", Column: "last_name"},
		sorting.Key{Code: 3, Field: "Id", Column: "id"},
	),
	Table:   "persons",
	Key:     []string{"id"},
	Columns: []string{"first_name", "last_name", "phone", "email", "iban"},
	AutoKey: "id",
}

var projects = persistence.Definition{
	Name: "project",
	Source: `select pr.id, pr.name, pr.partner_id, pa.name as partner_name
		from projects pr left join partners pa on pa.id = pr.partner_id`,
	Filter: []string{"name"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "Name", Column: "name"},
		sorting.Key{Code: 2, Field: "PartnerName", Column: "partner_name"},
	),
	Table:   "projects",
	Key:     []string{"id"},
	Columns: []string{"name", "partner_id"},
	AutoKey: "id",
}

var names = [][2]string{
	{"Ada", "Lovelace"},
	{"Alan", "Turing"},
	{"Grace", "Hopper"},
	{"Edsger", "Dijkstra"},
	{"Barbara", "Liskov"},
	{"Donald", "Knuth"},
	{"Ken", "Thompson"},
}

type PersistenceSuite struct {
	suite.Suite
	ctx     context.Context
	db      *sqlx.DB
	dao     persistence.SQLDao
	listing persistence.Listing[person]
	table   persistence.Table[personKey, person]
}

func (s *PersistenceSuite) SetupTest() {
	s.ctx = context.Background()
	cfg := persistence.Configuration{
		Driver:       persistence.DriverSQLite,
		Connection:   filepath.Join(s.T().TempDir(), "pmadmin.db") + "?_foreign_keys=on",
		MaxOpenConns: 1,
	}
	s.Require().NoError(persistence.Migrate(cfg))
	s.Require().NoError(persistence.Migrate(cfg), "migrating twice must be a no-op")
	db, err := persistence.Connect(s.ctx, cfg)
	s.Require().NoError(err)
	s.db = db
	s.dao = persistence.NewDao(db, false)
	s.listing = persistence.NewListing[person](s.dao, persons, 3)
	s.table = persistence.NewTable[personKey, person](s.dao, persons)
	for _, n := range names {
		outcome := s.table.Create(s.ctx, person{FirstName: n[0], LastName: n[1]})
		s.Require().Equal(persistence.OutcomeCreated, outcome.Kind(), outcome.String())
	}
}

func (s *PersistenceSuite) TearDownTest() {
	s.db.Close()
}

func TestPersistence(t *testing.T) {
	suite.Run(t, new(PersistenceSuite))
}

func (s *PersistenceSuite) page(filter string, page, size, code int, order pagination.Order) pagination.List[person] {
	list, err := s.listing.List(s.ctx, filter, pagination.Pagination{
		CurrentPage:     page,
		ElementsPerPage: size,
		SortCode:        code,
		Order:           order,
		Enabled:         true,
	})
	s.Require().NoError(err)
	return list
}

func firstNames(items []person) []string {
	result := make([]string, len(items))
	for i, p := range items {
		result[i] = p.FirstName
	}
	return result
}

func (s *PersistenceSuite) TestTotalIsIndependentOfPaging() {
	count, err := s.listing.Count(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(len(names), count)
	for _, size := range []int{1, 2, 3, 7, 50} {
		for page := 1; page <= 3; page++ {
			list := s.page("", page, size, 1, pagination.OrderAscending)
			s.Equal(count, list.Pagination.TotalElements, "size %d page %d", size, page)
			s.LessOrEqual(len(list.Items), size)
		}
	}
}

func (s *PersistenceSuite) TestPagesDoNotOverlap() {
	seen := map[int64]bool{}
	for page := 1; page <= 3; page++ {
		for _, p := range s.page("", page, 3, 3, pagination.OrderAscending).Items {
			s.False(seen[p.Id], "person %d listed twice", p.Id)
			seen[p.Id] = true
		}
	}
	s.Len(seen, len(names))
}

func (s *PersistenceSuite) TestBeyondLastPageIsEmpty() {
	list := s.page("", 10, 3, 1, pagination.OrderAscending)
	s.NotNil(list.Items)
	s.Empty(list.Items)
	s.Equal(len(names), list.Pagination.TotalElements)
}

func (s *PersistenceSuite) TestHugePageNumberIsBeyondLastPage() {
	list := s.page("", math.MaxInt/3+2, 3, 1, pagination.OrderAscending)
	s.NotNil(list.Items)
	s.Empty(list.Items)
	s.Equal(len(names), list.Pagination.TotalElements)
}

func (s *PersistenceSuite) TestDefaultPageSize() {
	list := s.page("", 1, 0, 1, pagination.OrderAscending)
	s.Len(list.Items, 3)
	s.Equal(3, list.Pagination.ElementsPerPage)
}

func (s *PersistenceSuite) TestEmptyFilterMatchesEverything() {
	all, err := s.listing.Count(s.ctx, "")
	s.Require().NoError(err)
	blank, err := s.listing.Count(s.ctx, "   ")
	s.Require().NoError(err)
	var raw int
	s.Require().NoError(s.db.Get(&raw, "select count(*) from persons"))
	s.Equal(raw, all)
	s.Equal(all, blank)
}

func (s *PersistenceSuite) TestFilterIsContains() {
	list := s.page("ra", 1, 10, 1, pagination.OrderAscending)
	s.Equal([]string{"Barbara", "Edsger", "Grace"}, firstNames(list.Items))
	s.Equal(3, list.Pagination.TotalElements)

	count, err := s.listing.Count(s.ctx, "%")
	s.Require().NoError(err)
	s.Zero(count, "wildcards in the filter must be literal")

	count, err = s.listing.Count(s.ctx, "_")
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *PersistenceSuite) TestUnknownSortCodeKeepsSourceOrder() {
	unsorted, err := s.listing.List(s.ctx, "", pagination.Pagination{Enabled: false})
	s.Require().NoError(err)
	for _, code := range []int{0, -1, 99} {
		list, err := s.listing.List(s.ctx, "", pagination.Pagination{SortCode: code, Enabled: false})
		s.Require().NoError(err)
		s.Equal(firstNames(unsorted.Items), firstNames(list.Items), "code %d", code)
	}
}

func (s *PersistenceSuite) TestDescendingIsReversedAscending() {
	asc := firstNames(s.page("", 1, 10, 1, pagination.OrderAscending).Items)
	desc := firstNames(s.page("", 1, 10, 1, pagination.OrderDescending).Items)
	s.Require().Len(asc, len(names))
	for i := range asc {
		s.Equal(asc[i], desc[len(desc)-1-i])
	}
	s.Equal("Ada", asc[0])
}

func (s *PersistenceSuite) TestSortByAbsentRelation() {
	projectsTable := persistence.NewTable[personKey, project](s.dao, projects)
	partner, err := s.db.Exec("insert into partners (name) values ('Acme')")
	s.Require().NoError(err)
	partnerId, err := partner.LastInsertId()
	s.Require().NoError(err)

	s.Equal(persistence.OutcomeCreated, projectsTable.Create(s.ctx, project{Name: "Orphan"}).Kind())
	s.Equal(persistence.OutcomeCreated, projectsTable.Create(s.ctx, project{Name: "Owned", PartnerId: &partnerId}).Kind())

	listing := persistence.NewListing[project](s.dao, projects, 10)
	for _, order := range []pagination.Order{pagination.OrderAscending, pagination.OrderDescending} {
		list, err := listing.List(s.ctx, "", pagination.Pagination{SortCode: 2, Order: order, Enabled: true})
		s.Require().NoError(err)
		s.Len(list.Items, 2)
		s.Equal(2, list.Pagination.TotalElements)
	}
}

func (s *PersistenceSuite) TestCreateAssignsKey() {
	email := "test@example.com"
	outcome := s.table.Create(s.ctx, person{FirstName: "Test", LastName: "Person", Email: &email})
	s.Require().Equal(persistence.OutcomeCreated, outcome.Kind())
	record, ok := outcome.Payload().(person)
	s.Require().True(ok)
	s.Equal(int64(len(names)+1), record.Id)
	s.Equal("Test", record.FirstName)
	s.Require().NotNil(record.Email)
	s.Equal(email, *record.Email)
	s.Nil(record.Phone)
}

func (s *PersistenceSuite) TestUpdateAndDelete() {
	outcome := s.table.Update(s.ctx, personKey{Id: 1}, person{FirstName: "Augusta", LastName: "King"})
	s.Equal(persistence.OutcomeNoContent, outcome.Kind())
	found, err := s.table.FindOne(s.ctx, personKey{Id: 1})
	s.Require().NoError(err)
	s.Equal("Augusta", found.FirstName)

	s.Equal(persistence.OutcomeNoContent, s.table.Delete(s.ctx, personKey{Id: 1}).Kind())
	_, err = s.table.FindOne(s.ctx, personKey{Id: 1})
	s.Error(err)
}

func (s *PersistenceSuite) TestMissingRowsAreNotFound() {
	s.Equal(persistence.OutcomeNotFound, s.table.Update(s.ctx, personKey{Id: 999}, person{FirstName: "A", LastName: "B"}).Kind())
	s.Equal(persistence.OutcomeNotFound, s.table.Delete(s.ctx, personKey{Id: 999}).Kind())
}

func (s *PersistenceSuite) TestStoreErrorsAreFailed() {
	broken := persons
	broken.Table = "missing_table"
	table := persistence.NewTable[personKey, person](s.dao, broken)
	outcome := table.Create(s.ctx, person{FirstName: "A", LastName: "B"})
	s.Equal(persistence.OutcomeFailed, outcome.Kind())
	s.Require().Error(outcome.Err())
	s.NotNil(errors.Unwrap(outcome.Err()))
	s.Contains(outcome.String(), "Failed: cannot create person")
}

func (s *PersistenceSuite) TestOptions() {
	options, err := persistence.OptionSource{Table: "roles", Value: "id", Text: []string{"name"}}.Load(s.ctx, s.dao)
	s.Require().NoError(err)
	texts := make([]string, len(options))
	for i, o := range options {
		texts[i] = o.Text
	}
	s.Equal([]string{"Developer", "Manager", "Tester"}, texts)

	people, err := persistence.OptionSource{Table: "persons", Value: "id", Text: []string{"last_name", "first_name"}}.Load(s.ctx, s.dao)
	s.Require().NoError(err)
	s.Len(people, len(names))
	s.Equal("Dijkstra Edsger", people[0].Text)
}
