package entities

import (
	"github.com/deltegui/pmadmin/persistence"
	"github.com/deltegui/pmadmin/sorting"
)

type Project struct {
	Id              int64
	Name            string  `validate:"required,max=200"`
	Description     *string `validate:"omitempty,max=2000"`
	ProjectTypeId   *int64
	ProjectTypeName *string `export:"ProjectType"`
	PartnerId       *int64
	PartnerName     *string `export:"Partner"`
	RequestCount    int64   `html:"-"`
}

var Projects = persistence.Definition{
	Name: "project",
	Source: `select p.id, p.name, p.description,
			p.project_type_id, pt.name as project_type_name,
			p.partner_id, pa.name as partner_name,
			(select count(*) from requests r where r.project_id = p.id) as request_count
		from projects p
		left join project_types pt on pt.id = p.project_type_id
		left join partners pa on pa.id = p.partner_id`,
	Filter: []string{"name", "description", "project_type_name", "partner_name"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "Name", Column: "name"},
		sorting.Key{Code: 2, Field: "Description", Column: "description"},
		sorting.Key{Code: 3, Field: "ProjectTypeName", Column: "project_type_name"},
		sorting.Key{Code: 4, Field: "PartnerName", Column: "partner_name"},
		sorting.Key{Code: 5, Field: "RequestCount", Column: "request_count"},
	),
	Table:   "projects",
	Key:     []string{"id"},
	Columns: []string{"name", "description", "project_type_id", "partner_id"},
	AutoKey: "id",
}

var ProjectOptions = persistence.OptionSource{Table: "projects", Value: "id", Text: []string{"name"}}

type Request struct {
	Id              int64
	Title           string  `validate:"required,max=200"`
	Description     *string `validate:"omitempty,max=2000"`
	ProjectId       *int64
	ProjectName     *string `export:"Project"`
	RequestTypeId   *int64
	RequestTypeName *string `export:"RequestType"`
	TaskCount       int64   `html:"-"`
}

var Requests = persistence.Definition{
	Name: "request",
	Source: `select r.id, r.title, r.description,
			r.project_id, p.name as project_name,
			r.request_type_id, rt.name as request_type_name,
			(select count(*) from tasks t where t.request_id = r.id) as task_count
		from requests r
		left join projects p on p.id = r.project_id
		left join request_types rt on rt.id = r.request_type_id`,
	Filter: []string{"title", "description", "project_name", "request_type_name"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "Title", Column: "title"},
		sorting.Key{Code: 2, Field: "Description", Column: "description"},
		sorting.Key{Code: 3, Field: "ProjectName", Column: "project_name"},
		sorting.Key{Code: 4, Field: "RequestTypeName", Column: "request_type_name"},
		sorting.Key{Code: 5, Field: "TaskCount", Column: "task_count"},
	),
	Table:   "requests",
	Key:     []string{"id"},
	Columns: []string{"title", "description", "project_id", "request_type_id"},
	AutoKey: "id",
}

var RequestOptions = persistence.OptionSource{Table: "requests", Value: "id", Text: []string{"title"}}

type Task struct {
	Id                int64
	Title             string `validate:"required,max=200"`
	RequestId         *int64
	RequestTitle      *string `export:"Request"`
	AssigneeId        *int64
	AssigneeFirstName *string `export:"-"`
	AssigneeLastName  *string `export:"Assignee"`
	Done              bool
	Estimate          float64 `validate:"gte=0"`
}

var Tasks = persistence.Definition{
	Name: "task",
	Source: `select t.id, t.title,
			t.request_id, r.title as request_title,
			t.assignee_id, pe.first_name as assignee_first_name, pe.last_name as assignee_last_name,
			t.done, t.estimate
		from tasks t
		left join requests r on r.id = t.request_id
		left join persons pe on pe.id = t.assignee_id`,
	Filter: []string{"title", "request_title", "assignee_first_name", "assignee_last_name"},
	Sort: sorting.New([]string{"id"},
		sorting.Key{Code: 1, Field: "Title", Column: "title"},
		sorting.Key{Code: 2, Field: "RequestTitle", Column: "request_title"},
		sorting.Key{Code: 3, Field: "AssigneeLastName", Column: "assignee_last_name"},
		sorting.Key{Code: 4, Field: "Done", Column: "done"},
		sorting.Key{Code: 5, Field: "Estimate", Column: "estimate"},
	),
	Table:   "tasks",
	Key:     []string{"id"},
	Columns: []string{"title", "request_id", "assignee_id", "done", "estimate"},
	AutoKey: "id",
}

// Member is the role of a person in a project.
type Member struct {
	ProjectId       int64   `validate:"gt=0"`
	ProjectName     *string `export:"Project"`
	PersonId        int64   `validate:"gt=0"`
	PersonFirstName *string `export:"-"`
	PersonLastName  *string `export:"Person"`
	RoleId          *int64
	RoleName        *string `export:"Role"`
}

type MemberKey struct {
	ProjectId int64
	PersonId  int64
}

var Members = persistence.Definition{
	Name: "member",
	Source: `select m.project_id, p.name as project_name,
			m.person_id, pe.first_name as person_first_name, pe.last_name as person_last_name,
			m.role_id, ro.name as role_name
		from members m
		left join projects p on p.id = m.project_id
		left join persons pe on pe.id = m.person_id
		left join roles ro on ro.id = m.role_id`,
	Filter: []string{"project_name", "person_first_name", "person_last_name", "role_name"},
	Sort: sorting.New([]string{"project_id", "person_id"},
		sorting.Key{Code: 1, Field: "ProjectName", Column: "project_name"},
		sorting.Key{Code: 2, Field: "PersonLastName", Column: "person_last_name"},
		sorting.Key{Code: 3, Field: "RoleName", Column: "role_name"},
	),
	Table:   "members",
	Key:     []string{"project_id", "person_id"},
	Columns: []string{"role_id"},
}
