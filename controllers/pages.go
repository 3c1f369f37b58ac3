package controllers

var PersonsPage = Page{
	Name:        "persons",
	DefaultSort: "LastName",
	Fields: []Field{
		{Name: "Id", Key: true, ReadOnly: true},
		{Name: "FirstName"},
		{Name: "LastName"},
		{Name: "Phone"},
		{Name: "Email"},
		{Name: "Iban"},
	},
}

var PartnersPage = Page{
	Name:        "partners",
	DefaultSort: "Name",
	Fields: []Field{
		{Name: "Id", Key: true, ReadOnly: true, Hidden: true},
		{Name: "Name"},
		{Name: "PartnerTypeId", Hidden: true, Options: "/partner-types/options"},
		{Name: "PartnerTypeName", ReadOnly: true},
		{Name: "Email"},
		{Name: "Phone"},
	},
}

var ProjectsPage = Page{
	Name:        "projects",
	DefaultSort: "Name",
	Fields: []Field{
		{Name: "Id", Key: true, ReadOnly: true, Hidden: true},
		{Name: "Name"},
		{Name: "Description", Type: TypeTextArea},
		{Name: "ProjectTypeId", Hidden: true, Options: "/project-types/options"},
		{Name: "ProjectTypeName", ReadOnly: true},
		{Name: "PartnerId", Hidden: true, Options: "/partners/options"},
		{Name: "PartnerName", ReadOnly: true},
		{Name: "RequestCount", ReadOnly: true},
	},
}

var RequestsPage = Page{
	Name:        "requests",
	DefaultSort: "Title",
	Fields: []Field{
		{Name: "Id", Key: true, ReadOnly: true, Hidden: true},
		{Name: "Title"},
		{Name: "Description", Type: TypeTextArea},
		{Name: "ProjectId", Hidden: true, Options: "/projects/options"},
		{Name: "ProjectName", ReadOnly: true},
		{Name: "RequestTypeId", Hidden: true, Options: "/request-types/options"},
		{Name: "RequestTypeName", ReadOnly: true},
		{Name: "TaskCount", ReadOnly: true},
	},
}

var TasksPage = Page{
	Name:        "tasks",
	DefaultSort: "Title",
	Fields: []Field{
		{Name: "Id", Key: true, ReadOnly: true, Hidden: true},
		{Name: "Title"},
		{Name: "RequestId", Hidden: true, Options: "/requests/options"},
		{Name: "RequestTitle", ReadOnly: true},
		{Name: "AssigneeId", Hidden: true, Options: "/persons/options"},
		{Name: "AssigneeLastName", ReadOnly: true},
		{Name: "Done", Type: TypeCheckbox},
		{Name: "Estimate"},
	},
}

var CardsPage = Page{
	Name:        "cards",
	DefaultSort: "Number",
	Fields: []Field{
		{Name: "Id", Key: true, ReadOnly: true, Hidden: true},
		{Name: "Number"},
		{Name: "HolderId", Hidden: true, Options: "/persons/options"},
		{Name: "HolderLastName", ReadOnly: true},
		{Name: "Balance"},
		{Name: "TransactionCount", ReadOnly: true},
	},
}

var TransactionsPage = Page{
	Name: "transactions",
	Fields: []Field{
		{Name: "Id", Key: true, ReadOnly: true, Hidden: true},
		{Name: "OccurredAt", Type: TypeDate},
		{Name: "Amount"},
		{Name: "CardId", Hidden: true, Options: "/cards/options"},
		{Name: "CardNumber", ReadOnly: true},
		{Name: "TransactionTypeId", Hidden: true, Options: "/transaction-types/options"},
		{Name: "TransactionTypeName", ReadOnly: true},
		{Name: "Description"},
	},
}

var MembersPage = Page{
	Name:        "members",
	DefaultSort: "ProjectName",
	Fields: []Field{
		{Name: "ProjectId", Key: true, Hidden: true, Options: "/projects/options"},
		{Name: "ProjectName", ReadOnly: true},
		{Name: "PersonId", Key: true, Hidden: true, Options: "/persons/options"},
		{Name: "PersonLastName", ReadOnly: true},
		{Name: "RoleId", Hidden: true, Options: "/roles/options"},
		{Name: "RoleName", ReadOnly: true},
	},
}

func lookupPage(name string) Page {
	return Page{
		Name:        name,
		DefaultSort: "Name",
		Fields: []Field{
			{Name: "Id", Key: true, ReadOnly: true},
			{Name: "Name"},
		},
	}
}
