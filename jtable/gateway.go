package jtable

import (
	"context"
	"strings"

	"github.com/deltegui/pmadmin/core"
	"github.com/deltegui/pmadmin/pagination"
	"github.com/deltegui/pmadmin/persistence"
)

const (
	MessageModelIsNull = "Model is null"
	MessageNotFound    = "Not found"
)

// Lister is the listing side of an entity.
type Lister[M any] interface {
	List(ctx context.Context, filter string, pag pagination.Pagination) (pagination.List[M], error)
	SortCode(field string) int
}

// Repository is the writing side of an entity.
type Repository[K any, M any] interface {
	Create(ctx context.Context, model M) persistence.Outcome
	Update(ctx context.Context, key K, model M) persistence.Outcome
	Delete(ctx context.Context, key K) persistence.Outcome
}

// Gateway exposes the four widget operations over one entity. Absent and
// invalid models are answered here and never reach the repository. A Failed
// outcome is returned as error.
type Gateway[K any, M any] struct {
	lister     Lister[M]
	repository Repository[K, M]
	validate   core.Validator
}

func NewGateway[K any, M any](lister Lister[M], repository Repository[K, M], validate core.Validator) *Gateway[K, M] {
	return &Gateway[K, M]{
		lister:     lister,
		repository: repository,
		validate:   validate,
	}
}

func (g *Gateway[K, M]) ListPage(ctx context.Context, req ListRequest) (pagination.List[M], error) {
	pag := pagination.Pagination{
		CurrentPage:     req.Page,
		ElementsPerPage: req.PageSize,
		Order:           pagination.OrderAscending,
		Enabled:         true,
	}
	if len(req.Sorting) > 0 {
		pag.SortCode = g.lister.SortCode(req.Sorting[0].Field)
		if !req.Sorting[0].Ascending() {
			pag.Order = pagination.OrderDescending
		}
	}
	return g.lister.List(ctx, req.Search, pag)
}

func (g *Gateway[K, M]) Create(ctx context.Context, model *M) (Envelope, error) {
	if env, ok := g.check(model); !ok {
		return env, nil
	}
	outcome := g.repository.Create(ctx, *model)
	switch outcome.Kind() {
	case persistence.OutcomeCreated:
		return Created(outcome.Payload()), nil
	case persistence.OutcomeFailed:
		return failure(outcome)
	default:
		return Error(outcome.String()), nil
	}
}

func (g *Gateway[K, M]) Update(ctx context.Context, key K, model *M) (Envelope, error) {
	if env, ok := g.check(model); !ok {
		return env, nil
	}
	return g.interpret(g.repository.Update(ctx, key, *model))
}

func (g *Gateway[K, M]) Delete(ctx context.Context, key K) (Envelope, error) {
	return g.interpret(g.repository.Delete(ctx, key))
}

func (g *Gateway[K, M]) interpret(outcome persistence.Outcome) (Envelope, error) {
	switch outcome.Kind() {
	case persistence.OutcomeNoContent:
		return Ok(), nil
	case persistence.OutcomeNotFound:
		return Error(MessageNotFound), nil
	case persistence.OutcomeFailed:
		return failure(outcome)
	default:
		return Error(outcome.String()), nil
	}
}

func (g *Gateway[K, M]) check(model *M) (Envelope, bool) {
	if model == nil {
		return Error(MessageModelIsNull), false
	}
	if g.validate == nil {
		return Envelope{}, true
	}
	errs := g.validate(*model)
	if len(errs) == 0 {
		return Envelope{}, true
	}
	return Invalid(errs), false
}

// Invalid is the reply to a model failing validation: every message, one
// per line, in field order.
func Invalid(errs []core.FieldError) Envelope {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return Error(strings.Join(messages, "\n"))
}

func failure(outcome persistence.Outcome) (Envelope, error) {
	if err := outcome.Err(); err != nil {
		return Envelope{}, err
	}
	return Error(outcome.String()), nil
}
