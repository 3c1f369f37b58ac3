package jtable

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/persistence"
)

// OptionsLoader loads the dropdown entries of an entity.
type OptionsLoader func(ctx context.Context) ([]persistence.Option, error)

// Controller is the http side of a Gateway. Models and keys are bound from
// the posted form; a form without any model field is an absent model.
type Controller[K any, M any] struct {
	gateway *Gateway[K, M]
	options OptionsLoader
}

func NewController[K any, M any](gateway *Gateway[K, M], options OptionsLoader) Controller[K, M] {
	return Controller[K, M]{
		gateway: gateway,
		options: options,
	}
}

// Register adds the widget endpoints under base. Boundary wraps every
// endpoint outside the router middlewares, so a rejection by any of them
// is answered with an envelope too.
func (c Controller[K, M]) Register(r *pmadmin.Router, base string, middlewares ...pmadmin.Middleware) {
	r.HandleWithin(Boundary, http.MethodPost, base+"/list", c.List, middlewares...)
	r.HandleWithin(Boundary, http.MethodPost, base+"/create", c.Create, middlewares...)
	r.HandleWithin(Boundary, http.MethodPost, base+"/update", c.Update, middlewares...)
	r.HandleWithin(Boundary, http.MethodPost, base+"/delete", c.Delete, middlewares...)
	if c.options != nil {
		r.HandleWithin(Boundary, http.MethodGet, base+"/options", c.Options, middlewares...)
		r.HandleWithin(Boundary, http.MethodPost, base+"/options", c.Options, middlewares...)
	}
}

func (c Controller[K, M]) List(ctx *pmadmin.Context) error {
	req, err := ParseListRequest(ctx.Req)
	if err != nil {
		return err
	}
	list, err := c.gateway.ListPage(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JsonOk(ListResult[M]{
		Result:           ResultOK,
		Records:          list.Items,
		TotalRecordCount: list.Pagination.TotalElements,
	})
}

func (c Controller[K, M]) Create(ctx *pmadmin.Context) error {
	model, err := bindModel[M](ctx, nil)
	if env, ok := rejected(err); ok {
		return ctx.JsonOk(env)
	}
	if err != nil {
		return err
	}
	env, err := c.gateway.Create(ctx.Context(), model)
	if err != nil {
		return err
	}
	return ctx.JsonOk(env)
}

func (c Controller[K, M]) Update(ctx *pmadmin.Context) error {
	var key K
	keys, err := ctx.ParseFormFields(&key)
	if env, ok := rejected(err); ok {
		return ctx.JsonOk(env)
	}
	if err != nil {
		return err
	}
	model, err := bindModel[M](ctx, keys)
	if env, ok := rejected(err); ok {
		return ctx.JsonOk(env)
	}
	if err != nil {
		return err
	}
	env, err := c.gateway.Update(ctx.Context(), key, model)
	if err != nil {
		return err
	}
	return ctx.JsonOk(env)
}

func (c Controller[K, M]) Delete(ctx *pmadmin.Context) error {
	var key K
	matched, err := ctx.ParseForm(&key)
	if env, ok := rejected(err); ok {
		return ctx.JsonOk(env)
	}
	if err != nil {
		return err
	}
	if matched == 0 {
		return ctx.JsonOk(Error(MessageNotFound))
	}
	env, err := c.gateway.Delete(ctx.Context(), key)
	if err != nil {
		return err
	}
	return ctx.JsonOk(env)
}

func (c Controller[K, M]) Options(ctx *pmadmin.Context) error {
	loaded, err := c.options(ctx.Context())
	if err != nil {
		return err
	}
	options := make([]Option, len(loaded))
	for i, o := range loaded {
		options[i] = Option{DisplayText: o.Text, Value: o.Value}
	}
	return ctx.JsonOk(OptionsResult{
		Result:  ResultOK,
		Options: options,
	})
}

// bindModel binds M from the form. Form names in keys identify the record
// and do not count as model fields: a form carrying only them is an
// absent model.
func bindModel[M any](ctx *pmadmin.Context, keys []string) (*M, error) {
	var model M
	names, err := ctx.ParseFormFields(&model)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if !slices.Contains(keys, name) {
			return &model, nil
		}
	}
	return nil, nil
}

// rejected turns unconvertible form values into a validation reply.
func rejected(err error) (Envelope, bool) {
	var formErr *pmadmin.FormError
	if errors.As(err, &formErr) {
		return Invalid(formErr.Fields), true
	}
	return Envelope{}, false
}

// Boundary answers every failure of next, panics included, with an Error
// envelope carrying the cause chain. The status is always 200: the widget
// only reads the Result flag.
func Boundary(next pmadmin.Handler) pmadmin.Handler {
	return func(ctx *pmadmin.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = reply(ctx, panicError(r))
			}
		}()
		if failure := next(ctx); failure != nil {
			return reply(ctx, failure)
		}
		return nil
	}
}

func reply(ctx *pmadmin.Context, err error) error {
	message := CauseChain(err)
	log.Printf("[JTABLE] (%s) %s failed [%s]: %s", ctx.Req.Method, ctx.Req.URL.Path, ctx.RequestID(), message)
	return ctx.JsonOk(Error(message))
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("unexpected failure: %w", err)
	}
	return errors.New(fmt.Sprint(r))
}
