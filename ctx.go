package pmadmin

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/deltegui/pmadmin/core"
	"github.com/deltegui/pmadmin/cypher"
	"github.com/deltegui/pmadmin/localizer"
	"github.com/deltegui/pmadmin/pagination"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Context struct {
	Req    *http.Request
	Res    http.ResponseWriter
	params httprouter.Params
	ctx    context.Context

	locstore *localizer.Store

	renderer Renderer

	validate core.Validator

	cy core.Cypher
}

// NewContext creates a Context outside a Router. Useful for tests.
func NewContext(w http.ResponseWriter, req *http.Request) *Context {
	return &Context{
		Req: req,
		Res: newResponseWriter(w),
		ctx: req.Context(),
	}
}

func (ctx *Context) Set(key, value any) {
	ctx.ctx = context.WithValue(ctx.ctx, key, value)
}

func (ctx *Context) Get(key any) any {
	return ctx.ctx.Value(key)
}

// Context returns the request context plus every value added with Set.
func (ctx *Context) Context() context.Context {
	return ctx.ctx
}

// Status is the status code written so far (200 if nothing was written).
func (ctx *Context) Status() int {
	if rw, ok := ctx.Res.(*responseWriter); ok {
		return rw.statusCode
	}
	return http.StatusOK
}

func (ctx *Context) RequestID() string {
	return chimiddleware.GetReqID(ctx.Req.Context())
}

func (ctx *Context) PaginationToVM(pag pagination.Pagination) pagination.ViewModel {
	if !ctx.HaveLocalizer() {
		return pagination.ToVM(pag, localizer.Localizer{})
	}
	return pagination.ToVM(pag, ctx.GetLocalizer("common/pagination"))
}

func (ctx *Context) HaveLocalizer() bool {
	return ctx.locstore != nil
}

func (ctx *Context) GetLocalizer(file string) localizer.Localizer {
	if !ctx.HaveLocalizer() {
		return localizer.Localizer{}
	}
	return ctx.locstore.GetUsingRequest(file, ctx.Req)
}

func (ctx *Context) Localize(file, key string) string {
	return ctx.GetLocalizer(file).Get(key)
}

// LocalizeError returns the message of err in the request language, its
// Reason when there is no translation.
func (ctx *Context) LocalizeError(err core.UseCaseError) string {
	if !ctx.HaveLocalizer() {
		return err.Reason
	}
	msg, ok := ctx.locstore.GetLocalizedError(err, ctx.Req)
	if !ok {
		return err.Reason
	}
	return msg
}

func (ctx *Context) Redirect(to string) error {
	http.Redirect(ctx.Res, ctx.Req, to, http.StatusTemporaryRedirect)
	return nil
}

func (ctx *Context) RedirectCode(to string, code int) error {
	http.Redirect(ctx.Res, ctx.Req, to, code)
	return nil
}

func (ctx *Context) GetURLParam(name string) string {
	return ctx.params.ByName(name)
}

func (ctx *Context) GetQueryParam(name string) string {
	return ctx.Req.URL.Query().Get(name)
}

func (ctx *Context) GetCurrentLanguage() string {
	if !ctx.HaveLocalizer() {
		return localizer.FallbackLanguage
	}
	return ctx.locstore.ReadCookie(ctx.Req)
}

func (ctx *Context) ChangeLanguage(to string) error {
	if !ctx.HaveLocalizer() {
		return fmt.Errorf("cannot change language: no localizer configured")
	}
	return ctx.locstore.CreateCookie(ctx.Res, to)
}

// Validate returns the field errors of s. Without a configured validator
// every model is valid.
func (ctx *Context) Validate(s any) []core.FieldError {
	if ctx.validate == nil {
		return nil
	}
	return ctx.validate(s)
}

func (ctx *Context) Validator() core.Validator {
	return ctx.validate
}

func (ctx *Context) ParseJson(dst any) error {
	return json.NewDecoder(ctx.Req.Body).Decode(dst)
}

func (ctx *Context) String(status int, data string, a ...any) error {
	ctx.Res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	ctx.Res.WriteHeader(status)
	_, err := fmt.Fprintf(ctx.Res, data, a...)
	return err
}

func (ctx *Context) BadRequest(data string, a ...any) error {
	return ctx.String(http.StatusBadRequest, data, a...)
}

func (ctx *Context) NotFound(data string, a ...any) error {
	return ctx.String(http.StatusNotFound, data, a...)
}

func (ctx *Context) Ok(data string, a ...any) error {
	return ctx.String(http.StatusOK, data, a...)
}

func (ctx *Context) InternalServerError(data string, a ...any) error {
	return ctx.String(http.StatusInternalServerError, data, a...)
}

func (ctx *Context) NoContent() error {
	ctx.Res.WriteHeader(http.StatusNoContent)
	return nil
}

func (ctx *Context) Forbidden(data string, a ...any) error {
	return ctx.String(http.StatusForbidden, data, a...)
}

func (ctx *Context) Json(status int, data any) error {
	response, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}
	ctx.Res.Header().Set("Content-Type", "application/json")
	ctx.Res.WriteHeader(status)
	_, err = ctx.Res.Write(response)
	return err
}

func (ctx *Context) JsonOk(data any) error {
	return ctx.Json(http.StatusOK, data)
}

type CookieOptions struct {
	Name    string
	Expires time.Duration
	Value   string

	// Set if front scripts can access to cookie.
	// If its true, front script cannot access.
	HttpOnly bool

	// Sets if cookies are only send through https.
	Secure bool
}

func (ctx *Context) CreateCookieOptions(opt CookieOptions) error {
	var data string
	if ctx.cy != nil {
		var err error
		data, err = cypher.EncodeCookie(ctx.cy, opt.Value)
		if err != nil {
			return fmt.Errorf("error encoding cookie: %w", err)
		}
	} else {
		log.Println("[PMADMIN] WARNING!: Using plain cookies. " +
			"You must provide a core.Cypher implementation to use encoded cookies")
		data = opt.Value
	}
	http.SetCookie(ctx.Res, &http.Cookie{
		Name:     opt.Name,
		Value:    data,
		Expires:  time.Now().Add(opt.Expires),
		MaxAge:   int(opt.Expires.Seconds()),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		HttpOnly: opt.HttpOnly,
		Secure:   opt.Secure,
	})
	return nil
}

func (ctx *Context) CreateCookie(name, data string) error {
	return ctx.CreateCookieOptions(CookieOptions{
		Name:     name,
		Expires:  core.OneDayDuration,
		Value:    data,
		HttpOnly: true,
	})
}

func (ctx *Context) ReadCookie(name string) (string, error) {
	cookie, err := ctx.Req.Cookie(name)
	if err != nil {
		return "", fmt.Errorf("error while reading cookie with key: '%s': %w", name, err)
	}
	if ctx.cy == nil {
		return cookie.Value, nil
	}
	data, err := cypher.DecodeCookie(ctx.cy, cookie.Value)
	if err != nil {
		return "", fmt.Errorf("cannot decode cookie: %w", err)
	}
	return data, nil
}

func (ctx *Context) DeleteCookie(name string) error {
	if _, err := ctx.Req.Cookie(name); err != nil {
		return fmt.Errorf("error while reading cookie with key: '%s': %w", name, err)
	}
	http.SetCookie(ctx.Res, &http.Cookie{
		Name:    name,
		Value:   "",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
		Path:    "/",
	})
	return nil
}
