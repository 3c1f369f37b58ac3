package pmadmin

import (
	"fmt"
	"net/http"
)

// Renderer produces html from a parsed template name and a view model.
type Renderer interface {
	Render(ctx *Context, status int, parsed string, vm any) error
	RenderWithErrors(ctx *Context, status int, parsed string, vm any, formErrors map[string]string) error
}

func (ctx *Context) Render(status int, parsed string, vm any) error {
	if ctx.renderer == nil {
		return fmt.Errorf("cannot render '%s': missing dependency pmadmin.Renderer", parsed)
	}
	return ctx.renderer.Render(ctx, status, parsed, vm)
}

func (ctx *Context) RenderOk(parsed string, vm any) error {
	return ctx.Render(http.StatusOK, parsed, vm)
}

func (ctx *Context) RenderWithErrors(status int, parsed string, vm any, formErrors map[string]string) error {
	if ctx.renderer == nil {
		return fmt.Errorf("cannot render '%s': missing dependency pmadmin.Renderer", parsed)
	}
	return ctx.renderer.RenderWithErrors(ctx, status, parsed, vm, formErrors)
}
