package csrf

import (
	"fmt"
	"log"
	"net/http"

	"github.com/deltegui/pmadmin"
)

const ContextKey string = "pmadmin-csrf"

func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// Middleware rejects unsafe requests without a valid token with a 403
// *pmadmin.StatusError and leaves a fresh token in the context for the views.
func Middleware(csrf *Csrf) pmadmin.Middleware {
	return func(next pmadmin.Handler) pmadmin.Handler {
		return func(ctx *pmadmin.Context) error {
			if !safeMethod(ctx.Req.Method) {
				if err := csrf.CheckRequest(ctx.Req); err != nil {
					log.Printf("[CSRF] (%s) %s rejected: %s\n", ctx.Req.Method, ctx.Req.URL.Path, err)
					return pmadmin.NewStatusError(http.StatusForbidden, err)
				}
			}
			token, err := csrf.Generate()
			if err != nil {
				return fmt.Errorf("cannot issue csrf token: %w", err)
			}
			ctx.Set(ContextKey, token)
			return next(ctx)
		}
	}
}

// Token returns the token issued for this request, if any.
func Token(ctx *pmadmin.Context) string {
	token, _ := ctx.Get(ContextKey).(string)
	return token
}
