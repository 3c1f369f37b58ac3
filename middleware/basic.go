package middleware

import (
	"log"
	"time"

	"github.com/deltegui/pmadmin"
)

// Logger logs one line per request once the handler is done.
func Logger(next pmadmin.Handler) pmadmin.Handler {
	return func(ctx *pmadmin.Context) error {
		start := time.Now()
		err := next(ctx)
		log.Printf(
			"[HTTP] %s %s %d %s from %s [%s]",
			ctx.Req.Method,
			ctx.Req.URL.Path,
			ctx.Status(),
			time.Since(start),
			ctx.Req.RemoteAddr,
			ctx.RequestID())
		return err
	}
}
