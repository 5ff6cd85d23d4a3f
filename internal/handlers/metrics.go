package handlers

import (
	"time"

	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/prom"
)

// MetricsMiddleware records request latency by method and status code.
func MetricsMiddleware(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		prom.AddRequestDuration(time.Since(start).Seconds(), string(ctx.Method()), ctx.Response.StatusCode())
	}
}
