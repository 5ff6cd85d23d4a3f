package xhttp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(func(ctx *RequestCtx) { seen = RequestID(ctx) })

	ctx := &fasthttp.RequestCtx{}
	h(ctx)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, string(ctx.Response.Header.Peek(HeaderRequestID)))

	ctx = &fasthttp.RequestCtx{}
	ctx.Request.Header.Set(HeaderRequestID, "abc-123")
	h(ctx)
	assert.Equal(t, "abc-123", seen)
}

func TestRecoverMiddleware(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	RecoverMiddleware(func(*RequestCtx) { panic("boom") })(ctx)
	assert.Equal(t, StatusInternalServerError, ctx.Response.StatusCode())
}

func TestEngine_MiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) MiddlewareFunc {
		return func(next RequestHandler) RequestHandler {
			return func(ctx *RequestCtx) {
				order = append(order, name)
				next(ctx)
			}
		}
	}

	e := NewServer(DefaultServerOption)
	e.Use(mark("first"))
	e.Use(mark("second"))
	e.GET("/ping", func(ctx *RequestCtx) { order = append(order, "handler") })

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/ping")
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	e.Handler()(ctx)

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestNotFound(t *testing.T) {
	e := NewServer(DefaultServerOption)
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/nope")
	e.Handler()(ctx)
	assert.Equal(t, StatusNotFound, ctx.Response.StatusCode())
}

func TestCompressMiddleware(t *testing.T) {
	body := strings.Repeat(`{"customer_name":"Ravi","amount":"1180.00"},`, 20)
	h := CompressMiddleware(6)(func(ctx *RequestCtx) {
		ctx.SetContentType("application/json")
		ctx.SetBodyString(body)
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")
	h(ctx)
	assert.Equal(t, "gzip", string(ctx.Response.Header.ContentEncoding()))
	plain, err := ctx.Response.BodyGunzip()
	assert.NoError(t, err)
	assert.Equal(t, body, string(plain))

	ctx = &fasthttp.RequestCtx{}
	h(ctx)
	assert.Empty(t, ctx.Response.Header.ContentEncoding())
	assert.Equal(t, body, string(ctx.Response.Body()))
}
