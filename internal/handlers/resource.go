package handlers

import (
	"context"

	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/fasthttp/router"
)

type CRUDService[T any, P any] interface {
	Create(ctx context.Context, rec *T) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, p P) (*T, error)
	Delete(ctx context.Context, id string) error
}

type listFilter[T any] func(ctx *xhttp.RequestCtx) ([]*T, bool, error)

// Resource serves the plain CRUD routes of one entity. Filters are tried in
// order on list requests; the first one that applies answers.
type Resource[T any, P any] struct {
	svc     CRUDService[T, P]
	filters []listFilter[T]
}

func NewResource[T any, P any](svc CRUDService[T, P]) *Resource[T, P] {
	return &Resource[T, P]{svc: svc}
}

// Filter registers a list filter bound to query parameter key.
func (h *Resource[T, P]) Filter(key string, fn func(ctx context.Context, value string) ([]*T, error)) *Resource[T, P] {
	h.filters = append(h.filters, func(ctx *xhttp.RequestCtx) ([]*T, bool, error) {
		if !ctx.QueryArgs().Has(key) {
			return nil, false, nil
		}
		items, err := fn(ctx, query(ctx, key))
		return items, true, err
	})
	return h
}

func (h *Resource[T, P]) Register(g *router.Group, path string) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/{id}", h.Get)
	g.PUT(path+"/{id}", h.Update)
	g.DELETE(path+"/{id}", h.Delete)
}

func (h *Resource[T, P]) List(ctx *xhttp.RequestCtx) {
	for _, f := range h.filters {
		items, ok, err := f(ctx)
		if !ok {
			continue
		}
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		writeJSON(ctx, xhttp.StatusOK, listResponse[T]{Items: items, Total: len(items)})
		return
	}

	items, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listResponse[T]{Items: items, Total: len(items)})
}

func (h *Resource[T, P]) Get(ctx *xhttp.RequestCtx) {
	rec, err := h.svc.Get(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rec)
}

func (h *Resource[T, P]) Create(ctx *xhttp.RequestCtx) {
	rec := new(T)
	if err := readJSON(ctx, rec); err != nil {
		writeServiceError(ctx, err)
		return
	}
	created, err := h.svc.Create(ctx, rec)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *Resource[T, P]) Update(ctx *xhttp.RequestCtx) {
	var p P
	if err := readJSON(ctx, &p); err != nil {
		writeServiceError(ctx, err)
		return
	}
	rec, err := h.svc.Update(ctx, param(ctx, "id"), p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rec)
}

func (h *Resource[T, P]) Delete(ctx *xhttp.RequestCtx) {
	if err := h.svc.Delete(ctx, param(ctx, "id")); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.SetStatusCode(xhttp.StatusNoContent)
}

type listResponse[T any] struct {
	Items []*T `json:"items"`
	Total int  `json:"total"`
}
