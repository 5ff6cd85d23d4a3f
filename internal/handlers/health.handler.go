package handlers

import (
	"context"

	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
)

type HealthService interface {
	Version(ctx context.Context) (int, error)
}

type HealthHandler struct {
	schema HealthService
}

func RegisterHealthRoutes(e *xhttp.Router, h *HealthHandler) {
	e.GET("/health", h.GetHealth)
}

func NewHealthHandler(schema HealthService) *HealthHandler {
	return &HealthHandler{
		schema: schema,
	}
}

type healthResponse struct {
	Status        string `json:"status"`
	SchemaVersion int    `json:"schema_version"`
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	v, err := h.schema.Version(ctx)
	if err != nil {
		writeJSON(ctx, xhttp.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(ctx, xhttp.StatusOK, healthResponse{Status: "ok", SchemaVersion: v})
}
