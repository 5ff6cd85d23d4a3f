package handlers

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/backup"
	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/fasthttp/router"
)

type BackupService interface {
	Export(ctx context.Context) (*backup.Document, error)
	Restore(ctx context.Context, doc *backup.Document) error
}

type BackupHandler struct {
	svc BackupService
}

func NewBackupHandler(svc BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

func RegisterBackupRoutes(g *router.Group, h *BackupHandler) {
	g.GET("/backup", h.Export)
	g.POST("/backup", h.Restore)
}

func (h *BackupHandler) Export(ctx *xhttp.RequestCtx) {
	doc, err := h.svc.Export(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+backup.FileName(ctx.Time())+`"`)
	writeJSON(ctx, xhttp.StatusOK, doc)
}

// Restore replaces the core tables with the posted backup document.
func (h *BackupHandler) Restore(ctx *xhttp.RequestCtx) {
	doc, err := backup.Decode(ctx.PostBody())
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if err := h.svc.Restore(ctx, doc); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"restored": doc.Count()})
}
