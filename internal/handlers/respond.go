package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Fcatilizer/bookkeep-sub001/internal/backup"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/internal/services"
	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
)

var errEmptyBody = fmt.Errorf("%w: request body is empty", model.ErrValidation)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return nil
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("[handlers] encode response", "error", err)
		ctx.Error(xhttp.StatusText(xhttp.StatusInternalServerError), xhttp.StatusInternalServerError)
		return
	}
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors onto status codes. Unexpected errors
// are logged and answered with a generic message.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrDuplicate):
		writeError(ctx, xhttp.StatusConflict, err.Error())
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, backup.ErrMalformedBackup),
		errors.Is(err, backup.ErrMissingTables):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrExportUnavailable):
		writeError(ctx, xhttp.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("[handlers] request failed", "path", string(ctx.Path()), "error", err,
			"request_id", xhttp.RequestID(ctx))
		writeError(ctx, xhttp.StatusInternalServerError, xhttp.StatusText(xhttp.StatusInternalServerError))
	}
}

func param(ctx *xhttp.RequestCtx, name string) string {
	v, _ := ctx.UserValue(name).(string)
	return v
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryBool(ctx *xhttp.RequestCtx, key string) bool {
	v, err := strconv.ParseBool(query(ctx, key))
	return err == nil && v
}

func queryDate(ctx *xhttp.RequestCtx, key string) (model.Date, error) {
	d, err := model.ParseDate(query(ctx, key))
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: %s: %v", model.ErrValidation, key, err)
	}
	return d, nil
}
