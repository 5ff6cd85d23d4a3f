package handlers

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/export"
	"github.com/Fcatilizer/bookkeep-sub001/internal/ledger"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/fasthttp/router"
)

type CustomerEventService interface {
	CRUDService[model.CustomerEvent, model.CustomerEventPatch]
	ListByCustomer(ctx context.Context, customerID string) ([]*model.CustomerEvent, error)
	ListByStatus(ctx context.Context, status model.EventStatus) ([]*model.CustomerEvent, error)
	Search(ctx context.Context, name string) ([]*model.CustomerEvent, error)
	Budget(ctx context.Context, eventNo string) (ledger.Budget, error)
	Tax(ctx context.Context, eventNo string) (ledger.TaxBreakdown, error)
	ValidatePayment(ctx context.Context, eventNo string) (ledger.PaymentValidation, error)
	CheckStatus(ctx context.Context, eventNo string, status model.EventStatus) (ledger.PaymentValidation, error)
	UpdateStatus(ctx context.Context, eventNo string, status model.EventStatus) (ledger.PaymentValidation, error)
}

type ExportService interface {
	Prepare(ctx context.Context, eventNo string) (*export.Document, error)
	Publish(ctx context.Context, eventNo string) (string, *export.Document, error)
}

type CustomerEventHandler struct {
	*Resource[model.CustomerEvent, model.CustomerEventPatch]
	svc     CustomerEventService
	exports ExportService
}

func NewCustomerEventHandler(svc CustomerEventService, exports ExportService) *CustomerEventHandler {
	res := NewResource[model.CustomerEvent, model.CustomerEventPatch](svc).
		Filter("customer_id", svc.ListByCustomer).
		Filter("status", func(ctx context.Context, v string) ([]*model.CustomerEvent, error) {
			return svc.ListByStatus(ctx, model.EventStatus(v))
		}).
		Filter("q", svc.Search)
	return &CustomerEventHandler{Resource: res, svc: svc, exports: exports}
}

func RegisterCustomerEventRoutes(g *router.Group, h *CustomerEventHandler) {
	h.Register(g, "/customer-events")
	g.GET("/customer-events/{id}/budget", h.GetBudget)
	g.GET("/customer-events/{id}/tax", h.GetTax)
	g.GET("/customer-events/{id}/payment-validation", h.GetPaymentValidation)
	g.PUT("/customer-events/{id}/status", h.UpdateStatus)
	g.GET("/customer-events/{id}/export", h.GetExport)
	g.POST("/customer-events/{id}/export", h.PublishExport)
}

type budgetResponse struct {
	ledger.Budget
	Label         string  `json:"label"`
	DisplayAmount float64 `json:"display_amount"`
	Text          string  `json:"text"`
}

func (h *CustomerEventHandler) GetBudget(ctx *xhttp.RequestCtx) {
	b, err := h.svc.Budget(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, budgetResponse{
		Budget:        b,
		Label:         b.Label(),
		DisplayAmount: b.DisplayAmount(),
		Text:          b.String(),
	})
}

func (h *CustomerEventHandler) GetTax(ctx *xhttp.RequestCtx) {
	t, err := h.svc.Tax(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, t)
}

func (h *CustomerEventHandler) GetPaymentValidation(ctx *xhttp.RequestCtx) {
	v, err := h.svc.ValidatePayment(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, v)
}

type statusRequest struct {
	Status model.EventStatus `json:"status"`
}

type statusResponse struct {
	EventNo    string                   `json:"event_no"`
	Status     model.EventStatus        `json:"status"`
	Validation ledger.PaymentValidation `json:"payment_validation"`
	Error      string                   `json:"error,omitempty"`
}

// UpdateStatus closes or reopens a job. Closing a job that is not settled
// needs ?confirm=true; without it the validation comes back with 409.
func (h *CustomerEventHandler) UpdateStatus(ctx *xhttp.RequestCtx) {
	eventNo := param(ctx, "id")
	var req statusRequest
	if err := readJSON(ctx, &req); err != nil {
		writeServiceError(ctx, err)
		return
	}

	if req.Status.Closing() && !queryBool(ctx, "confirm") {
		v, err := h.svc.CheckStatus(ctx, eventNo, req.Status)
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		if !v.IsValid || !v.HasPayments {
			writeJSON(ctx, xhttp.StatusConflict, statusResponse{
				EventNo:    eventNo,
				Status:     req.Status,
				Validation: v,
				Error:      v.Message,
			})
			return
		}
	}

	v, err := h.svc.UpdateStatus(ctx, eventNo, req.Status)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, statusResponse{EventNo: eventNo, Status: req.Status, Validation: v})
}

func (h *CustomerEventHandler) GetExport(ctx *xhttp.RequestCtx) {
	doc, err := h.exports.Prepare(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, doc)
}

type publishResponse struct {
	QueueID  string           `json:"queue_id"`
	Document *export.Document `json:"document"`
}

func (h *CustomerEventHandler) PublishExport(ctx *xhttp.RequestCtx) {
	id, doc, err := h.exports.Publish(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusAccepted, publishResponse{QueueID: id, Document: doc})
}
