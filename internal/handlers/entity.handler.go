package handlers

import (
	"context"
	"strconv"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/internal/services"
	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/fasthttp/router"
)

type CustomerService interface {
	CRUDService[model.Customer, model.CustomerPatch]
	Search(ctx context.Context, name string) ([]*model.Customer, error)
}

func RegisterCustomerRoutes(g *router.Group, svc CustomerService) {
	NewResource[model.Customer, model.CustomerPatch](svc).
		Filter("q", svc.Search).
		Register(g, "/customers")
}

type ProductService interface {
	CRUDService[model.Product, model.ProductPatch]
	Search(ctx context.Context, name string) ([]*model.Product, error)
}

func RegisterProductRoutes(g *router.Group, svc ProductService) {
	NewResource[model.Product, model.ProductPatch](svc).
		Filter("q", svc.Search).
		Register(g, "/products")
}

type DailyEventService interface {
	CRUDService[model.DailyEvent, model.DailyEventPatch]
	ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.DailyEvent, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*model.DailyEvent, error)
	ListByDateRange(ctx context.Context, from, to model.Date) ([]*model.DailyEvent, error)
	Search(ctx context.Context, q string) ([]*model.DailyEvent, error)
	TotalByCustomerEvent(ctx context.Context, eventNo string) (float64, error)
}

type jobExpensesResponse struct {
	listResponse[model.DailyEvent]
	TotalAmount float64 `json:"total_amount"`
}

func RegisterDailyEventRoutes(g *router.Group, svc DailyEventService) {
	res := NewResource[model.DailyEvent, model.DailyEventPatch](svc).
		Filter("customer_event_no", svc.ListByCustomerEvent).
		Filter("customer_id", svc.ListByCustomer).
		Filter("q", svc.Search)
	res.filters = append(res.filters, func(ctx *xhttp.RequestCtx) ([]*model.DailyEvent, bool, error) {
		if !ctx.QueryArgs().Has("from") && !ctx.QueryArgs().Has("to") {
			return nil, false, nil
		}
		from, err := queryDate(ctx, "from")
		if err != nil {
			return nil, true, err
		}
		to, err := queryDate(ctx, "to")
		if err != nil {
			return nil, true, err
		}
		items, err := svc.ListByDateRange(ctx, from, to)
		return items, true, err
	})
	res.Register(g, "/daily-events")
	g.GET("/customer-events/{id}/daily-events", func(ctx *xhttp.RequestCtx) {
		eventNo := param(ctx, "id")
		amount, err := svc.TotalByCustomerEvent(ctx, eventNo)
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		items, err := svc.ListByCustomerEvent(ctx, eventNo)
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		writeJSON(ctx, xhttp.StatusOK, jobExpensesResponse{
			listResponse: listResponse[model.DailyEvent]{Items: items, Total: len(items)},
			TotalAmount:  amount,
		})
	})
}

type LookupService[T any, P any] interface {
	CRUDService[T, P]
	ListActive(ctx context.Context) ([]*T, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type activeRequest struct {
	IsActive *bool `json:"is_active"`
}

// RegisterLookupRoutes serves a lookup table; ?active=true lists only the
// entries offered for selection.
func RegisterLookupRoutes[T any, P any](g *router.Group, path string, svc LookupService[T, P]) {
	res := NewResource[T, P](svc)
	res.filters = append(res.filters, func(ctx *xhttp.RequestCtx) ([]*T, bool, error) {
		active, err := strconv.ParseBool(query(ctx, "active"))
		if err != nil || !active {
			return nil, false, nil
		}
		items, err := svc.ListActive(ctx)
		return items, true, err
	})
	res.Register(g, path)
	g.PUT(path+"/{id}/active", func(ctx *xhttp.RequestCtx) {
		var req activeRequest
		if err := readJSON(ctx, &req); err != nil {
			writeServiceError(ctx, err)
			return
		}
		if req.IsActive == nil {
			writeError(ctx, xhttp.StatusBadRequest, "is_active is required")
			return
		}
		if err := svc.SetActive(ctx, param(ctx, "id"), *req.IsActive); err != nil {
			writeServiceError(ctx, err)
			return
		}
		rec, err := svc.Get(ctx, param(ctx, "id"))
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		writeJSON(ctx, xhttp.StatusOK, rec)
	})
}

type PaymentService interface {
	CRUDService[model.Payment, model.PaymentPatch]
	ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.Payment, error)
	Summaries(ctx context.Context) (*services.PaymentSummaries, error)
}

func RegisterPaymentRoutes(g *router.Group, svc PaymentService) {
	g.GET("/payments/summaries", func(ctx *xhttp.RequestCtx) {
		out, err := svc.Summaries(ctx)
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		writeJSON(ctx, xhttp.StatusOK, out)
	})
	NewResource[model.Payment, model.PaymentPatch](svc).
		Filter("customer_event_no", svc.ListByCustomerEvent).
		Register(g, "/payments")
	g.GET("/customer-events/{id}/payments", func(ctx *xhttp.RequestCtx) {
		items, err := svc.ListByCustomerEvent(ctx, param(ctx, "id"))
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		writeJSON(ctx, xhttp.StatusOK, listResponse[model.Payment]{Items: items, Total: len(items)})
	})
}
