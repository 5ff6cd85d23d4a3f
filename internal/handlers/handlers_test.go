package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/Fcatilizer/bookkeep-sub001/internal/backup"
	"github.com/Fcatilizer/bookkeep-sub001/internal/export"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/internal/repository"
	"github.com/Fcatilizer/bookkeep-sub001/internal/schema"
	"github.com/Fcatilizer/bookkeep-sub001/internal/services"
	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&fasthttp.Request{}, nil, nil)
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

type stubPublisher struct {
	published []*export.Document
}

func (p *stubPublisher) Publish(_ context.Context, doc *export.Document) (string, error) {
	p.published = append(p.published, doc)
	return "1-0", nil
}

type testAPI struct {
	t         *testing.T
	router    *xhttp.Router
	publisher *stubPublisher
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := store.Open(store.Config{Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, schema.Open(context.Background(), db, schema.CurrentVersion))

	customers := repository.NewCustomerRepository(db)
	products := repository.NewProductRepository(db)
	events := repository.NewCustomerEventRepository(db)
	expenses := repository.NewDailyEventRepository(db)
	payments := repository.NewPaymentRepository(db)
	publisher := &stubPublisher{}

	r := xhttp.CreateDefaultRouter()
	RegisterRoutes(r, Services{
		Health:         schema.NewMigrator(db),
		Customers:      services.NewCustomerService(customers),
		Products:       services.NewProductService(products),
		CustomerEvents: services.NewCustomerEventService(events, customers, products, expenses, payments),
		DailyEvents:    services.NewDailyEventService(expenses, customers, events),
		Payments:       services.NewPaymentService(payments, events),
		ExpenseTypes:   services.NewExpenseTypeService(repository.NewExpenseTypeRepository(db)),
		PaymentModes:   services.NewPaymentModeService(repository.NewPaymentModeRepository(db)),
		Exports:        services.NewExportService(events, customers, products, expenses, payments, publisher),
		Backup:         backup.New(db),
	})
	return &testAPI{t: t, router: r, publisher: publisher}
}

func (a *testAPI) do(method, path string, body any) (int, map[string]any) {
	a.t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(a.t, err)
	}
	ctx := setupTestContext(method, path, raw)
	a.router.Handler(ctx)

	out := map[string]any{}
	if b := ctx.Response.Body(); len(b) > 0 {
		_ = json.Unmarshal(b, &out)
	}
	return ctx.Response.StatusCode(), out
}

// seedJob creates a customer, an 18% product and a job agreed at 1180.
func (a *testAPI) seedJob() {
	a.t.Helper()
	status, _ := a.do("POST", "/api/v1/customers", map[string]any{"customer_name": "Ravi"})
	require.Equal(a.t, 201, status)
	status, _ = a.do("POST", "/api/v1/products", map[string]any{"product_name": "Stage", "tax_rate": 18})
	require.Equal(a.t, 201, status)
	status, body := a.do("POST", "/api/v1/customer-events", map[string]any{
		"event_name": "Stage build", "customer_id": "CUST0001", "product_id": "PROD0001",
		"agreed_amount": 1180, "event_date": "2024-04-01",
	})
	require.Equal(a.t, 201, status, body)
}

func TestAPI_CustomerLifecycle(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do("POST", "/api/v1/customers", map[string]any{"customer_name": "Ravi", "location": "Pune"})
	require.Equal(t, 201, status)
	assert.Equal(t, "CUST0001", body["customer_id"])

	status, body = api.do("GET", "/api/v1/customers?q=av", nil)
	require.Equal(t, 200, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = api.do("PUT", "/api/v1/customers/CUST0001", map[string]any{"mobile_number": "98200"})
	require.Equal(t, 200, status)
	assert.Equal(t, "98200", body["mobile_number"])

	status, _ = api.do("DELETE", "/api/v1/customers/CUST0001", nil)
	assert.Equal(t, 204, status)

	status, body = api.do("GET", "/api/v1/customers/CUST0001", nil)
	assert.Equal(t, 404, status)
	assert.Contains(t, body["error"], "not found")
}

func TestAPI_Validation(t *testing.T) {
	api := newTestAPI(t)

	status, _ := api.do("POST", "/api/v1/customers", map[string]any{"customer_name": " "})
	assert.Equal(t, 400, status)

	ctx := setupTestContext("POST", "/api/v1/products", []byte("{"))
	api.router.Handler(ctx)
	assert.Equal(t, 400, ctx.Response.StatusCode())

	status, _ = api.do("POST", "/api/v1/customer-events", map[string]any{
		"event_name": "x", "customer_id": "CUST0404", "product_id": "PROD0404", "event_date": "2024-04-01",
	})
	assert.Equal(t, 400, status)
}

func TestAPI_DerivedFigures(t *testing.T) {
	api := newTestAPI(t)
	api.seedJob()

	status, body := api.do("POST", "/api/v1/daily-events", map[string]any{
		"event_name": "Timber", "customer_id": "CUST0001", "expense_type": "Materials",
		"amount": 300, "event_date": "2024-04-02", "customer_event_no": "CE0001",
	})
	require.Equal(t, 201, status, body)
	assert.Equal(t, "Ravi", body["customer_name"])

	status, body = api.do("GET", "/api/v1/customer-events/CE0001/budget", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "Remaining", body["label"])
	assert.Equal(t, "Remaining: 880.00", body["text"])

	status, body = api.do("GET", "/api/v1/customer-events/CE0001/tax", nil)
	require.Equal(t, 200, status)
	assert.InDelta(t, 1000.0, body["base_amount"], 1e-6)

	status, body = api.do("GET", "/api/v1/daily-events?from=2024-04-01&to=2024-04-30", nil)
	require.Equal(t, 200, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = api.do("GET", "/api/v1/customer-events/CE0001/daily-events", nil)
	require.Equal(t, 200, status)
	assert.EqualValues(t, 1, body["total"])
	assert.InDelta(t, 300.0, body["total_amount"], 1e-9)

	status, _ = api.do("GET", "/api/v1/customer-events/CE0404/daily-events", nil)
	assert.Equal(t, 404, status)
}

func TestAPI_StatusConfirmGate(t *testing.T) {
	api := newTestAPI(t)
	api.seedJob()

	status, body := api.do("PUT", "/api/v1/customer-events/CE0001/status", map[string]any{"status": "completed"})
	assert.Equal(t, 409, status)
	assert.Equal(t, "no payment records found", body["error"])

	_, body = api.do("GET", "/api/v1/customer-events/CE0001", nil)
	assert.Equal(t, "active", body["status"])

	status, _ = api.do("PUT", "/api/v1/customer-events/CE0001/status?confirm=true", map[string]any{"status": "completed"})
	assert.Equal(t, 200, status)
	_, body = api.do("GET", "/api/v1/customer-events/CE0001", nil)
	assert.Equal(t, "completed", body["status"])

	status, _ = api.do("PUT", "/api/v1/customer-events/CE0001/status", map[string]any{"status": "active"})
	assert.Equal(t, 200, status)
}

func TestAPI_GenericUpdateLeavesStatus(t *testing.T) {
	api := newTestAPI(t)
	api.seedJob()

	status, body := api.do("PUT", "/api/v1/customer-events/CE0001", map[string]any{
		"status": "completed", "quantity": 2,
	})
	require.Equal(t, 200, status, body)
	assert.Equal(t, "active", body["status"])
	assert.EqualValues(t, 2, body["quantity"])

	_, body = api.do("GET", "/api/v1/customer-events/CE0001", nil)
	assert.Equal(t, "active", body["status"])
}

func TestAPI_PaymentsAndSummaries(t *testing.T) {
	api := newTestAPI(t)
	api.seedJob()

	status, body := api.do("POST", "/api/v1/payments", map[string]any{
		"customer_event_no": "CE0001", "paying_person_name": "Ravi", "payment_type": "cash",
		"amount": 1180, "status": "full", "payment_date": "2024-04-03",
	})
	require.Equal(t, 201, status, body)
	assert.Equal(t, "PAY000001", body["id"])

	status, _ = api.do("PUT", "/api/v1/customer-events/CE0001/status", map[string]any{"status": "completed"})
	assert.Equal(t, 200, status)

	status, body = api.do("GET", "/api/v1/payments/summaries", nil)
	require.Equal(t, 200, status)
	stats := body["statistics"].(map[string]any)
	assert.EqualValues(t, 1, stats["total"])
	assert.EqualValues(t, 100, stats["completion_percentage"])

	status, body = api.do("GET", "/api/v1/customer-events/CE0001/payments", nil)
	require.Equal(t, 200, status)
	assert.EqualValues(t, 1, body["total"])
}

func TestAPI_Lookups(t *testing.T) {
	api := newTestAPI(t)

	status, _ := api.do("POST", "/api/v1/expense-types", map[string]any{"name": "fuel"})
	assert.Equal(t, 409, status)

	status, body := api.do("POST", "/api/v1/payment-modes", map[string]any{"name": "Wallet", "type": "other"})
	require.Equal(t, 201, status, body)
	id := body["id"].(string)

	status, body = api.do("PUT", "/api/v1/payment-modes/"+id+"/active", map[string]any{"is_active": false})
	require.Equal(t, 200, status)
	assert.Equal(t, false, body["is_active"])

	_, all := api.do("GET", "/api/v1/payment-modes", nil)
	_, active := api.do("GET", "/api/v1/payment-modes?active=true", nil)
	assert.EqualValues(t, all["total"].(float64)-1, active["total"])
}

func TestAPI_ExportAndBackup(t *testing.T) {
	api := newTestAPI(t)
	api.seedJob()

	status, body := api.do("GET", "/api/v1/customer-events/CE0001/export", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "1000.00", body["amounts"].(map[string]any)["base"])

	status, body = api.do("POST", "/api/v1/customer-events/CE0001/export", nil)
	require.Equal(t, 202, status)
	assert.Equal(t, "1-0", body["queue_id"])
	assert.Len(t, api.publisher.published, 1)

	status, body = api.do("GET", "/api/v1/backup", nil)
	require.Equal(t, 200, status)
	tables := body["tables"].(map[string]any)
	assert.Len(t, tables["customer_events"], 1)

	status, _ = api.do("POST", "/api/v1/backup", body)
	assert.Equal(t, 200, status)

	status, _ = api.do("POST", "/api/v1/backup", map[string]any{"version": "1.0"})
	assert.Equal(t, 400, status)
}

func TestAPI_Health(t *testing.T) {
	api := newTestAPI(t)
	status, body := api.do("GET", "/health", nil)
	require.Equal(t, 200, status)
	assert.EqualValues(t, schema.CurrentVersion, body["schema_version"])
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, id string) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id string, p model.CustomerPatch) (*model.Customer, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerService) Search(ctx context.Context, name string) ([]*model.Customer, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func TestResource_ErrorMapping(t *testing.T) {
	svc := new(MockCustomerService)
	r := xhttp.CreateDefaultRouter()
	RegisterCustomerRoutes(r.Group(APIPrefix), svc)

	svc.On("List", mock.Anything).Return(nil, errors.New("database is locked"))
	svc.On("Delete", mock.Anything, "CUST0001").Return(services.ErrConflict)

	ctx := setupTestContext("GET", "/api/v1/customers", nil)
	r.Handler(ctx)
	assert.Equal(t, 500, ctx.Response.StatusCode())
	assert.NotContains(t, string(ctx.Response.Body()), "locked")

	ctx = setupTestContext("DELETE", "/api/v1/customers/CUST0001", nil)
	r.Handler(ctx)
	assert.Equal(t, 409, ctx.Response.StatusCode())

	svc.AssertExpectations(t)
}

func TestWriteServiceError_ExportUnavailable(t *testing.T) {
	ctx := setupTestContext("POST", "/api/v1/customer-events/CE0001/export", nil)
	writeServiceError(ctx, fmt.Errorf("publish: %w", services.ErrExportUnavailable))
	assert.Equal(t, 503, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "not configured")
}
