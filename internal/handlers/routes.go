package handlers

import (
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/internal/services"
	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
)

const APIPrefix = "/api/v1"

// Services bundles everything the API serves.
type Services struct {
	Health         HealthService
	Customers      *services.CustomerService
	Products       *services.ProductService
	CustomerEvents *services.CustomerEventService
	DailyEvents    *services.DailyEventService
	Payments       *services.PaymentService
	ExpenseTypes   *services.ExpenseTypeService
	PaymentModes   *services.PaymentModeService
	Exports        *services.ExportService
	Backup         BackupService
}

func RegisterRoutes(r *xhttp.Router, s Services) {
	RegisterHealthRoutes(r, NewHealthHandler(s.Health))

	api := r.Group(APIPrefix)
	RegisterCustomerRoutes(api, s.Customers)
	RegisterProductRoutes(api, s.Products)
	RegisterCustomerEventRoutes(api, NewCustomerEventHandler(s.CustomerEvents, s.Exports))
	RegisterDailyEventRoutes(api, s.DailyEvents)
	RegisterPaymentRoutes(api, s.Payments)
	RegisterLookupRoutes[model.ExpenseType, model.ExpenseTypePatch](api, "/expense-types", s.ExpenseTypes)
	RegisterLookupRoutes[model.PaymentMode, model.PaymentModePatch](api, "/payment-modes", s.PaymentModes)
	RegisterBackupRoutes(api, NewBackupHandler(s.Backup))
}
