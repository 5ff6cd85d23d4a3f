package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Fcatilizer/bookkeep-sub001/internal/ledger"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type CustomerEventRepository interface {
	Repository[model.CustomerEvent, model.CustomerEventPatch]
	ListByCustomer(ctx context.Context, customerID string) ([]*model.CustomerEvent, error)
	ListByStatus(ctx context.Context, status model.EventStatus) ([]*model.CustomerEvent, error)
	Search(ctx context.Context, name string) ([]*model.CustomerEvent, error)
	UpdateStatus(ctx context.Context, eventNo string, status model.EventStatus) (int64, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id string) (*model.Customer, error)
}

type ProductReader interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

type ExpenseReader interface {
	AmountsByCustomerEvent(ctx context.Context, eventNo string) ([]float64, error)
	ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.DailyEvent, error)
}

type PaymentReader interface {
	ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.Payment, error)
}

// CustomerEventService manages jobs and derives their budget, tax split and
// payment position.
type CustomerEventService struct {
	*CRUD[model.CustomerEvent, model.CustomerEventPatch, *model.CustomerEvent]
	events    CustomerEventRepository
	customers CustomerReader
	products  ProductReader
	expenses  ExpenseReader
	payments  PaymentReader
}

func NewCustomerEventService(events CustomerEventRepository, customers CustomerReader, products ProductReader,
	expenses ExpenseReader, payments PaymentReader) *CustomerEventService {
	return &CustomerEventService{
		CRUD:      NewCRUD[model.CustomerEvent, model.CustomerEventPatch]("customer event", events),
		events:    events,
		customers: customers,
		products:  products,
		expenses:  expenses,
		payments:  payments,
	}
}

// Create snapshots the customer's current name onto the job.
func (s *CustomerEventService) Create(ctx context.Context, e *model.CustomerEvent) (*model.CustomerEvent, error) {
	if e.Status == "" {
		e.Status = model.EventStatusActive
	}
	if e.Quantity == 0 {
		e.Quantity = 1
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.customers.GetByID(ctx, e.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, unknownRef("customer", e.CustomerID)
	}
	product, err := s.products.GetByID(ctx, e.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, unknownRef("product", e.ProductID)
	}

	e.CustomerName = customer.Name
	return s.CRUD.Create(ctx, e)
}

func (s *CustomerEventService) ListByCustomer(ctx context.Context, customerID string) ([]*model.CustomerEvent, error) {
	return s.events.ListByCustomer(ctx, customerID)
}

func (s *CustomerEventService) ListByStatus(ctx context.Context, status model.EventStatus) ([]*model.CustomerEvent, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown event status %q", model.ErrValidation, status)
	}
	return s.events.ListByStatus(ctx, status)
}

func (s *CustomerEventService) Search(ctx context.Context, name string) ([]*model.CustomerEvent, error) {
	return s.events.Search(ctx, strings.TrimSpace(name))
}

func (s *CustomerEventService) Budget(ctx context.Context, eventNo string) (ledger.Budget, error) {
	e, err := s.Get(ctx, eventNo)
	if err != nil {
		return ledger.Budget{}, err
	}
	amounts, err := s.expenses.AmountsByCustomerEvent(ctx, eventNo)
	if err != nil {
		return ledger.Budget{}, err
	}
	return ledger.ComputeBudget(e.AgreedAmount, amounts), nil
}

// Tax splits the agreed amount using the job's product rate. A product that
// no longer resolves is taxed at zero.
func (s *CustomerEventService) Tax(ctx context.Context, eventNo string) (ledger.TaxBreakdown, error) {
	e, err := s.Get(ctx, eventNo)
	if err != nil {
		return ledger.TaxBreakdown{}, err
	}
	p, err := s.products.GetByID(ctx, e.ProductID)
	if err != nil {
		return ledger.TaxBreakdown{}, err
	}
	rate := 0.0
	if p != nil {
		rate = p.TaxRate
	}
	return ledger.SplitTax(e.AgreedAmount, rate), nil
}

func (s *CustomerEventService) ValidatePayment(ctx context.Context, eventNo string) (ledger.PaymentValidation, error) {
	e, err := s.Get(ctx, eventNo)
	if err != nil {
		return ledger.PaymentValidation{}, err
	}
	return s.validate(ctx, e)
}

func (s *CustomerEventService) validate(ctx context.Context, e *model.CustomerEvent) (ledger.PaymentValidation, error) {
	payments, err := s.payments.ListByCustomerEvent(ctx, e.EventNo)
	if err != nil {
		return ledger.PaymentValidation{}, err
	}
	expenses, err := s.expenses.AmountsByCustomerEvent(ctx, e.EventNo)
	if err != nil {
		return ledger.PaymentValidation{}, err
	}
	return ledger.ValidatePayment(e.AgreedAmount, paymentAmounts(payments), expenses), nil
}

// UpdateStatus always applies the new status. The validation is returned so
// the caller can warn about closing a job that is not settled.
func (s *CustomerEventService) UpdateStatus(ctx context.Context, eventNo string, status model.EventStatus) (ledger.PaymentValidation, error) {
	if !status.Valid() {
		return ledger.PaymentValidation{}, fmt.Errorf("%w: unknown event status %q", model.ErrValidation, status)
	}
	e, err := s.Get(ctx, eventNo)
	if err != nil {
		return ledger.PaymentValidation{}, err
	}
	v, err := s.validate(ctx, e)
	if err != nil {
		return ledger.PaymentValidation{}, err
	}
	if _, err := s.events.UpdateStatus(ctx, eventNo, status); err != nil {
		return ledger.PaymentValidation{}, fmt.Errorf("update status: %w", err)
	}
	return v, nil
}

// CheckStatus reports the validation a status change to status would be
// made against, without applying it.
func (s *CustomerEventService) CheckStatus(ctx context.Context, eventNo string, status model.EventStatus) (ledger.PaymentValidation, error) {
	if !status.Valid() {
		return ledger.PaymentValidation{}, fmt.Errorf("%w: unknown event status %q", model.ErrValidation, status)
	}
	return s.ValidatePayment(ctx, eventNo)
}

func paymentAmounts(payments []*model.Payment) []float64 {
	out := make([]float64, 0, len(payments))
	for _, p := range payments {
		out = append(out, p.Amount)
	}
	return out
}
