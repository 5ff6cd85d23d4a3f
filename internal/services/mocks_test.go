package services

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/export"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockRepository[T any, P any] struct {
	mock.Mock
}

func (m *MockRepository[T, P]) Create(ctx context.Context, rec *T) (bool, error) {
	args := m.Called(ctx, rec)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository[T, P]) GetAll(ctx context.Context) ([]*T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*T), args.Error(1)
}

func (m *MockRepository[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T, P]) Update(ctx context.Context, id string, p P) (int64, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository[T, P]) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository[T, P]) GenerateID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockCustomerRepository struct {
	MockRepository[model.Customer, model.CustomerPatch]
}

func (m *MockCustomerRepository) Search(ctx context.Context, name string) ([]*model.Customer, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]*model.Customer), args.Error(1)
}

type MockProductRepository struct {
	MockRepository[model.Product, model.ProductPatch]
}

func (m *MockProductRepository) Search(ctx context.Context, name string) ([]*model.Product, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]*model.Product), args.Error(1)
}

type MockCustomerEventRepository struct {
	MockRepository[model.CustomerEvent, model.CustomerEventPatch]
}

func (m *MockCustomerEventRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.CustomerEvent, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*model.CustomerEvent), args.Error(1)
}

func (m *MockCustomerEventRepository) ListByStatus(ctx context.Context, status model.EventStatus) ([]*model.CustomerEvent, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*model.CustomerEvent), args.Error(1)
}

func (m *MockCustomerEventRepository) Search(ctx context.Context, name string) ([]*model.CustomerEvent, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]*model.CustomerEvent), args.Error(1)
}

func (m *MockCustomerEventRepository) UpdateStatus(ctx context.Context, eventNo string, status model.EventStatus) (int64, error) {
	args := m.Called(ctx, eventNo, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockDailyEventRepository struct {
	MockRepository[model.DailyEvent, model.DailyEventPatch]
}

func (m *MockDailyEventRepository) ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.DailyEvent, error) {
	args := m.Called(ctx, eventNo)
	return args.Get(0).([]*model.DailyEvent), args.Error(1)
}

func (m *MockDailyEventRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.DailyEvent, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*model.DailyEvent), args.Error(1)
}

func (m *MockDailyEventRepository) ListByDateRange(ctx context.Context, from, to model.Date) ([]*model.DailyEvent, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*model.DailyEvent), args.Error(1)
}

func (m *MockDailyEventRepository) Search(ctx context.Context, q string) ([]*model.DailyEvent, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*model.DailyEvent), args.Error(1)
}

func (m *MockDailyEventRepository) AmountsByCustomerEvent(ctx context.Context, eventNo string) ([]float64, error) {
	args := m.Called(ctx, eventNo)
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockDailyEventRepository) SumByCustomerEvent(ctx context.Context, eventNo string) (float64, error) {
	args := m.Called(ctx, eventNo)
	return args.Get(0).(float64), args.Error(1)
}

type MockPaymentRepository struct {
	MockRepository[model.Payment, model.PaymentPatch]
}

func (m *MockPaymentRepository) ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.Payment, error) {
	args := m.Called(ctx, eventNo)
	return args.Get(0).([]*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockExpenseTypeRepository struct {
	MockRepository[model.ExpenseType, model.ExpenseTypePatch]
}

func (m *MockExpenseTypeRepository) ListActive(ctx context.Context) ([]*model.ExpenseType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.ExpenseType), args.Error(1)
}

func (m *MockExpenseTypeRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockExpenseTypeRepository) SetActive(ctx context.Context, id string, active bool) (int64, error) {
	args := m.Called(ctx, id, active)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, doc *export.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}
