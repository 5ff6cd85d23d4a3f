package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type DailyEventRepository interface {
	Repository[model.DailyEvent, model.DailyEventPatch]
	ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.DailyEvent, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*model.DailyEvent, error)
	ListByDateRange(ctx context.Context, from, to model.Date) ([]*model.DailyEvent, error)
	Search(ctx context.Context, q string) ([]*model.DailyEvent, error)
	SumByCustomerEvent(ctx context.Context, eventNo string) (float64, error)
}

type CustomerEventReader interface {
	GetByID(ctx context.Context, eventNo string) (*model.CustomerEvent, error)
}

type DailyEventService struct {
	*CRUD[model.DailyEvent, model.DailyEventPatch, *model.DailyEvent]
	expenses  DailyEventRepository
	customers CustomerReader
	events    CustomerEventReader
}

func NewDailyEventService(expenses DailyEventRepository, customers CustomerReader, events CustomerEventReader) *DailyEventService {
	return &DailyEventService{
		CRUD:      NewCRUD[model.DailyEvent, model.DailyEventPatch]("daily event", expenses),
		expenses:  expenses,
		customers: customers,
		events:    events,
	}
}

// Create copies the customer's name onto the expense and refuses a job link
// to another customer's job.
func (s *DailyEventService) Create(ctx context.Context, e *model.DailyEvent) (*model.DailyEvent, error) {
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
	if e.ProductID != nil && strings.TrimSpace(*e.ProductID) == "" {
		e.ProductID = nil
	}
	if e.CustomerEventNo != nil && strings.TrimSpace(*e.CustomerEventNo) == "" {
		e.CustomerEventNo = nil
	}
	if e.CustomerEventNo != nil {
		if err := s.checkJob(ctx, *e.CustomerEventNo, e.CustomerID); err != nil {
			return nil, err
		}
	}

	e.CustomerName = customer.Name
	return s.CRUD.Create(ctx, e)
}

func (s *DailyEventService) Update(ctx context.Context, id string, p model.DailyEventPatch) (*model.DailyEvent, error) {
	if p.CustomerEventNo != nil && *p.CustomerEventNo != "" {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.checkJob(ctx, *p.CustomerEventNo, current.CustomerID); err != nil {
			return nil, err
		}
	}
	return s.CRUD.Update(ctx, id, p)
}

func (s *DailyEventService) checkJob(ctx context.Context, eventNo, customerID string) error {
	job, err := s.events.GetByID(ctx, eventNo)
	if err != nil {
		return err
	}
	if job == nil {
		return unknownRef("customer event", eventNo)
	}
	if job.CustomerID != customerID {
		return fmt.Errorf("%w: customer event %s belongs to customer %s", model.ErrValidation, eventNo, job.CustomerID)
	}
	return nil
}

func (s *DailyEventService) ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.DailyEvent, error) {
	return s.expenses.ListByCustomerEvent(ctx, eventNo)
}

// TotalByCustomerEvent sums the expenses booked against a job; unknown
// jobs are not found.
func (s *DailyEventService) TotalByCustomerEvent(ctx context.Context, eventNo string) (float64, error) {
	event, err := s.events.GetByID(ctx, eventNo)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, notFound("customer event", eventNo)
	}
	return s.expenses.SumByCustomerEvent(ctx, eventNo)
}

func (s *DailyEventService) ListByCustomer(ctx context.Context, customerID string) ([]*model.DailyEvent, error) {
	return s.expenses.ListByCustomer(ctx, customerID)
}

// ListByDateRange is inclusive on both ends.
func (s *DailyEventService) ListByDateRange(ctx context.Context, from, to model.Date) ([]*model.DailyEvent, error) {
	if to.Before(from.Time) {
		return nil, fmt.Errorf("%w: range ends before it starts", model.ErrValidation)
	}
	return s.expenses.ListByDateRange(ctx, from, to)
}

func (s *DailyEventService) Search(ctx context.Context, q string) ([]*model.DailyEvent, error) {
	return s.expenses.Search(ctx, strings.TrimSpace(q))
}
