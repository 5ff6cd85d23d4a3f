package services

import (
	"context"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/export"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type DocumentPublisher interface {
	Publish(ctx context.Context, doc *export.Document) (string, error)
}

// ExportService assembles the receipt document for a job and hands it to the
// external renderer through the export queue.
type ExportService struct {
	events    CustomerEventReader
	customers CustomerReader
	products  ProductReader
	expenses  ExpenseReader
	payments  PaymentReader
	publisher DocumentPublisher
	now       func() time.Time
}

func NewExportService(events CustomerEventReader, customers CustomerReader, products ProductReader,
	expenses ExpenseReader, payments PaymentReader, publisher DocumentPublisher) *ExportService {
	return &ExportService{
		events:    events,
		customers: customers,
		products:  products,
		expenses:  expenses,
		payments:  payments,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *ExportService) Prepare(ctx context.Context, eventNo string) (*export.Document, error) {
	event, err := s.events.GetByID(ctx, eventNo)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, notFound("customer event", eventNo)
	}

	customer, err := s.customers.GetByID(ctx, event.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		// renderer still needs a name; fall back to the snapshot on the job.
		customer = &model.Customer{ID: event.CustomerID, Name: event.CustomerName}
	}
	product, err := s.products.GetByID(ctx, event.ProductID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByCustomerEvent(ctx, eventNo)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByCustomerEvent(ctx, eventNo)
	if err != nil {
		return nil, err
	}

	return export.Build(event, customer, product, expenses, payments, s.now()), nil
}

// Publish prepares the document and queues it, returning the queue entry id.
func (s *ExportService) Publish(ctx context.Context, eventNo string) (string, *export.Document, error) {
	if s.publisher == nil {
		return "", nil, ErrExportUnavailable
	}
	doc, err := s.Prepare(ctx, eventNo)
	if err != nil {
		return "", nil, err
	}
	id, err := s.publisher.Publish(ctx, doc)
	if err != nil {
		return "", nil, err
	}
	return id, doc, nil
}
