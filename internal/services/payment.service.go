package services

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/ledger"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/prom"
)

type PaymentRepository interface {
	Repository[model.Payment, model.PaymentPatch]
	ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.Payment, error)
	DeleteOrphans(ctx context.Context) (int64, error)
}

type CustomerEventLister interface {
	GetByID(ctx context.Context, eventNo string) (*model.CustomerEvent, error)
	GetAll(ctx context.Context) ([]*model.CustomerEvent, error)
}

type PaymentService struct {
	*CRUD[model.Payment, model.PaymentPatch, *model.Payment]
	payments PaymentRepository
	events   CustomerEventLister
}

func NewPaymentService(payments PaymentRepository, events CustomerEventLister) *PaymentService {
	return &PaymentService{
		CRUD:     NewCRUD[model.Payment, model.PaymentPatch]("payment", payments),
		payments: payments,
		events:   events,
	}
}

// Create records a payment against an existing job. The status is taken as
// entered; it is not derived from the amounts.
func (s *PaymentService) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	if p.Status == "" {
		p.Status = model.PaymentStatusPending
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = model.Today()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	job, err := s.events.GetByID(ctx, p.CustomerEventNo)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, unknownRef("customer event", p.CustomerEventNo)
	}
	return s.CRUD.Create(ctx, p)
}

func (s *PaymentService) ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.Payment, error) {
	return s.payments.ListByCustomerEvent(ctx, eventNo)
}

// SummaryView flattens a summary's derived figures for callers that only
// read fields.
type SummaryView struct {
	*ledger.Summary
	TotalPaid float64              `json:"total_paid"`
	Remaining float64              `json:"remaining"`
	Status    ledger.SummaryStatus `json:"payment_status"`
}

type PaymentSummaries struct {
	Summaries  []SummaryView     `json:"summaries"`
	Statistics ledger.Statistics `json:"statistics"`
}

// Summaries purges payments left behind by deleted jobs, then reports the
// payment position of every job.
func (s *PaymentService) Summaries(ctx context.Context) (*PaymentSummaries, error) {
	removed, err := s.payments.DeleteOrphans(ctx)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		logger.Warn("removed orphaned payments", "count", removed)
	}

	events, err := s.events.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := ledger.BuildSummaries(events, payments)
	stats := ledger.Summarize(summaries)

	views := make([]SummaryView, 0, len(summaries))
	for _, sm := range summaries {
		views = append(views, SummaryView{
			Summary:   sm,
			TotalPaid: sm.TotalPaid(),
			Remaining: sm.Remaining(),
			Status:    sm.Status(),
		})
	}

	counts := make(map[string]int, len(stats.Counts))
	for status, n := range stats.Counts {
		counts[string(status)] = n
	}
	prom.SetPaymentSummaries(counts)

	return &PaymentSummaries{Summaries: views, Statistics: stats}, nil
}
