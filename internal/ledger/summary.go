package ledger

import (
	"math"
	"sort"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type SummaryStatus string

const (
	SummaryNotStarted SummaryStatus = "not_started"
	SummaryPartial    SummaryStatus = "partial"
	SummaryCompleted  SummaryStatus = "completed"
	SummaryOverpaid   SummaryStatus = "overpaid"
)

// Summary is the payment position of one job.
type Summary struct {
	EventNo      string            `json:"event_no"`
	CustomerName string            `json:"customer_name"`
	EventName    string            `json:"event_name"`
	AgreedAmount float64           `json:"agreed_amount"`
	EventStatus  model.EventStatus `json:"event_status"`
	Payments     []*model.Payment  `json:"payments"`
}

func (s *Summary) TotalPaid() float64 {
	total := 0.0
	for _, p := range s.Payments {
		total += p.Amount
	}
	return total
}

// Remaining is negative when the job was overpaid.
func (s *Summary) Remaining() float64 {
	return s.AgreedAmount - s.TotalPaid()
}

func (s *Summary) Status() SummaryStatus {
	paid := s.TotalPaid()
	switch {
	case len(s.Payments) == 0 || paid <= 0:
		return SummaryNotStarted
	case approxEqual(paid, s.AgreedAmount):
		return SummaryCompleted
	case paid > s.AgreedAmount:
		return SummaryOverpaid
	default:
		return SummaryPartial
	}
}

// latest is the most recent payment date, or the zero date.
func (s *Summary) latest() model.Date {
	var d model.Date
	for _, p := range s.Payments {
		if p.PaymentDate.After(d.Time) {
			d = p.PaymentDate
		}
	}
	return d
}

// BuildSummaries groups payments under their jobs. Payments whose job is not
// in events are ignored. Jobs without payments are kept only while active.
// The result is ordered by latest payment date, newest first, with unpaid
// jobs last and ties broken by event number.
func BuildSummaries(events []*model.CustomerEvent, payments []*model.Payment) []*Summary {
	byEvent := make(map[string][]*model.Payment, len(events))
	for _, p := range payments {
		byEvent[p.CustomerEventNo] = append(byEvent[p.CustomerEventNo], p)
	}

	summaries := make([]*Summary, 0, len(events))
	for _, e := range events {
		paid := byEvent[e.EventNo]
		if len(paid) == 0 && e.Status != model.EventStatusActive {
			continue
		}
		sort.SliceStable(paid, func(i, j int) bool {
			return paid[i].PaymentDate.After(paid[j].PaymentDate.Time)
		})
		summaries = append(summaries, &Summary{
			EventNo:      e.EventNo,
			CustomerName: e.CustomerName,
			EventName:    e.Name,
			AgreedAmount: e.AgreedAmount,
			EventStatus:  e.Status,
			Payments:     paid,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		aPaid, bPaid := len(a.Payments) > 0, len(b.Payments) > 0
		if aPaid != bPaid {
			return aPaid
		}
		if aPaid {
			la, lb := a.latest(), b.latest()
			if !la.Equal(lb.Time) {
				return la.After(lb.Time)
			}
		}
		return a.EventNo < b.EventNo
	})
	return summaries
}

type Statistics struct {
	Total                int                   `json:"total"`
	Counts               map[SummaryStatus]int `json:"counts"`
	TotalAgreed          float64               `json:"total_agreed"`
	TotalPaid            float64               `json:"total_paid"`
	TotalRemaining       float64               `json:"total_remaining"`
	CompletionPercentage float64               `json:"completion_percentage"`
}

// Summarize aggregates summaries. Overpaid remainders do not reduce
// TotalRemaining.
func Summarize(summaries []*Summary) Statistics {
	stats := Statistics{
		Total: len(summaries),
		Counts: map[SummaryStatus]int{
			SummaryNotStarted: 0,
			SummaryPartial:    0,
			SummaryCompleted:  0,
			SummaryOverpaid:   0,
		},
	}
	for _, s := range summaries {
		stats.Counts[s.Status()]++
		stats.TotalAgreed += s.AgreedAmount
		stats.TotalPaid += s.TotalPaid()
		stats.TotalRemaining += math.Max(s.Remaining(), 0)
	}
	if stats.TotalAgreed > 0 {
		stats.CompletionPercentage = stats.TotalPaid / stats.TotalAgreed * 100
	}
	return stats
}
