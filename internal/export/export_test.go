package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/ledger"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/internal/queue"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	event := &model.CustomerEvent{
		EventNo: "CE0001", Name: "Stage build", CustomerID: "CUST0001", ProductID: "PROD0001",
		CustomerName: "Ravi", Quantity: 1, AgreedAmount: 1180,
		EventDate: model.NewDate(2024, 4, 1), Status: model.EventStatusActive,
	}
	expenses := []*model.DailyEvent{
		{EventID: "EVT0001", Name: "Timber", ExpenseType: "Materials", Amount: 300, Date: model.NewDate(2024, 4, 2)},
		{EventID: "EVT0002", Name: "Labour", ExpenseType: "Labour", Amount: 980, Date: model.NewDate(2024, 4, 3),
			Description: model.Ptr("two days")},
	}
	payments := []*model.Payment{{ID: "PAY000001", Amount: 1180}}
	return Build(event, &model.Customer{ID: "CUST0001", Name: "Ravi"},
		&model.Product{ID: "PROD0001", Name: "Stage", TaxRate: 18}, expenses, payments,
		time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC))
}

func TestBuild(t *testing.T) {
	doc := sampleDocument()

	assert.Equal(t, "1000.00", doc.Amounts.Base)
	assert.Equal(t, "180.00", doc.Amounts.Tax)
	assert.Equal(t, "18.00", doc.Amounts.TaxRate)
	assert.Equal(t, "1280.00", doc.Amounts.Spent)
	assert.Equal(t, ledger.LabelOverBudget, doc.Amounts.BudgetLabel)
	assert.Equal(t, "100.00", doc.Amounts.Remaining)
	assert.Equal(t, "total expenses (1280.00) exceed agreed amount (1180.00)", doc.Validation.Message)
	require.Len(t, doc.Expenses, 2)
	assert.Equal(t, "two days", doc.Expenses[1].Description)
}

func TestBuild_WithoutProduct(t *testing.T) {
	event := &model.CustomerEvent{EventNo: "CE0002", AgreedAmount: 500}
	doc := Build(event, nil, nil, nil, nil, time.Now())
	assert.Equal(t, 500.0, doc.Tax.BaseAmount)
	assert.Zero(t, doc.Tax.TaxAmount)
	assert.Equal(t, ledger.MsgNoPayments, doc.Validation.Message)
}

func TestDirSink(t *testing.T) {
	dir := t.TempDir()
	path, err := DirSink{Dir: filepath.Join(dir, "out")}.Write(context.Background(), sampleDocument())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "CE0001", back.Event.EventNo)
	assert.Equal(t, "2024-04-01", back.Event.EventDate.String())
}

type recordingSink struct {
	docs chan *Document
}

func (s recordingSink) Write(_ context.Context, doc *Document) (string, error) {
	s.docs <- doc
	return "memory", nil
}

func TestPublisherAndWorker(t *testing.T) {
	mr := miniredis.RunT(t)
	adapter, err := redis.NewRedisAdapter(t.Name(), "", &goredis.UniversalOptions{Addrs: []string{mr.Addr()}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Close() })

	q, err := queue.NewQueue(adapter, queue.QueueConfig{Name: "exports", PollInterval: 20 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err = NewPublisher(q).Publish(ctx, sampleDocument())
	require.NoError(t, err)

	head, err := q.Peek(ctx, 1)
	require.NoError(t, err)
	require.Len(t, head, 1)
	assert.Equal(t, "CE0001", head[0].Metadata["event_no"])

	sink := recordingSink{docs: make(chan *Document, 1)}
	done := make(chan error, 1)
	go func() { done <- NewWorker(q, sink).Run(ctx) }()

	select {
	case doc := <-sink.docs:
		assert.Equal(t, "CE0001", doc.Event.EventNo)
		assert.Equal(t, "1000.00", doc.Amounts.Base)
	case <-time.After(2 * time.Second):
		t.Fatal("document not delivered")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWorker_DropsUndecodable(t *testing.T) {
	w := NewWorker(nil, recordingSink{docs: make(chan *Document, 1)})
	assert.NoError(t, w.Handle(context.Background(), &queue.Message{ID: "1-0", Data: []byte("not json")}))
	assert.NoError(t, w.Handle(context.Background(), &queue.Message{ID: "2-0", Data: []byte(`{}`)}))
}
