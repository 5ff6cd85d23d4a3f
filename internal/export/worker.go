package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/queue"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/prom"
)

var ErrEmptyDocument = errors.New("export document has no event")

// Worker moves documents from the export queue into a Sink.
type Worker struct {
	queue *queue.Queue
	sink  Sink
	log   *logger.ZapLogger
}

func NewWorker(q *queue.Queue, sink Sink) *Worker {
	return &Worker{
		queue: q,
		sink:  sink,
		log:   logger.Named("export"),
	}
}

// Handle decodes one queued document and writes it.
func (w *Worker) Handle(ctx context.Context, msg *queue.Message) error {
	var doc Document
	if err := msg.Decode(&doc); err != nil {
		// a payload that does not decode will never succeed; drop it.
		w.log.Error("dropping undecodable export", "id", msg.ID, "error", err)
		return nil
	}
	if doc.Event == nil {
		w.log.Error("dropping export", "id", msg.ID, "error", ErrEmptyDocument)
		return nil
	}

	path, err := w.sink.Write(ctx, &doc)
	if err != nil {
		return fmt.Errorf("write export %s: %w", doc.Event.EventNo, err)
	}
	w.log.Info("export written", "event_no", doc.Event.EventNo, "path", path)
	return nil
}

// Run consumes until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.queue.Consume(w.Handle); err != nil {
		return err
	}
	w.log.Info("export worker started", "queue", w.queue.Name())
	<-ctx.Done()
	return w.queue.Stop(10 * time.Second)
}

// Publisher is the producing side used by the services.
type Publisher struct {
	queue *queue.Queue
}

func NewPublisher(q *queue.Queue) *Publisher {
	return &Publisher{queue: q}
}

func (p *Publisher) Publish(ctx context.Context, doc *Document) (string, error) {
	id, err := p.queue.PublishJSON(ctx, doc, map[string]string{"event_no": doc.Event.EventNo})
	if err != nil {
		prom.IncExportPublished(prom.ResultFailed)
		return "", err
	}
	prom.IncExportPublished(prom.ResultOK)
	return id, nil
}
