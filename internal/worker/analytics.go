package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/avtoelite/storefront/internal/kafka"
	"github.com/avtoelite/storefront/internal/logger"
	"github.com/avtoelite/storefront/internal/model"
	"github.com/avtoelite/storefront/internal/repository"
	"go.uber.org/zap"
)

// Consumer is the slice of the Kafka consumer the worker needs.
type Consumer interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, msgs ...kafka.Message) error
}

// Analytics consumes lead.created events from Kafka and lands them in
// ClickHouse in size/time-based batches. Offsets are committed only after
// their batch has been flushed, so delivery is at-least-once and the
// target table must tolerate duplicate rows (append-only reporting data).
type Analytics struct {
	Consumer Consumer
	Events   repository.CHLeadsRepository

	Workers   int           // goroutines decoding messages
	BatchSize int           // max buffered rows per flush
	BatchWait time.Duration // max time to wait before flush
}

func NewAnalytics(consumer Consumer, events repository.CHLeadsRepository) *Analytics {
	return &Analytics{
		Consumer:  consumer,
		Events:    events,
		Workers:   4,
		BatchSize: 200,
		BatchWait: 300 * time.Millisecond,
	}
}

// batchItem pairs a decoded row with its source message so the offset is
// acknowledged together with the flush. row is nil for skipped payloads.
type batchItem struct {
	msg kafka.Message
	row *repository.LeadEventRow
}

// Run starts the worker and blocks until ctx is cancelled. On shutdown
// the decoders drain first, then the writer makes a final flush attempt;
// anything it cannot land stays uncommitted and is redelivered.
func (w *Analytics) Run(ctx context.Context) error {
	if w.Workers <= 0 {
		w.Workers = 4
	}
	if w.BatchSize <= 0 {
		w.BatchSize = 200
	}
	if w.BatchWait <= 0 {
		w.BatchWait = 300 * time.Millisecond
	}

	items := make(chan batchItem, w.BatchSize*2)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		w.runBatchWriter(ctx, items)
	}()

	msgCh := make(chan kafka.Message, w.Workers*2)

	// fetcher
	go func() {
		defer close(msgCh)
		for {
			m, err := w.Consumer.Fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Log.Error("kafka fetch failed", zap.Error(err))
				time.Sleep(200 * time.Millisecond)
				continue
			}
			select {
			case msgCh <- m:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < w.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.runDecoder(msgCh, items)
		}()
	}

	// the writer only exits on channel close, so items must not be
	// closed while a decoder can still send
	wg.Wait()
	close(items)
	<-writerDone

	return nil
}

// runDecoder drains in until the fetcher closes it. Shutdown rides the
// channel close, so a fetched message is never dropped between decode
// and batch.
func (w *Analytics) runDecoder(in <-chan kafka.Message, out chan<- batchItem) {
	for m := range in {
		item := batchItem{msg: m}
		var event model.LeadEvent
		if err := json.Unmarshal(m.Value, &event); err != nil || event.ID == "" {
			// poison message: no row, but the offset still rides the
			// batch so the partition can advance
			logger.Log.Warn("bad lead event payload", zap.Error(err))
		} else {
			item.row = &repository.LeadEventRow{
				ID:           event.ID,
				Category:     event.Category.String(),
				PhoneCountry: event.PhoneCountry,
				Brand:        event.Brand,
				Model:        event.Model,
				Price:        event.Price,
				CreatedAt:    event.CreatedAt,
			}
		}
		out <- item
	}
}

func (w *Analytics) runBatchWriter(ctx context.Context, in <-chan batchItem) {
	tick := time.NewTicker(w.BatchWait)
	defer tick.Stop()

	rows := make([]repository.LeadEventRow, 0, w.BatchSize)
	msgs := make([]kafka.Message, 0, w.BatchSize)

	flush := func() {
		if len(msgs) == 0 {
			return
		}
		if len(rows) > 0 {
			if err := w.Events.InsertEvents(ctx, rows); err != nil {
				// keep the batch; offsets stay uncommitted until the
				// rows land
				logger.Log.Error("clickhouse insert failed",
					zap.Int("rows", len(rows)), zap.Error(err))
				return
			}
			logger.Log.Info("lead events flushed", zap.Int("rows", len(rows)))
			rows = rows[:0]
		}
		if err := w.Consumer.Commit(ctx, msgs...); err != nil {
			// rows already landed; keep only the offsets for retry so a
			// second flush does not re-insert them
			logger.Log.Error("kafka commit failed", zap.Error(err))
			return
		}
		msgs = msgs[:0]
	}

	for {
		select {
		case item, ok := <-in:
			if !ok {
				flush()
				return
			}
			msgs = append(msgs, item.msg)
			if item.row != nil {
				rows = append(rows, *item.row)
			}
			if len(msgs) >= w.BatchSize {
				flush()
			}
		case <-tick.C:
			flush()
		}
	}
}
