package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avtoelite/storefront/internal/kafka"
	"github.com/avtoelite/storefront/internal/model"
	"github.com/avtoelite/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callOrder records the interleaving of inserts and commits.
type callOrder struct {
	mu    sync.Mutex
	calls []string
}

func (o *callOrder) note(s string) {
	o.mu.Lock()
	o.calls = append(o.calls, s)
	o.mu.Unlock()
}

func (o *callOrder) list() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.calls...)
}

type fakeConsumer struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	order     *callOrder
	drained   chan struct{} // closed when Fetch first sees an empty queue
}

func newFakeConsumer(order *callOrder, msgs ...kafka.Message) *fakeConsumer {
	return &fakeConsumer{queue: msgs, order: order, drained: make(chan struct{})}
}

func (f *fakeConsumer) Fetch(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		m := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return m, nil
	}
	select {
	case <-f.drained:
	default:
		close(f.drained)
	}
	f.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeConsumer) Commit(ctx context.Context, msgs ...kafka.Message) error {
	f.order.note("commit")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeConsumer) committedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.committed)
}

type fakeEvents struct {
	mu      sync.Mutex
	batches [][]repository.LeadEventRow
	fail    int // first N InsertEvents calls error
	order   *callOrder
}

func (f *fakeEvents) InsertEvents(ctx context.Context, rows []repository.LeadEventRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail > 0 {
		f.fail--
		return errors.New("clickhouse down")
	}
	f.order.note("insert")
	f.batches = append(f.batches, append([]repository.LeadEventRow(nil), rows...))
	return nil
}

func (f *fakeEvents) Stats(ctx context.Context) ([]repository.CategoryCount, error) {
	return nil, nil
}

func (f *fakeEvents) List(ctx context.Context, category model.LeadCategory, limit, offset int) ([]repository.LeadEventRow, error) {
	return nil, nil
}

func (f *fakeEvents) allRows() []repository.LeadEventRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.LeadEventRow
	for _, b := range f.batches {
		out = append(out, b...)
	}
	return out
}

func eventMsg(t *testing.T, id string) kafka.Message {
	t.Helper()
	b, err := json.Marshal(model.LeadEvent{
		ID:           id,
		Category:     model.LeadSell,
		PhoneCountry: "RU",
		Brand:        "BMW",
		Model:        "M5",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	})
	require.NoError(t, err)
	return kafka.Message{Value: b}
}

func newTestAnalytics(consumer *fakeConsumer, events *fakeEvents) *Analytics {
	w := NewAnalytics(consumer, events)
	w.Workers = 1
	w.BatchSize = 2
	w.BatchWait = 10 * time.Millisecond
	return w
}

func startAnalytics(t *testing.T, w *Analytics) (context.CancelFunc, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()
	wait := func() {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop")
		}
	}
	return cancel, wait
}

// A commit must never get ahead of the insert that made its rows durable.
func assertCommitsAfterInserts(t *testing.T, calls []string) {
	t.Helper()
	inserts, commits := 0, 0
	for _, c := range calls {
		switch c {
		case "insert":
			inserts++
		case "commit":
			commits++
		}
		require.LessOrEqual(t, commits, inserts, "commit before insert in %v", calls)
	}
}

func TestAnalyticsCommitsAfterFlush(t *testing.T) {
	order := &callOrder{}
	consumer := newFakeConsumer(order, eventMsg(t, "01A"), eventMsg(t, "01B"))
	events := &fakeEvents{order: order}

	cancel, wait := startAnalytics(t, newTestAnalytics(consumer, events))

	require.Eventually(t, func() bool {
		return consumer.committedCount() == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	wait()

	assertCommitsAfterInserts(t, order.list())
	assert.Len(t, events.allRows(), 2)
}

func TestAnalyticsSkipsBadPayload(t *testing.T) {
	order := &callOrder{}
	consumer := newFakeConsumer(order, kafka.Message{Value: []byte("{not json")}, eventMsg(t, "01C"))
	events := &fakeEvents{order: order}

	cancel, wait := startAnalytics(t, newTestAnalytics(consumer, events))

	// both offsets advance, only the valid event lands
	require.Eventually(t, func() bool {
		return consumer.committedCount() == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	wait()

	rows := events.allRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "01C", rows[0].ID)
	assert.Equal(t, "sell", rows[0].Category)
}

func TestAnalyticsHoldsOffsetsUntilInsertSucceeds(t *testing.T) {
	order := &callOrder{}
	consumer := newFakeConsumer(order, eventMsg(t, "01D"))
	events := &fakeEvents{fail: 1, order: order}

	w := newTestAnalytics(consumer, events)
	w.BatchSize = 1
	cancel, wait := startAnalytics(t, w)

	// first insert fails; the batch is retried on the next tick and only
	// then committed
	require.Eventually(t, func() bool {
		return consumer.committedCount() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	wait()

	assertCommitsAfterInserts(t, order.list())
	require.Len(t, events.allRows(), 1)
	assert.Equal(t, "01D", events.allRows()[0].ID)
}

func TestAnalyticsShutdownDrainsPendingRows(t *testing.T) {
	order := &callOrder{}
	consumer := newFakeConsumer(order, eventMsg(t, "01E"), eventMsg(t, "01F"), eventMsg(t, "01G"))
	events := &fakeEvents{order: order}

	// batch thresholds never reached while running: the rows sit
	// buffered until the shutdown flush
	w := newTestAnalytics(consumer, events)
	w.BatchSize = 100
	w.BatchWait = time.Minute
	cancel, wait := startAnalytics(t, w)

	// the fetcher only asks for more after handing off the last message,
	// so once drained fires every event is inside the pipeline
	select {
	case <-consumer.drained:
	case <-time.After(time.Second):
		t.Fatal("consumer never drained")
	}

	cancel()
	wait()

	assertCommitsAfterInserts(t, order.list())
	assert.Len(t, events.allRows(), 3)
	assert.Equal(t, 3, consumer.committedCount())
}
