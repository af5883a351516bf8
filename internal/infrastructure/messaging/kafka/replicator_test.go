package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rso-takle-mamo/booking-service/internal/contracts/event"
)

// scriptedFetcher serves a fixed queue; once drained, FetchMessage blocks
// until the context is cancelled.
type scriptedFetcher struct {
	mu      sync.Mutex
	queue   []skafka.Message
	commits []skafka.Message
	closed  bool
}

func (f *scriptedFetcher) FetchMessage(ctx context.Context) (skafka.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		m := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()
	<-ctx.Done()
	return skafka.Message{}, ctx.Err()
}

func (f *scriptedFetcher) CommitMessages(_ context.Context, msgs ...skafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits = append(f.commits, msgs...)
	return nil
}

func (f *scriptedFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *scriptedFetcher) committed() []skafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]skafka.Message(nil), f.commits...)
}

type failingFetcher struct{ calls int }

func (f *failingFetcher) FetchMessage(context.Context) (skafka.Message, error) {
	f.calls++
	return skafka.Message{}, errors.New("broker gone")
}
func (f *failingFetcher) CommitMessages(context.Context, ...skafka.Message) error { return nil }
func (f *failingFetcher) Close() error                                            { return nil }

type recordingApplier struct {
	mu     sync.Mutex
	events []event.Inbound
	err    error
}

func (a *recordingApplier) Apply(_ context.Context, ev event.Inbound) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, ev)
	return nil
}

func (a *recordingApplier) applied() []event.Inbound {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]event.Inbound(nil), a.events...)
}

func tenantCreatedJSON(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(event.TenantCreated{
		Envelope:     event.NewEnvelope(event.TypeTenantCreated, time.Now()),
		TenantID:     uuid.New(),
		BusinessName: "Oak Barbershop",
	})
	require.NoError(t, err)
	return body
}

func runUntil(t *testing.T, r *Replicator, cond func() bool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			cancel()
			<-done
			t.Fatal("condition not reached in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("replicator did not stop on cancellation")
	}
}

func TestReplicator_CommitsAfterSuccessfulHandle(t *testing.T) {
	fetcher := &scriptedFetcher{queue: []skafka.Message{{Topic: "tenant-events", Offset: 7, Value: tenantCreatedJSON(t)}}}
	applier := &recordingApplier{}
	r := NewReplicatorWithReader("tenant", func() Fetcher { return fetcher }, applier, 10*time.Millisecond, time.Second)

	runUntil(t, r, func() bool { return len(fetcher.committed()) == 1 })

	require.Len(t, applier.applied(), 1)
	_, ok := applier.applied()[0].(*event.TenantCreated)
	assert.True(t, ok)
	assert.Equal(t, int64(7), fetcher.committed()[0].Offset)
}

func TestReplicator_SkipsUndecodableWithoutCommit(t *testing.T) {
	fetcher := &scriptedFetcher{queue: []skafka.Message{
		{Offset: 1, Value: []byte("{{not json")},
		{Offset: 2, Value: []byte(`{"eventType":"SomethingElse"}`)},
		{Offset: 3, Value: tenantCreatedJSON(t)},
	}}
	applier := &recordingApplier{}
	r := NewReplicatorWithReader("tenant", func() Fetcher { return fetcher }, applier, 10*time.Millisecond, time.Second)

	runUntil(t, r, func() bool { return len(fetcher.committed()) == 1 })

	// only the decodable message was handled and committed
	require.Len(t, applier.applied(), 1)
	assert.Equal(t, int64(3), fetcher.committed()[0].Offset)
}

func TestReplicator_HandlerFailureLeavesOffsetUncommitted(t *testing.T) {
	fetcher := &scriptedFetcher{queue: []skafka.Message{{Offset: 5, Value: tenantCreatedJSON(t)}}}
	applier := &recordingApplier{err: errors.New("db down")}
	r := NewReplicatorWithReader("tenant", func() Fetcher { return fetcher }, applier, 10*time.Millisecond, time.Second)

	runUntil(t, r, func() bool {
		fetcher.mu.Lock()
		defer fetcher.mu.Unlock()
		return len(fetcher.queue) == 0
	})

	assert.Empty(t, fetcher.committed())
}

func TestReplicator_RestartsConsumeLoopWithBackoff(t *testing.T) {
	var mu sync.Mutex
	readers := 0
	fetcher := &failingFetcher{}
	newReader := func() Fetcher {
		mu.Lock()
		readers++
		mu.Unlock()
		return fetcher
	}
	r := NewReplicatorWithReader("catalog", newReader, &recordingApplier{}, time.Millisecond, time.Second)

	runUntil(t, r, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return readers >= 3
	})
}
