package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "carteira/pkg/platform/audit"
	"carteira/pkg/platform/audit/metrics"
	"carteira/pkg/platform/audit/store/memory"
)

type failingStore struct {
	err error
}

func (s *failingStore) Append(_ context.Context, _ audit.Event) error {
	return s.err
}

type blockingStore struct {
	release chan struct{}
}

func (s *blockingStore) Append(_ context.Context, _ audit.Event) error {
	<-s.release
	return nil
}

func TestPublisher_EmitStoresEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventCredentialIssued), Registration: "10****"})
	require.NoError(t, err)

	events, err := store.ListByRegistration(context.Background(), "10****")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventCredentialIssued), events[0].Action)
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	before := time.Now()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: "x", Registration: "r"}))
	after := time.Now()

	events, err := store.ListByRegistration(context.Background(), "r")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.Before(before))
	assert.False(t, events[0].Timestamp.After(after))
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: "x", Registration: "r", Timestamp: customTime}))

	events, err := store.ListByRegistration(context.Background(), "r")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_EmitReturnsError(t *testing.T) {
	storeErr := errors.New("append failed")
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	pub := NewPublisher(&failingStore{err: storeErr}, WithMetrics(m))

	err := pub.Emit(context.Background(), audit.Event{Action: "x"})
	require.ErrorIs(t, err, storeErr)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PersistFailures))
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(8))

	for range 5 {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: "x", Registration: "r"}))
	}
	pub.Close()

	events, err := store.ListByRegistration(context.Background(), "r")
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestPublisher_AsyncDropsWhenFull(t *testing.T) {
	store := &blockingStore{release: make(chan struct{})}
	m := metrics.New(prometheus.NewRegistry())
	pub := NewPublisher(store, WithAsyncBuffer(1), WithMetrics(m))

	var dropped int
	for range 10 {
		if err := pub.Emit(context.Background(), audit.Event{Action: "x"}); err != nil {
			dropped++
		}
	}
	close(store.release)
	pub.Close()

	assert.Positive(t, dropped)
	assert.Equal(t, float64(dropped), testutil.ToFloat64(m.EventsDropped))
}
