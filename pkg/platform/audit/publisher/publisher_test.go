package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	id "checkout/pkg/domain"
	audit "checkout/pkg/platform/audit"
	"checkout/pkg/platform/audit/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.SessionID(uuid.NewString())
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventProfileAttached),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventProfileAttached), events[0].Action)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))
	defer pub.Close()

	sessionID := id.SessionID(uuid.NewString())
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventAddressAttached),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	// Wait for async processing
	time.Sleep(100 * time.Millisecond)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventAddressAttached), events[0].Action)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	sessionID := id.SessionID(uuid.NewString())

	// Emit multiple events
	for range 10 {
		event := audit.Event{
			SessionID: sessionID,
			Action:    string(audit.EventProfileAttached),
		}
		err := pub.Emit(context.Background(), event)
		require.NoError(t, err)
	}

	// Close should drain all events
	pub.Close()

	events, err := store.ListBySession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	sessionID := id.SessionID(uuid.NewString())

	// Fill the buffer with concurrent writes
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event := audit.Event{
				SessionID: sessionID,
				Action:    string(audit.EventProfileAttached),
			}
			_ = pub.Emit(context.Background(), event)
		}()
	}
	wg.Wait()

	// Some events should have been dropped (buffer size 1)
	// Just verify no panic and publisher still works
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.SessionID(uuid.NewString())
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventProfileAttached),
		// Timestamp not set
	}

	before := time.Now()
	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)
	after := time.Now()

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.True(t, !events[0].Timestamp.Before(before), "timestamp should be >= before")
	assert.True(t, !events[0].Timestamp.After(after), "timestamp should be <= after")
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.SessionID(uuid.NewString())
	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventProfileAttached),
		Timestamp: customTime,
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_ContextCancellation(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	// Fill buffer first
	_ = pub.Emit(context.Background(), audit.Event{
		SessionID: id.SessionID(uuid.NewString()),
		Action:    string(audit.EventProfileAttached),
	})

	// Wait for the event to be processed
	time.Sleep(50 * time.Millisecond)

	// Fill buffer again
	_ = pub.Emit(context.Background(), audit.Event{
		SessionID: id.SessionID(uuid.NewString()),
		Action:    string(audit.EventProfileAttached),
	})

	// Try to emit with cancelled context when buffer is full
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.Emit(ctx, audit.Event{
		SessionID: id.SessionID(uuid.NewString()),
		Action:    string(audit.EventProfileAttached),
	})

	// Should either succeed (buffer not full) or return context error or buffer full error
	if err != nil {
		assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, ErrBufferFull),
			"expected context.Canceled or buffer full error, got: %v", err)
	}
}

func TestPublisher_MultipleEvents(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.SessionID(uuid.NewString())

	events := []audit.Event{
		{SessionID: sessionID, Action: string(audit.EventProfileAttached)},
		{SessionID: sessionID, Action: string(audit.EventInstrumentAttached)},
		{SessionID: sessionID, Action: string(audit.EventCheckoutConfirmed)},
	}

	for _, event := range events {
		err := pub.Emit(context.Background(), event)
		require.NoError(t, err)
	}

	result, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, string(audit.EventProfileAttached), result[0].Action)
	assert.Equal(t, string(audit.EventInstrumentAttached), result[1].Action)
	assert.Equal(t, string(audit.EventCheckoutConfirmed), result[2].Action)
}

func TestPublisher_DifferentSessions(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID1 := id.SessionID(uuid.NewString())
	sessionID2 := id.SessionID(uuid.NewString())

	err := pub.Emit(context.Background(), audit.Event{
		SessionID: sessionID1,
		Action:    string(audit.EventProfileAttached),
	})
	require.NoError(t, err)

	err = pub.Emit(context.Background(), audit.Event{
		SessionID: sessionID2,
		Action:    string(audit.EventAddressAttached),
	})
	require.NoError(t, err)

	events1, err := pub.List(context.Background(), sessionID1)
	require.NoError(t, err)
	require.Len(t, events1, 1)
	assert.Equal(t, string(audit.EventProfileAttached), events1[0].Action)

	events2, err := pub.List(context.Background(), sessionID2)
	require.NoError(t, err)
	require.Len(t, events2, 1)
	assert.Equal(t, string(audit.EventAddressAttached), events2[0].Action)
}

type failingSink struct{ calls int }

func (f *failingSink) Append(context.Context, audit.Event) error {
	f.calls++
	return errors.New("broker down")
}

func TestPublisher_SinkFailureDoesNotFailEmit(t *testing.T) {
	store := memory.NewInMemoryStore()
	sink := &failingSink{}
	pub := NewPublisher(store, WithSink(sink))
	defer pub.Close()

	sessionID := id.SessionID("cr_sink")
	err := pub.Emit(context.Background(), audit.Event{SessionID: sessionID, Action: string(audit.EventChallengeIssued)})
	require.NoError(t, err)
	assert.Equal(t, 1, sink.calls)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
}
