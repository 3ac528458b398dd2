package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsHandlersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventRegistrationSubmitted, func(context.Context, Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(EventRegistrationSubmitted, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventInterviewScheduled, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRegistrationSubmitted}))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishIsolatesFailingHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	reached := false
	d.Subscribe(EventRegistrationNotesUpdated, func(context.Context, Event) error { return boom })
	d.Subscribe(EventRegistrationNotesUpdated, func(context.Context, Event) error { panic("bad handler") })
	d.Subscribe(EventRegistrationNotesUpdated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRegistrationNotesUpdated})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "panic: bad handler")
	assert.True(t, reached)
}

func TestSubscribeAll(t *testing.T) {
	d := NewInMemoryDispatcher()
	seen := map[EventType]int{}
	SubscribeAll(d, func(_ context.Context, e Event) error {
		seen[e.Type]++
		return nil
	})

	for _, eventType := range EventTypes {
		require.NoError(t, d.Publish(context.Background(), Event{Type: eventType}))
	}
	assert.Len(t, seen, 5)
}
