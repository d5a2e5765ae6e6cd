package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishesToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventOrderCreated, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventOrderCreated, SubjectID: "user-1"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "user-1", received[0].SubjectID)

	// Events of other types are not delivered.
	err = d.Publish(context.Background(), Event{Type: EventUserRegistered})
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventOrderStatusChanged, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventOrderStatusChanged, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventOrderStatusChanged})
	require.NoError(t, err)
	assert.True(t, secondCalled)
}
