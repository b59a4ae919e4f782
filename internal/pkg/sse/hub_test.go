package sse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyThatUser(t *testing.T) {
	hub := NewHub()
	chA, cleanupA := hub.Subscribe("user-a")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("user-b")
	defer cleanupB()

	delivered := hub.Publish("user-a", Event{Event: EventRefreshed, Data: 1})
	assert.Equal(t, 1, delivered)

	got := <-chA
	assert.Equal(t, "user-a", got.UserID)
	assert.Equal(t, EventRefreshed, got.Event)
	assert.Empty(t, chB)
}

func TestHub_FullBufferDropsEvent(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("user-a")
	defer cleanup()

	for i := 0; i < 10; i++ {
		require.Equal(t, 1, hub.Publish("user-a", Event{Event: EventRefreshed}))
	}
	assert.Equal(t, 0, hub.Publish("user-a", Event{Event: EventRefreshed}))
}

func TestHub_CleanupUnregisters(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("user-a")
	_, cleanup2 := hub.Subscribe("user-b")
	defer cleanup2()

	assert.Equal(t, []string{"user-a", "user-b"}, hub.Users())

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("user-a"))
	assert.Equal(t, []string{"user-b"}, hub.Users())
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEvent(&buf, Event{Event: EventPing, Data: map[string]int{"timestamp": 1}})
	require.NoError(t, err)
	assert.Equal(t, "event: ping\ndata: {\"timestamp\":1}\n\n", buf.String())
}
