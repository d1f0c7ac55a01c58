package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	h := NewHub()

	a, cleanupA := h.Subscribe("attendance")
	defer cleanupA()
	b, cleanupB := h.Subscribe("attendance")
	defer cleanupB()
	other, cleanupOther := h.Subscribe("payroll")
	defer cleanupOther()

	h.Publish("attendance", Event{Name: "attendance.changed", Data: 1})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, "attendance.changed", ev.Name)
			assert.Equal(t, 1, ev.Data)
		default:
			t.Fatal("expected event")
		}
	}
	assert.Empty(t, other)
}

func TestHub_CleanupClosesAndUnregisters(t *testing.T) {
	h := NewHub()

	ch, cleanup := h.Subscribe("attendance")
	require.Equal(t, 1, h.SubscriberCount("attendance"))

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.SubscriberCount("attendance"))

	assert.NotPanics(t, func() { h.Publish("attendance", Event{Name: "x"}) })
}

func TestHub_FullBufferDropsEvents(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("attendance")
	defer cleanup()

	for i := 0; i < 25; i++ {
		h.Publish("attendance", Event{Name: "tick", Data: i})
	}
	assert.Len(t, ch, 10)
}
