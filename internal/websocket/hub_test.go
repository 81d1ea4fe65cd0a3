package websocket

import (
	"context"
	"testing"
	"time"

	"robi-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, buffer int) *Client {
	c := &Client{Hub: h, ID: uuid.New(), Send: make(chan []byte, buffer)}
	h.register(c)
	return c
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	a := newTestClient(h, 1)
	b := newTestClient(h, 1)

	h.Broadcast([]byte(`{"type":"QUERY_ANSWERED"}`))

	assert.Equal(t, `{"type":"QUERY_ANSWERED"}`, string(<-a.Send))
	assert.Equal(t, `{"type":"QUERY_ANSWERED"}`, string(<-b.Send))
	assert.Equal(t, 2, h.Len())
}

func TestSlowClientIsDropped(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	slow := newTestClient(h, 0)
	fast := newTestClient(h, 1)

	h.Broadcast([]byte("x"))

	assert.Equal(t, 1, h.Len())
	_, ok := <-slow.Send
	assert.False(t, ok, "slow client channel should be closed")
	assert.Equal(t, "x", string(<-fast.Send))

	// unregistering twice must not panic on a closed channel
	h.unregister(slow)
}

func TestRunDisconnectsOnCancel(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	c := newTestClient(h, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	_, ok := <-c.Send
	require.False(t, ok)
	assert.Zero(t, h.Len())
}
