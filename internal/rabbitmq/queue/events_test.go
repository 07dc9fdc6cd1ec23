package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward_DecodesEvents(t *testing.T) {
	msgChan := make(chan []byte, 1)
	out := make(chan EventMessage, 1)

	body, err := json.Marshal(EventMessage{
		Type:       "buy_request.posted",
		Recipients: []string{"user-1"},
		Channels:   []string{"email"},
	})
	require.NoError(t, err)

	msgChan <- body
	close(msgChan)

	forward(context.Background(), msgChan, out)

	msg := <-out
	assert.Equal(t, "buy_request.posted", msg.Type)
	assert.Equal(t, []string{"user-1"}, msg.Recipients)
}

func TestForward_SkipsMalformedBody(t *testing.T) {
	msgChan := make(chan []byte, 2)
	out := make(chan EventMessage, 1)

	msgChan <- []byte("{not json")
	msgChan <- []byte(`{"type":"order.paid"}`)
	close(msgChan)

	forward(context.Background(), msgChan, out)

	msg := <-out
	assert.Equal(t, "order.paid", msg.Type)
}

func TestForward_ExitsOnCancelWhileSending(t *testing.T) {
	msgChan := make(chan []byte, 1)
	out := make(chan EventMessage) // no reader: the send blocks

	msgChan <- []byte(`{"type":"order.paid"}`)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		forward(ctx, msgChan, out)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("forwarder did not exit after cancellation")
	}
}
