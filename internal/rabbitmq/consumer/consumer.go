// Package consumer runs the event ingestion loop: it drains the events queue
// and hands each message to the fan-out handler.
package consumer

import (
	"context"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/kraalhub/notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=consumer.go -destination=../../mocks/rabbitmq/consumer/mock.go -package=mocks

type eventQueue interface {
	Consume(ctx context.Context, out chan<- queue.EventMessage, strategy retry.Strategy) error
}

type eventHandler interface {
	HandleEvent(ctx context.Context, msg queue.EventMessage) error
}

type Consumer struct {
	queue   eventQueue
	handler eventHandler
}

func New(q eventQueue, h eventHandler) *Consumer {
	return &Consumer{queue: q, handler: h}
}

// Run consumes events until ctx is cancelled, spreading handling across
// workerCount goroutines. It blocks in the underlying consume loop.
func (c *Consumer) Run(ctx context.Context, strategy retry.Strategy, workerCount int) error {
	// Buffered so the AMQP forwarder is not lock-stepped with busy handlers.
	events := make(chan queue.EventMessage, workerCount*10)

	for i := 0; i < workerCount; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-events:
					if !ok {
						return
					}

					if err := c.handler.HandleEvent(ctx, msg); err != nil {
						zlog.Logger.Error().Err(err).Str("type", msg.Type).Msg("failed to handle event")
					}
				}
			}
		}()
	}

	return c.queue.Consume(ctx, events, strategy)
}
