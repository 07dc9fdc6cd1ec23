// Package queue declares the AMQP topology for business-event ingestion.
// Upstream emitters (buy-request, listing and order services) publish events
// here; the consumer fans each event out into outbox jobs.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

const (
	ExchangeName   = "marketplace-events"
	MainQueueName  = "notify-events"
	RetryQueueName = "notify-events-retry"
	DLQName        = "notify-events-dlq"
	RoutingKey     = "notify"
)

// EventMessage is one business event to fan out. Type doubles as the
// notification template key ("buy_request.posted", "order.paid", ...).
type EventMessage struct {
	Type        string            `json:"type"`
	Recipients  []string          `json:"recipients"`
	Channels    []string          `json:"channels"`
	Payload     map[string]string `json:"payload"`
	DedupeKey   string            `json:"dedupe_key,omitempty"`
	ScheduledAt *time.Time        `json:"scheduled_at,omitempty"`
}

type EventQueue struct {
	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
}

func NewEventQueue(ch *rabbitmq.Channel) (*EventQueue, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	_, err := qm.DeclareQueue(DLQName, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	retryArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": MainQueueName,
		"x-message-ttl":             int32(5000),
	}

	_, err = qm.DeclareQueue(RetryQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DLQName,
	}

	mainQ, err := qm.DeclareQueue(MainQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	return &EventQueue{Publisher: pub, Consumer: cons}, nil
}

func (q *EventQueue) Publish(msg EventMessage, strategy retry.Strategy) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, RoutingKey, "application/json", strategy)
}

func (q *EventQueue) Consume(ctx context.Context, out chan<- EventMessage, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go forward(ctx, msgChan, out)

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}

// forward decodes raw deliveries onto out until ctx is cancelled or msgChan
// closes. The send also selects on ctx so a message in flight cannot strand
// this goroutine after the handlers have shut down.
func forward(ctx context.Context, msgChan <-chan []byte, out chan<- EventMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-msgChan:
			if !ok {
				return
			}

			var msg EventMessage
			if err := json.Unmarshal(m, &msg); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal event")
				continue
			}

			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}
