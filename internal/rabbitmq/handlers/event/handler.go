// Package event turns consumed business events into outbox jobs.
package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/kraalhub/notifier/internal/model"
	"github.com/kraalhub/notifier/internal/rabbitmq/queue"
	"github.com/kraalhub/notifier/internal/service/notification"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/event/mock.go -package=mocks

type notificationService interface {
	Enqueue(ctx context.Context, input notification.EnqueueInput) (uuid.UUID, error)
}

type templateRegistry interface {
	Has(key string) bool
}

type Handler struct {
	service   notificationService
	templates templateRegistry
}

func NewHandler(service notificationService, templates templateRegistry) *Handler {
	return &Handler{service: service, templates: templates}
}

// HandleEvent fans one event out into one job per (recipient, channel).
// Events with an unknown template key are dropped; redelivering them would
// never succeed. Per-job enqueue failures are logged and skipped so one bad
// recipient does not block the rest of the fan-out.
func (h *Handler) HandleEvent(ctx context.Context, msg queue.EventMessage) error {
	if !h.templates.Has(msg.Type) {
		zlog.Logger.Warn().Str("type", msg.Type).Msg("dropping event with unknown template key")
		return nil
	}

	for _, recipient := range msg.Recipients {
		for _, ch := range msg.Channels {
			channel := model.Channel(ch)
			if !channel.Valid() {
				zlog.Logger.Warn().
					Str("type", msg.Type).
					Str("channel", ch).
					Msg("dropping unknown channel in event fan-out")
				continue
			}

			input := notification.EnqueueInput{
				Channel:     channel,
				TemplateKey: msg.Type,
				UserID:      recipient,
				Payload:     msg.Payload,
				DedupeKey:   dedupeKey(msg.DedupeKey, recipient, channel),
				ScheduledAt: msg.ScheduledAt,
			}

			if _, err := h.service.Enqueue(ctx, input); err != nil {
				zlog.Logger.Error().Err(err).
					Str("type", msg.Type).
					Str("user_id", recipient).
					Str("channel", ch).
					Msg("failed to enqueue notification for event")
			}
		}
	}

	return nil
}

// dedupeKey scopes the emitter's key to one recipient and channel so a
// republished event collapses per target, not across the whole fan-out.
func dedupeKey(base, recipient string, channel model.Channel) string {
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", base, recipient, channel)
}
