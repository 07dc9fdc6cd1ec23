// Package push is a placeholder for the mobile/web push channel. Delivery is
// logged and always succeeds until a real provider is wired in.
package push

import (
	"context"

	"github.com/wb-go/wbf/zlog"

	"github.com/kraalhub/notifier/internal/template"
)

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Deliver(_ context.Context, userID string, msg template.Message) error {
	zlog.Logger.Info().
		Str("user_id", userID).
		Str("subject", msg.Subject).
		Msg("push notification (stub)")

	return nil
}
