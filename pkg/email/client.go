package email

import (
	"context"
	"fmt"

	"gopkg.in/mail.v2"

	"github.com/kraalhub/notifier/internal/template"
)

// addressResolver maps a marketplace user id to an email address.
type addressResolver interface {
	EmailFor(ctx context.Context, userID string) (string, error)
}

type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
	resolver addressResolver
}

func NewClient(smtpHost string, smtpPort int, username, password, from string, resolver addressResolver) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
		resolver: resolver,
	}
}

// Deliver sends the rendered message to the user's email address. Any
// failure, including an unknown recipient, is reported to the caller and
// counted against the job's attempts.
func (c *Client) Deliver(ctx context.Context, userID string, msg template.Message) error {
	to, err := c.resolver.EmailFor(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	m := mail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	return dialer.DialAndSend(m)
}
