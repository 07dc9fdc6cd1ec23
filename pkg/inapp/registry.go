// Package inapp delivers notifications to live in-app connections. The
// registry is the boundary to the web layer's SSE transport: connections
// register a channel per user, delivery is fire-and-forget with no
// acknowledgement of client receipt.
package inapp

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/zlog"

	"github.com/kraalhub/notifier/internal/template"
)

// Payload is what a connected client receives.
type Payload struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

type Registry struct {
	mu    sync.RWMutex
	conns map[string][]chan Payload
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string][]chan Payload)}
}

// Subscribe registers a live connection for a user and returns the channel
// payloads arrive on plus an unsubscribe func. The channel is buffered; a
// client that stops draining loses messages rather than blocking dispatch.
func (r *Registry) Subscribe(userID string) (<-chan Payload, func()) {
	ch := make(chan Payload, 16)

	r.mu.Lock()
	r.conns[userID] = append(r.conns[userID], ch)
	r.mu.Unlock()

	unsubscribe := func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		chans := r.conns[userID]
		for i, c := range chans {
			if c == ch {
				r.conns[userID] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
		if len(r.conns[userID]) == 0 {
			delete(r.conns, userID)
		}
	}

	return ch, unsubscribe
}

// Deliver pushes the rendered message to every live connection of the user.
// An offline user is not an error: the notification is simply dropped, which
// is the contract for the in-app channel.
func (r *Registry) Deliver(_ context.Context, userID string, msg template.Message) error {
	p := Payload{Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML}

	// Unsubscribe shifts the slice in place under the write lock, so the read
	// lock must be held for the whole iteration. Sends never block: a full
	// buffer drops the payload instead.
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ch := range r.conns[userID] {
		select {
		case ch <- p:
		default:
			zlog.Logger.Warn().Str("user_id", userID).Msg("in-app connection buffer full, dropping payload")
		}
	}

	return nil
}
