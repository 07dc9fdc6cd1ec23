// Package template resolves a template key plus a payload of variables into
// rendered subject/HTML/text content. Rendering is pure string substitution:
// every {{name}} occurrence is replaced with payload["name"], and
// placeholders with no matching payload key render as the empty string.
// Content authors are responsible for supplying complete payloads.
package template

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnknownTemplate is returned when a template key has no registered
// template. The dispatch worker treats it as a permanent failure.
var ErrUnknownTemplate = errors.New("unknown template")

// Template holds the raw strings for one message, with {{name}} placeholders.
type Template struct {
	Key     string
	Subject string
	HTML    string
	Text    string
}

// Message is the rendered output handed to a channel transport.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

var placeholder = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Registry is an in-memory template store. It is populated once at startup
// and read-only afterwards, so lookups need no locking.
type Registry struct {
	templates map[string]Template
}

// NewRegistry returns a registry preloaded with the built-in marketplace
// templates.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	for _, t := range builtin {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a template. Replacing a key referenced by live
// jobs changes what those jobs will render, so this is meant for startup.
func (r *Registry) Register(t Template) {
	r.templates[t.Key] = t
}

// Has reports whether key resolves to a registered template.
func (r *Registry) Has(key string) bool {
	_, ok := r.templates[key]
	return ok
}

// Render resolves key and substitutes payload variables into the template.
// It fails only with ErrUnknownTemplate; missing payload keys are not an
// error and render as "".
func (r *Registry) Render(key string, payload map[string]string) (Message, error) {
	t, ok := r.templates[key]
	if !ok {
		return Message{}, fmt.Errorf("render %q: %w", key, ErrUnknownTemplate)
	}

	return Message{
		Subject: substitute(t.Subject, payload),
		HTML:    substitute(t.HTML, payload),
		Text:    substitute(t.Text, payload),
	}, nil
}

func substitute(s string, payload map[string]string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := m[2 : len(m)-2]
		return payload[name]
	})
}

var builtin = []Template{
	{
		Key:     "buy_request.posted",
		Subject: "New Buy Request • {{species}} {{province}}",
		HTML:    `<p>A new buy request matches your interests:</p><p><b>{{title}}</b></p><p>{{species}} — {{province}}</p><p><a href="{{url}}">View buy request</a></p>`,
		Text:    "A new buy request matches your interests: {{title}} ({{species}}, {{province}}). {{url}}",
	},
	{
		Key:     "buy_request.offer",
		Subject: "New offer on your buy request",
		HTML:    `<p>{{seller}} made an offer on <b>{{title}}</b>.</p><p><a href="{{url}}">View offer</a></p>`,
		Text:    "{{seller}} made an offer on {{title}}. {{url}}",
	},
	{
		Key:     "listing.created",
		Subject: "New listing • {{species}} {{province}}",
		HTML:    `<p>A new listing matches your interests:</p><p><b>{{title}}</b></p><p><a href="{{url}}">View listing</a></p>`,
		Text:    "A new listing matches your interests: {{title}}. {{url}}",
	},
	{
		Key:     "order.paid",
		Subject: "Order {{order_ref}} paid",
		HTML:    `<p>Payment received for order <b>{{order_ref}}</b> ({{amount}}).</p><p><a href="{{url}}">View order</a></p>`,
		Text:    "Payment received for order {{order_ref}} ({{amount}}). {{url}}",
	},
	{
		Key:     "order.shipped",
		Subject: "Order {{order_ref}} on its way",
		HTML:    `<p>Order <b>{{order_ref}}</b> has been dispatched by {{seller}}.</p><p><a href="{{url}}">Track order</a></p>`,
		Text:    "Order {{order_ref}} has been dispatched by {{seller}}. {{url}}",
	},
}
