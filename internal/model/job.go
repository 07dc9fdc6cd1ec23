package model

import (
	"time"

	"github.com/google/uuid"
)

// Channel is the delivery medium for a notification job.
type Channel string

const (
	ChannelInApp Channel = "inapp"
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// Valid reports whether c is one of the known delivery channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelPush:
		return true
	}
	return false
}

// Job statuses. A job starts as pending, is claimed into processing by the
// dispatch worker and ends in one of the terminal states: sent, failed or
// skipped. A failed delivery attempt that has not exhausted MaxAttempts puts
// the job back to pending.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusSent       = "sent"
	StatusFailed     = "failed"
	StatusSkipped    = "skipped"
)

// DefaultMaxAttempts is the attempts ceiling applied when a job is enqueued
// without an explicit one.
const DefaultMaxAttempts = 5

// Job represents a single outbox entry: one notification to one recipient
// over one channel. Only the dispatch worker mutates Status, Attempts,
// NextAttemptAt and LastError; everything else is immutable after enqueue.
type Job struct {
	ID            uuid.UUID         `json:"id"`
	Channel       Channel           `json:"channel"`
	TemplateKey   string            `json:"template_key"`
	UserID        string            `json:"user_id"`        // recipient
	Payload       map[string]string `json:"payload"`        // template variables
	DedupeKey     string            `json:"dedupe_key"`     // empty means no dedupe
	ScheduledAt   time.Time         `json:"scheduled_at"`   // not dispatched before this time
	NextAttemptAt time.Time         `json:"next_attempt_at"`
	Attempts      int               `json:"attempts"`
	MaxAttempts   int               `json:"max_attempts"`
	Status        string            `json:"status"`
	LastError     string            `json:"last_error,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Terminal reports whether the job is in a state from which no further
// transition occurs.
func (j Job) Terminal() bool {
	switch j.Status {
	case StatusSent, StatusFailed, StatusSkipped:
		return true
	}
	return false
}
