package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/kraalhub/notifier/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

// ErrValidation marks synchronous input errors surfaced to the caller; the
// stored state is left untouched.
var ErrValidation = errors.New("validation error")

type outboxRepo interface {
	CreateJob(ctx context.Context, job model.Job) (uuid.UUID, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (model.Job, error)
	DeleteTerminalOlderThan(ctx context.Context, olderThanDays int) (int64, error)
}

type prefsRepo interface {
	GetPreferences(ctx context.Context, userID string) (model.Prefs, error)
	UpsertPreferences(ctx context.Context, p model.Prefs) error
	DisableEmail(ctx context.Context, userID string) error
}

type directoryRepo interface {
	UserForToken(ctx context.Context, token string) (string, error)
}

// EnqueueInput describes one notification to one recipient over one channel.
type EnqueueInput struct {
	Channel     model.Channel     `json:"channel" validate:"required,oneof=inapp email push"`
	TemplateKey string            `json:"template_key" validate:"required"`
	UserID      string            `json:"user_id" validate:"required"`
	Payload     map[string]string `json:"payload" validate:"max=64"`
	DedupeKey   string            `json:"dedupe_key"`
	ScheduledAt *time.Time        `json:"scheduled_at"`
	MaxAttempts int               `json:"max_attempts" validate:"gte=0,lte=10"`
}

// PrefsUpdate is a partial preference update; nil fields are left unchanged.
type PrefsUpdate struct {
	EmailGlobal       *bool     `json:"email_global"`
	PushGlobal        *bool     `json:"push_global"`
	InAppGlobal       *bool     `json:"inapp_global"`
	BuyRequest        *bool     `json:"buy_request"`
	Listing           *bool     `json:"listing"`
	Order             *bool     `json:"order"`
	DigestFrequency   *string   `json:"digest_frequency" validate:"omitempty,oneof=immediate daily weekly off"`
	MaxPerDay         *int      `json:"max_per_day" validate:"omitempty,gte=0,lte=100"`
	SpeciesInterest   *[]string `json:"species_interest"`
	ProvincesInterest *[]string `json:"provinces_interest"`
}

type Service struct {
	outbox    outboxRepo
	prefs     prefsRepo
	directory directoryRepo
	validator *validator.Validate
}

func NewService(outbox outboxRepo, prefs prefsRepo, directory directoryRepo, v *validator.Validate) *Service {
	return &Service{outbox: outbox, prefs: prefs, directory: directory, validator: v}
}

// Enqueue durably appends a notification job and returns its id immediately;
// delivery happens asynchronously in the dispatch worker. Duplicate dedupe
// keys are accepted here and collapsed at send time.
func (s *Service) Enqueue(ctx context.Context, input EnqueueInput) (uuid.UUID, error) {
	if err := s.validator.Struct(input); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	scheduledAt := time.Now()
	if input.ScheduledAt != nil {
		scheduledAt = *input.ScheduledAt
	}

	maxAttempts := input.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = model.DefaultMaxAttempts
	}

	job := model.Job{
		Channel:     input.Channel,
		TemplateKey: input.TemplateKey,
		UserID:      input.UserID,
		Payload:     input.Payload,
		DedupeKey:   input.DedupeKey,
		ScheduledAt: scheduledAt,
		MaxAttempts: maxAttempts,
		Status:      model.StatusPending,
	}

	id, err := s.outbox.CreateJob(ctx, job)
	if err != nil {
		return uuid.Nil, fmt.Errorf("enqueue job: %w", err)
	}

	zlog.Logger.Info().
		Str("job_id", id.String()).
		Str("channel", string(input.Channel)).
		Str("template_key", input.TemplateKey).
		Str("user_id", input.UserID).
		Msg("notification enqueued")

	return id, nil
}

// GetJob returns one outbox job with its current delivery status.
func (s *Service) GetJob(ctx context.Context, id uuid.UUID) (model.Job, error) {
	job, err := s.outbox.GetJobByID(ctx, id)
	if err != nil {
		return model.Job{}, fmt.Errorf("get job: %w", err)
	}

	return job, nil
}

// GetPreferences returns the user's stored preferences, falling back to
// defaults for users who never saved any.
func (s *Service) GetPreferences(ctx context.Context, userID string) (model.Prefs, error) {
	p, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return model.Prefs{}, fmt.Errorf("get preferences: %w", err)
	}

	return p, nil
}

// UpdatePreferences merges a partial update into the user's preferences and
// returns the result. Invalid updates fail with ErrValidation and leave the
// stored preferences untouched.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, upd PrefsUpdate) (model.Prefs, error) {
	if err := s.validator.Struct(upd); err != nil {
		return model.Prefs{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	p, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return model.Prefs{}, fmt.Errorf("get preferences: %w", err)
	}

	merge(&p, upd)

	if err := s.prefs.UpsertPreferences(ctx, p); err != nil {
		return model.Prefs{}, fmt.Errorf("update preferences: %w", err)
	}

	return p, nil
}

func merge(p *model.Prefs, upd PrefsUpdate) {
	if upd.EmailGlobal != nil {
		p.EmailGlobal = *upd.EmailGlobal
	}
	if upd.PushGlobal != nil {
		p.PushGlobal = *upd.PushGlobal
	}
	if upd.InAppGlobal != nil {
		p.InAppGlobal = *upd.InAppGlobal
	}
	if upd.BuyRequest != nil {
		p.BuyRequest = *upd.BuyRequest
	}
	if upd.Listing != nil {
		p.Listing = *upd.Listing
	}
	if upd.Order != nil {
		p.Order = *upd.Order
	}
	if upd.DigestFrequency != nil {
		p.DigestFrequency = *upd.DigestFrequency
	}
	if upd.MaxPerDay != nil {
		p.MaxPerDay = *upd.MaxPerDay
	}
	if upd.SpeciesInterest != nil {
		p.SpeciesInterest = *upd.SpeciesInterest
	}
	if upd.ProvincesInterest != nil {
		p.ProvincesInterest = *upd.ProvincesInterest
	}
}

// Unsubscribe resolves an opaque token (validated upstream) to a user and
// forces email off. Returns the affected user id.
func (s *Service) Unsubscribe(ctx context.Context, token string) (string, error) {
	userID, err := s.directory.UserForToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("resolve unsubscribe token: %w", err)
	}

	if err := s.prefs.DisableEmail(ctx, userID); err != nil {
		return "", fmt.Errorf("disable email: %w", err)
	}

	zlog.Logger.Info().Str("user_id", userID).Msg("user unsubscribed from email")

	return userID, nil
}

// CleanupOldJobs deletes terminal jobs older than the retention window.
func (s *Service) CleanupOldJobs(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("%w: olderThanDays must be positive", ErrValidation)
	}

	n, err := s.outbox.DeleteTerminalOlderThan(ctx, olderThanDays)
	if err != nil {
		return 0, fmt.Errorf("cleanup old jobs: %w", err)
	}

	if n > 0 {
		zlog.Logger.Info().Int64("deleted", n).Int("older_than_days", olderThanDays).Msg("outbox retention cleanup")
	}

	return n, nil
}
