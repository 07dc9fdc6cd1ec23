package worker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/kraalhub/notifier/internal/counter"
	"github.com/kraalhub/notifier/internal/model"
	"github.com/kraalhub/notifier/internal/template"
)

//go:generate mockgen -source=dispatcher.go -destination=../mocks/worker/mock.go -package=mocks

type outboxRepo interface {
	ClaimDue(ctx context.Context, limit int) ([]model.Job, error)
	HasSentSibling(ctx context.Context, dedupeKey string, excludeID uuid.UUID) (bool, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkSkipped(ctx context.Context, id uuid.UUID, reason string) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error
	Release(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastError string) error
	RequeueStale(ctx context.Context, staleBefore time.Time) (int64, error)
}

type prefsStore interface {
	GetPreferences(ctx context.Context, userID string) (model.Prefs, error)
}

type sendCounter interface {
	Incr(ctx context.Context, strategy retry.Strategy, userID string, day int) error
	Count(ctx context.Context, strategy retry.Strategy, userID string, day int) (int, error)
}

type renderer interface {
	Render(key string, payload map[string]string) (template.Message, error)
}

// Transport delivers a rendered message to one user over one channel.
type Transport interface {
	Deliver(ctx context.Context, userID string, msg template.Message) error
}

// Summary is the result of one poll-and-dispatch cycle. Per-job outcomes are
// only visible via the job's own status.
type Summary struct {
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
}

// Options tune the dispatch loop.
type Options struct {
	SendTimeout time.Duration // ceiling on a single transport call
	BaseBackoff time.Duration // retry delay doubles from here per attempt
	StaleAfter  time.Duration // processing claims older than this get requeued
	Retry       retry.Strategy
}

// Dispatcher polls the outbox and drives each claimed job through dedupe,
// preference and cap checks, rendering and channel delivery.
type Dispatcher struct {
	repo       outboxRepo
	prefs      prefsStore
	counter    sendCounter
	renderer   renderer
	transports map[model.Channel]Transport
	opts       Options
}

func NewDispatcher(
	repo outboxRepo,
	prefs prefsStore,
	counter sendCounter,
	renderer renderer,
	transports map[model.Channel]Transport,
	opts Options,
) *Dispatcher {
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 15 * time.Second
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = 30 * time.Second
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = 5 * time.Minute
	}

	return &Dispatcher{
		repo:       repo,
		prefs:      prefs,
		counter:    counter,
		renderer:   renderer,
		transports: transports,
		opts:       opts,
	}
}

// Run polls the outbox on a fixed interval until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration, limit int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zlog.Logger.Info().Dur("interval", interval).Int("limit", limit).Msg("dispatch worker started")

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("dispatch worker stopped")
			return
		case <-ticker.C:
			summary := d.RunOnce(ctx, limit)
			if summary.Processed > 0 || summary.Errors > 0 {
				zlog.Logger.Info().
					Int("processed", summary.Processed).
					Int("errors", summary.Errors).
					Msg("dispatch cycle finished")
			}
		}
	}
}

// RunOnce executes one poll-and-dispatch cycle and returns a summary. It
// never panics and never returns an error: per-job failures are contained,
// logged and reflected in the summary.
func (d *Dispatcher) RunOnce(ctx context.Context, limit int) Summary {
	if n, err := d.repo.RequeueStale(ctx, time.Now().Add(-d.opts.StaleAfter)); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to requeue stale claims")
	} else if n > 0 {
		zlog.Logger.Warn().Int64("count", n).Msg("requeued stale claims")
	}

	jobs, err := d.repo.ClaimDue(ctx, limit)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to claim due jobs")
		return Summary{Errors: 1}
	}

	var (
		wg       sync.WaitGroup
		errCount atomic.Int64
	)

	// Jobs in a batch are independent; transports are I/O-bound, so they are
	// dispatched concurrently. One job must never abort its siblings.
	wg.Add(len(jobs))
	for _, job := range jobs {
		go func(job model.Job) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					zlog.Logger.Error().
						Str("job_id", job.ID.String()).
						Interface("panic", r).
						Msg("panic while dispatching job")
					d.failAttempt(ctx, job, fmt.Errorf("panic: %v", r))
					errCount.Add(1)
				}
			}()

			if err := d.process(ctx, job); err != nil {
				zlog.Logger.Warn().
					Err(err).
					Str("job_id", job.ID.String()).
					Str("channel", string(job.Channel)).
					Msg("job dispatch errored")
				errCount.Add(1)
			}
		}(job)
	}
	wg.Wait()

	return Summary{Processed: len(jobs), Errors: int(errCount.Load())}
}

// process drives one claimed job to a terminal or requeued state.
func (d *Dispatcher) process(ctx context.Context, job model.Job) error {
	// A channel outside the known set can never deliver; fail it outright
	// rather than let the preference gate mislabel it as a user block.
	if !job.Channel.Valid() {
		err := fmt.Errorf("unknown channel %q", job.Channel)
		if markErr := d.repo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			zlog.Logger.Error().Err(markErr).Str("job_id", job.ID.String()).Msg("failed to mark job failed")
		}
		return err
	}

	// Duplicate suppression: at most one delivery per dedupe key.
	if job.DedupeKey != "" {
		sent, err := d.repo.HasSentSibling(ctx, job.DedupeKey, job.ID)
		if err != nil {
			d.requeue(ctx, job, err)
			return fmt.Errorf("dedupe check: %w", err)
		}
		if sent {
			return d.markSkipped(ctx, job, "duplicate suppressed")
		}
	}

	// Preferences and the daily cap are re-checked at dispatch time: they may
	// have changed since enqueue, and a blocked send is terminal, not a retry.
	prefs, err := d.prefs.GetPreferences(ctx, job.UserID)
	if err != nil {
		d.requeue(ctx, job, err)
		return fmt.Errorf("load preferences: %w", err)
	}

	if !prefs.Allows(job.Channel, job.TemplateKey) {
		return d.markSkipped(ctx, job, "blocked by preferences")
	}

	if prefs.MaxPerDay == 0 {
		return d.markSkipped(ctx, job, "recipient muted")
	}

	day := counter.Day(time.Now())
	sentToday, err := d.counter.Count(ctx, d.opts.Retry, job.UserID, day)
	if err != nil {
		// The cap is advisory; a counter outage must not stall delivery.
		zlog.Logger.Error().Err(err).Str("user_id", job.UserID).Msg("failed to read daily counter")
	} else if sentToday >= prefs.MaxPerDay {
		return d.markSkipped(ctx, job, "daily cap reached")
	}

	msg, err := d.renderer.Render(job.TemplateKey, job.Payload)
	if err != nil {
		if errors.Is(err, template.ErrUnknownTemplate) {
			// Permanent: no retry, no attempt consumed.
			if markErr := d.repo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
				zlog.Logger.Error().Err(markErr).Str("job_id", job.ID.String()).Msg("failed to mark job failed")
			}
			return err
		}
		d.requeue(ctx, job, err)
		return fmt.Errorf("render: %w", err)
	}

	transport, ok := d.transports[job.Channel]
	if !ok {
		err := fmt.Errorf("no transport for channel %q", job.Channel)
		if markErr := d.repo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			zlog.Logger.Error().Err(markErr).Str("job_id", job.ID.String()).Msg("failed to mark job failed")
		}
		return err
	}

	// One slow provider must not stall the batch: bound every transport call.
	sendCtx, cancel := context.WithTimeout(ctx, d.opts.SendTimeout)
	deliverErr := transport.Deliver(sendCtx, job.UserID, msg)
	cancel()

	if deliverErr != nil {
		d.failAttempt(ctx, job, deliverErr)
		return fmt.Errorf("deliver: %w", deliverErr)
	}

	if err := d.repo.MarkSent(ctx, job.ID); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}

	if err := d.counter.Incr(ctx, d.opts.Retry, job.UserID, day); err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", job.UserID).Msg("failed to increment daily counter")
	}

	return nil
}

// failAttempt books one failed delivery attempt: terminal failure once the
// ceiling is reached, otherwise back to pending with exponential backoff.
func (d *Dispatcher) failAttempt(ctx context.Context, job model.Job, cause error) {
	attempts := job.Attempts + 1

	if attempts >= job.MaxAttempts {
		if err := d.repo.MarkFailed(ctx, job.ID, cause.Error()); err != nil {
			zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to mark job failed")
		}
		return
	}

	delay := time.Duration(math.Pow(2, float64(job.Attempts))) * d.opts.BaseBackoff
	if err := d.repo.Release(ctx, job.ID, attempts, time.Now().Add(delay), cause.Error()); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to release job for retry")
	}
}

// requeue puts a claimed job back without consuming an attempt. Used for
// infrastructure errors that happen before any delivery was tried.
func (d *Dispatcher) requeue(ctx context.Context, job model.Job, cause error) {
	if err := d.repo.Release(ctx, job.ID, job.Attempts, time.Now().Add(d.opts.BaseBackoff), cause.Error()); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to requeue job")
	}
}

func (d *Dispatcher) markSkipped(ctx context.Context, job model.Job, reason string) error {
	if err := d.repo.MarkSkipped(ctx, job.ID, reason); err != nil {
		return fmt.Errorf("mark skipped: %w", err)
	}

	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Str("reason", reason).
		Msg("job skipped")

	return nil
}
