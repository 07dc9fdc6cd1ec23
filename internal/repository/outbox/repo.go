package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/kraalhub/notifier/internal/model"
)

var ErrJobNotFound = errors.New("job not found")

// Repository provides methods to interact with the outbox_jobs table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new outbox repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateJob inserts a new pending job and returns its ID. Enqueue is
// append-only and never blocks on delivery; duplicate dedupe keys are
// allowed here and collapsed by the worker at send time.
func (r *Repository) CreateJob(ctx context.Context, job model.Job) (uuid.UUID, error) {
	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal payload: %w", err)
	}

	query := `
		INSERT INTO outbox_jobs (
		    channel, template_key, user_id, payload, dedupe_key,
		    scheduled_at, next_attempt_at, max_attempts
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $6, $7)
		RETURNING id;
    `

	err = r.db.Master.QueryRowContext(
		ctx, query,
		job.Channel, job.TemplateKey, job.UserID, payload, job.DedupeKey,
		job.ScheduledAt, job.MaxAttempts,
	).Scan(&job.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job.ID, nil
}

// ClaimDue atomically moves up to limit due pending jobs to processing and
// returns them, oldest first. SKIP LOCKED keeps concurrent worker instances
// from claiming the same rows.
func (r *Repository) ClaimDue(ctx context.Context, limit int) ([]model.Job, error) {
	query := `
		UPDATE outbox_jobs
		SET status = 'processing', updated_at = now()
		WHERE id IN (
		    SELECT id FROM outbox_jobs
		    WHERE status = 'pending'
		      AND scheduled_at <= now()
		      AND next_attempt_at <= now()
		    ORDER BY created_at
		    LIMIT $1
		    FOR UPDATE SKIP LOCKED
		)
		RETURNING id, channel, template_key, user_id, payload,
		          COALESCE(dedupe_key, ''), scheduled_at, next_attempt_at,
		          attempts, max_attempts, status, COALESCE(last_error, ''),
		          created_at, updated_at;
    `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// HasSentSibling reports whether another job with the same dedupe key has
// already been delivered. Used by the worker to collapse duplicates.
func (r *Repository) HasSentSibling(ctx context.Context, dedupeKey string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
		    SELECT 1 FROM outbox_jobs
		    WHERE dedupe_key = $1 AND status = 'sent' AND id <> $2
		);
    `

	var exists bool
	if err := r.db.Master.QueryRowContext(ctx, query, dedupeKey, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check dedupe key: %w", err)
	}

	return exists, nil
}

// MarkSent transitions a job to the terminal sent state.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.setTerminal(ctx, id, model.StatusSent, "")
}

// MarkSkipped transitions a job to the terminal skipped state, recording why
// it was suppressed (duplicate, preferences, daily cap).
func (r *Repository) MarkSkipped(ctx context.Context, id uuid.UUID, reason string) error {
	return r.setTerminal(ctx, id, model.StatusSkipped, reason)
}

// MarkFailed transitions a job to the terminal failed state.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	return r.setTerminal(ctx, id, model.StatusFailed, lastError)
}

func (r *Repository) setTerminal(ctx context.Context, id uuid.UUID, status, lastError string) error {
	query := `
		UPDATE outbox_jobs
		SET status = $1, last_error = NULLIF($2, ''), updated_at = now()
		WHERE id = $3;
    `

	res, err := r.db.ExecContext(ctx, query, status, lastError, id)
	if err != nil {
		return fmt.Errorf("failed to mark job %s: %w", status, err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// Release puts a claimed job back to pending for a later retry, recording
// the attempt count, the failure and the next eligible time.
func (r *Repository) Release(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastError string) error {
	query := `
		UPDATE outbox_jobs
		SET status = 'pending', attempts = $1, next_attempt_at = $2,
		    last_error = NULLIF($3, ''), updated_at = now()
		WHERE id = $4;
    `

	res, err := r.db.ExecContext(ctx, query, attempts, nextAttemptAt, lastError, id)
	if err != nil {
		return fmt.Errorf("failed to release job: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// RequeueStale resets jobs stuck in processing since before staleBefore back
// to pending. Crash recovery for a worker that died mid-batch.
func (r *Repository) RequeueStale(ctx context.Context, staleBefore time.Time) (int64, error) {
	query := `
		UPDATE outbox_jobs
		SET status = 'pending', updated_at = now()
		WHERE status = 'processing' AND updated_at < $1;
    `

	res, err := r.db.ExecContext(ctx, query, staleBefore)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue stale jobs: %w", err)
	}

	return res.RowsAffected()
}

// GetJobByID retrieves a single job.
func (r *Repository) GetJobByID(ctx context.Context, id uuid.UUID) (model.Job, error) {
	query := `
		SELECT id, channel, template_key, user_id, payload,
		       COALESCE(dedupe_key, ''), scheduled_at, next_attempt_at,
		       attempts, max_attempts, status, COALESCE(last_error, ''),
		       created_at, updated_at
		FROM outbox_jobs
		WHERE id = $1;
    `

	row := r.db.Master.QueryRowContext(ctx, query, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Job{}, ErrJobNotFound
		}
		return model.Job{}, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// DeleteTerminalOlderThan removes sent/failed/skipped jobs older than the
// retention window and returns how many rows were deleted.
func (r *Repository) DeleteTerminalOlderThan(ctx context.Context, olderThanDays int) (int64, error) {
	query := `
		DELETE FROM outbox_jobs
		WHERE status IN ('sent', 'failed', 'skipped')
		  AND created_at < now() - ($1 * interval '1 day');
    `

	res, err := r.db.ExecContext(ctx, query, olderThanDays)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old jobs: %w", err)
	}

	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (model.Job, error) {
	var (
		job     model.Job
		payload []byte
	)

	err := row.Scan(
		&job.ID, &job.Channel, &job.TemplateKey, &job.UserID, &payload,
		&job.DedupeKey, &job.ScheduledAt, &job.NextAttemptAt,
		&job.Attempts, &job.MaxAttempts, &job.Status, &job.LastError,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return model.Job{}, err
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &job.Payload); err != nil {
			return model.Job{}, fmt.Errorf("unmarshal payload: %w", err)
		}
	}

	return job, nil
}
