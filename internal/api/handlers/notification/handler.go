package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/kraalhub/notifier/internal/api/respond"
	"github.com/kraalhub/notifier/internal/model"
	"github.com/kraalhub/notifier/internal/repository/directory"
	"github.com/kraalhub/notifier/internal/repository/outbox"
	"github.com/kraalhub/notifier/internal/service/notification"
	"github.com/kraalhub/notifier/internal/worker"
)

// notificationService defines the interface that the Handler depends on.
//
// It abstracts enqueueing, job lookup, preference management, unsubscribe
// and retention cleanup.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	Enqueue(ctx context.Context, input notification.EnqueueInput) (uuid.UUID, error)
	GetJob(ctx context.Context, id uuid.UUID) (model.Job, error)
	GetPreferences(ctx context.Context, userID string) (model.Prefs, error)
	UpdatePreferences(ctx context.Context, userID string, upd notification.PrefsUpdate) (model.Prefs, error)
	Unsubscribe(ctx context.Context, token string) (string, error)
	CleanupOldJobs(ctx context.Context, olderThanDays int) (int64, error)
}

type dispatcher interface {
	RunOnce(ctx context.Context, limit int) worker.Summary
}

// Handler handles HTTP requests for the notification outbox.
type Handler struct {
	service    notificationService
	dispatcher dispatcher
}

// NewHandler creates a new Handler instance.
func NewHandler(s notificationService, d dispatcher) *Handler {
	return &Handler{service: s, dispatcher: d}
}

// Enqueue handles HTTP POST requests to append one notification job.
//
// It decodes and validates the request body, stores the job and returns its
// id. Delivery happens asynchronously.
func (h *Handler) Enqueue(c *ginext.Context) {
	var input notification.EnqueueInput

	if err := json.NewDecoder(c.Request.Body).Decode(&input); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	id, err := h.service.Enqueue(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, notification.ErrValidation) {
			zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("template_key", input.TemplateKey).Msg("failed to enqueue notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

// GetJob handles HTTP GET requests to retrieve one job and its status.
func (h *Handler) GetJob(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Interface("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, outbox.ErrJobNotFound) {
			zlog.Logger.Warn().Interface("id", id).Msg("job not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("job not found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("id", id).Msg("failed to get job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, job)
}

// Run handles HTTP POST requests to trigger one dispatch batch.
//
// The worker already polls on its own interval; this endpoint exists for
// operators and tests that want a batch processed right now.
func (h *Handler) Run(c *ginext.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid limit"))
			return
		}
		limit = n
	}

	summary := h.dispatcher.RunOnce(c.Request.Context(), limit)
	respond.OK(c.Writer, summary)
}

// Cleanup handles HTTP POST requests to delete old terminal jobs.
func (h *Handler) Cleanup(c *ginext.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid days"))
			return
		}
		days = n
	}

	deleted, err := h.service.CleanupOldJobs(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, notification.ErrValidation) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to clean up old jobs")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int64{"deleted": deleted})
}

// GetPreferences handles HTTP GET requests for a user's notification
// preferences. Users who never saved preferences get the defaults.
func (h *Handler) GetPreferences(c *ginext.Context) {
	userID := c.Param("id")
	if userID == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing user id"))
		return
	}

	prefs, err := h.service.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to get preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, prefs)
}

// UpdatePreferences handles HTTP PUT requests with a partial preference
// update. Fields absent from the body are left unchanged.
func (h *Handler) UpdatePreferences(c *ginext.Context) {
	userID := c.Param("id")
	if userID == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing user id"))
		return
	}

	var upd notification.PrefsUpdate
	if err := json.NewDecoder(c.Request.Body).Decode(&upd); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	prefs, err := h.service.UpdatePreferences(c.Request.Context(), userID, upd)
	if err != nil {
		if errors.Is(err, notification.ErrValidation) {
			zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to update preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, prefs)
}

// Unsubscribe handles requests from email unsubscribe links. The token is
// opaque; resolving it to a user and forcing email off happens in the service.
func (h *Handler) Unsubscribe(c *ginext.Context) {
	token := c.Param("token")
	if token == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing token"))
		return
	}

	userID, err := h.service.Unsubscribe(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			zlog.Logger.Warn().Msg("unsubscribe token not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("unknown token"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to unsubscribe user")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]string{"user_id": userID, "email": "disabled"})
}
