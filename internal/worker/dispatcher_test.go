package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/kraalhub/notifier/internal/mocks/worker"
	"github.com/kraalhub/notifier/internal/model"
	"github.com/kraalhub/notifier/internal/template"
)

type dispatcherMocks struct {
	repo       *mocks.MockoutboxRepo
	prefs      *mocks.MockprefsStore
	counter    *mocks.MocksendCounter
	renderer   *mocks.Mockrenderer
	email      *mocks.MockTransport
	inapp      *mocks.MockTransport
	strategy   retry.Strategy
	dispatcher *Dispatcher
}

func setupDispatcher(t *testing.T) *dispatcherMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &dispatcherMocks{
		repo:     mocks.NewMockoutboxRepo(ctrl),
		prefs:    mocks.NewMockprefsStore(ctrl),
		counter:  mocks.NewMocksendCounter(ctrl),
		renderer: mocks.NewMockrenderer(ctrl),
		email:    mocks.NewMockTransport(ctrl),
		inapp:    mocks.NewMockTransport(ctrl),
		strategy: retry.Strategy{Attempts: 1, Delay: time.Millisecond},
	}

	m.dispatcher = NewDispatcher(
		m.repo, m.prefs, m.counter, m.renderer,
		map[model.Channel]Transport{
			model.ChannelEmail: m.email,
			model.ChannelInApp: m.inapp,
		},
		Options{
			SendTimeout: time.Second,
			BaseBackoff: time.Second,
			StaleAfter:  time.Minute,
			Retry:       m.strategy,
		},
	)

	return m
}

func (m *dispatcherMocks) expectClaim(jobs []model.Job) {
	m.repo.EXPECT().RequeueStale(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	m.repo.EXPECT().ClaimDue(gomock.Any(), gomock.Any()).Return(jobs, nil)
}

func emailJob(attempts int) model.Job {
	return model.Job{
		ID:          uuid.New(),
		Channel:     model.ChannelEmail,
		TemplateKey: "buy_request.posted",
		UserID:      "user-1",
		Payload:     map[string]string{"species": "Cattle", "province": "Gauteng"},
		Attempts:    attempts,
		MaxAttempts: 5,
		Status:      model.StatusProcessing,
	}
}

func TestDispatcher_RunOnce_SendsAndCounts(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(model.DefaultPrefs("user-1"), nil)
	m.counter.EXPECT().Count(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(0, nil)
	m.renderer.EXPECT().Render(job.TemplateKey, job.Payload).
		Return(template.Message{Subject: "New Buy Request • Cattle Gauteng"}, nil)
	m.email.EXPECT().Deliver(gomock.Any(), "user-1", gomock.Any()).Return(nil)
	m.repo.EXPECT().MarkSent(gomock.Any(), job.ID).Return(nil)
	m.counter.EXPECT().Incr(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(nil)

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 0}, summary)
}

func TestDispatcher_RunOnce_DedupeSkips(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)
	job.DedupeKey = "br-123-email"

	m.expectClaim([]model.Job{job})
	m.repo.EXPECT().HasSentSibling(gomock.Any(), "br-123-email", job.ID).Return(true, nil)
	m.repo.EXPECT().MarkSkipped(gomock.Any(), job.ID, "duplicate suppressed").Return(nil)

	// No preference read, no render, no delivery attempt, no counter change.
	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 0}, summary)
}

func TestDispatcher_RunOnce_FirstOfDedupePairStillSends(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)
	job.DedupeKey = "br-123-email"

	m.expectClaim([]model.Job{job})
	m.repo.EXPECT().HasSentSibling(gomock.Any(), "br-123-email", job.ID).Return(false, nil)
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(model.DefaultPrefs("user-1"), nil)
	m.counter.EXPECT().Count(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(0, nil)
	m.renderer.EXPECT().Render(job.TemplateKey, job.Payload).Return(template.Message{}, nil)
	m.email.EXPECT().Deliver(gomock.Any(), "user-1", gomock.Any()).Return(nil)
	m.repo.EXPECT().MarkSent(gomock.Any(), job.ID).Return(nil)
	m.counter.EXPECT().Incr(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(nil)

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 0}, summary)
}

func TestDispatcher_RunOnce_PreferenceBlockSkips(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)

	prefs := model.DefaultPrefs("user-1")
	prefs.EmailGlobal = false

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(prefs, nil)
	m.repo.EXPECT().MarkSkipped(gomock.Any(), job.ID, "blocked by preferences").Return(nil)

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 0}, summary)
}

func TestDispatcher_RunOnce_MutedUserSkips(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)

	prefs := model.DefaultPrefs("user-1")
	prefs.MaxPerDay = 0

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(prefs, nil)
	m.repo.EXPECT().MarkSkipped(gomock.Any(), job.ID, "recipient muted").Return(nil)

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 0}, summary)
}

func TestDispatcher_RunOnce_DailyCapSkips(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)

	prefs := model.DefaultPrefs("user-1")
	prefs.MaxPerDay = 3

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(prefs, nil)
	m.counter.EXPECT().Count(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(3, nil)
	m.repo.EXPECT().MarkSkipped(gomock.Any(), job.ID, "daily cap reached").Return(nil)

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 0}, summary)
}

func TestDispatcher_RunOnce_CounterOutageStillDelivers(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(model.DefaultPrefs("user-1"), nil)
	m.counter.EXPECT().Count(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(0, errors.New("redis down"))
	m.renderer.EXPECT().Render(job.TemplateKey, job.Payload).Return(template.Message{}, nil)
	m.email.EXPECT().Deliver(gomock.Any(), "user-1", gomock.Any()).Return(nil)
	m.repo.EXPECT().MarkSent(gomock.Any(), job.ID).Return(nil)
	m.counter.EXPECT().Incr(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(errors.New("redis down"))

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 0}, summary)
}

func TestDispatcher_RunOnce_UnknownTemplateFailsPermanently(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)
	job.TemplateKey = "no.such.template"

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(model.DefaultPrefs("user-1"), nil)
	m.counter.EXPECT().Count(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(0, nil)
	m.renderer.EXPECT().Render("no.such.template", job.Payload).
		Return(template.Message{}, template.ErrUnknownTemplate)

	// Straight to failed: no Release, so attempts stay untouched, and no
	// delivery is tried.
	m.repo.EXPECT().MarkFailed(gomock.Any(), job.ID, gomock.Any()).Return(nil)

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 1}, summary)
}

func TestDispatcher_RunOnce_UnknownChannelFailsPermanently(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)
	job.Channel = model.ChannelPush // no push transport registered in setup

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(model.DefaultPrefs("user-1"), nil)
	m.counter.EXPECT().Count(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(0, nil)
	m.renderer.EXPECT().Render(job.TemplateKey, job.Payload).Return(template.Message{}, nil)
	m.repo.EXPECT().MarkFailed(gomock.Any(), job.ID, gomock.Any()).Return(nil)

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 1}, summary)
}

func TestDispatcher_RunOnce_InvalidChannelFailsBeforePreferenceGate(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(0)
	job.Channel = "sms" // outside the known channel set

	m.expectClaim([]model.Job{job})
	// No preference lookup: the job must fail as unknown channel, not get
	// skipped as a user block.
	m.repo.EXPECT().
		MarkFailed(gomock.Any(), job.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, lastError string) error {
			assert.Contains(t, lastError, "unknown channel")
			return nil
		})

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 1}, summary)
}

func TestDispatcher_RunOnce_TransportFailureReleasesWithBackoff(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(1) // second attempt coming up

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(model.DefaultPrefs("user-1"), nil)
	m.counter.EXPECT().Count(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(0, nil)
	m.renderer.EXPECT().Render(job.TemplateKey, job.Payload).Return(template.Message{}, nil)
	m.email.EXPECT().Deliver(gomock.Any(), "user-1", gomock.Any()).Return(errors.New("smtp timeout"))

	before := time.Now()
	m.repo.EXPECT().
		Release(gomock.Any(), job.ID, 2, gomock.Any(), "smtp timeout").
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, next time.Time, _ string) error {
			// attempts=1 doubles the base backoff: next >= now + 2s.
			assert.True(t, next.Sub(before) >= 2*time.Second)
			return nil
		})

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 1}, summary)
}

func TestDispatcher_RunOnce_RetryExhaustion(t *testing.T) {
	m := setupDispatcher(t)
	job := emailJob(4) // max_attempts = 5, this failure is the last

	m.expectClaim([]model.Job{job})
	m.prefs.EXPECT().GetPreferences(gomock.Any(), "user-1").Return(model.DefaultPrefs("user-1"), nil)
	m.counter.EXPECT().Count(gomock.Any(), m.strategy, "user-1", gomock.Any()).Return(0, nil)
	m.renderer.EXPECT().Render(job.TemplateKey, job.Payload).Return(template.Message{}, nil)
	m.email.EXPECT().Deliver(gomock.Any(), "user-1", gomock.Any()).Return(errors.New("smtp timeout"))
	m.repo.EXPECT().MarkFailed(gomock.Any(), job.ID, "smtp timeout").Return(nil)

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 1, Errors: 1}, summary)
}

func TestDispatcher_RunOnce_BatchIsolation(t *testing.T) {
	m := setupDispatcher(t)

	jobs := make([]model.Job, 5)
	for i := range jobs {
		jobs[i] = emailJob(0)
		jobs[i].UserID = "user-" + string(rune('1'+i))
	}

	m.expectClaim(jobs)

	for i, job := range jobs {
		job := job
		m.prefs.EXPECT().GetPreferences(gomock.Any(), job.UserID).Return(model.DefaultPrefs(job.UserID), nil)
		m.counter.EXPECT().Count(gomock.Any(), m.strategy, job.UserID, gomock.Any()).Return(0, nil)
		m.renderer.EXPECT().Render(job.TemplateKey, job.Payload).Return(template.Message{}, nil)

		if i == 2 {
			m.email.EXPECT().Deliver(gomock.Any(), job.UserID, gomock.Any()).
				DoAndReturn(func(context.Context, string, template.Message) error {
					panic("transport blew up")
				})
			// A panic is booked as a failed attempt and retried later.
			m.repo.EXPECT().Release(gomock.Any(), job.ID, 1, gomock.Any(), gomock.Any()).Return(nil)
		} else {
			m.email.EXPECT().Deliver(gomock.Any(), job.UserID, gomock.Any()).Return(nil)
			m.repo.EXPECT().MarkSent(gomock.Any(), job.ID).Return(nil)
			m.counter.EXPECT().Incr(gomock.Any(), m.strategy, job.UserID, gomock.Any()).Return(nil)
		}
	}

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 5, Errors: 1}, summary)
}

func TestDispatcher_RunOnce_ClaimFailure(t *testing.T) {
	m := setupDispatcher(t)

	m.repo.EXPECT().RequeueStale(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	m.repo.EXPECT().ClaimDue(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	summary := m.dispatcher.RunOnce(context.Background(), 10)
	assert.Equal(t, Summary{Processed: 0, Errors: 1}, summary)
}

func TestDispatcher_Run_StopsOnCancel(t *testing.T) {
	m := setupDispatcher(t)

	m.repo.EXPECT().RequeueStale(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	m.repo.EXPECT().ClaimDue(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.dispatcher.Run(ctx, 10*time.Millisecond, 5)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop on context cancel")
	}
}
