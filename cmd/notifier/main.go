package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	apihandler "github.com/kraalhub/notifier/internal/api/handlers/notification"
	"github.com/kraalhub/notifier/internal/api/router"
	"github.com/kraalhub/notifier/internal/api/server"
	"github.com/kraalhub/notifier/internal/config"
	"github.com/kraalhub/notifier/internal/counter"
	"github.com/kraalhub/notifier/internal/model"
	"github.com/kraalhub/notifier/internal/rabbitmq/consumer"
	eventhandler "github.com/kraalhub/notifier/internal/rabbitmq/handlers/event"
	"github.com/kraalhub/notifier/internal/rabbitmq/queue"
	"github.com/kraalhub/notifier/internal/repository/directory"
	"github.com/kraalhub/notifier/internal/repository/outbox"
	"github.com/kraalhub/notifier/internal/repository/prefs"
	notifsvc "github.com/kraalhub/notifier/internal/service/notification"
	"github.com/kraalhub/notifier/internal/template"
	"github.com/kraalhub/notifier/internal/worker"
	"github.com/kraalhub/notifier/pkg/email"
	"github.com/kraalhub/notifier/pkg/inapp"
	"github.com/kraalhub/notifier/pkg/push"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewEventQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create event queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	outboxRepo := outbox.NewRepository(db)
	prefsRepo := prefs.NewRepository(db)
	directoryRepo := directory.NewRepository(db)

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	sendCounter := counter.New(rdb.Client)
	templates := template.NewRegistry()

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
		directoryRepo,
	)
	inappRegistry := inapp.NewRegistry()
	pushClient := push.NewClient()

	transports := map[model.Channel]worker.Transport{
		model.ChannelEmail: emailClient,
		model.ChannelInApp: inappRegistry,
		model.ChannelPush:  pushClient,
	}

	dispatcher := worker.NewDispatcher(outboxRepo, prefsRepo, sendCounter, templates, transports, worker.Options{
		SendTimeout: cfg.Worker.SendTimeout,
		BaseBackoff: cfg.Worker.BaseBackoff,
		StaleAfter:  cfg.Worker.StaleAfter,
		Retry:       cfg.Retry,
	})

	service := notifsvc.NewService(outboxRepo, prefsRepo, directoryRepo, val)
	handler := apihandler.NewHandler(service, dispatcher)

	eventConsumer := consumer.New(q, eventhandler.NewHandler(service, templates))

	go dispatcher.Run(ctx, cfg.Worker.Interval, cfg.Worker.BatchSize)

	go func() {
		if err := eventConsumer.Run(ctx, cfg.Retry, cfg.RabbitMQ.ConsumerSize); err != nil {
			zlog.Logger.Error().Err(err).Msg("event consumer stopped")
		}
	}()

	go runRetention(ctx, service, cfg.Retention)

	r := router.New(handler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close master DB")
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Error().Err(err).Int("slave", i).Msg("failed to close slave DB")
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}

// runRetention deletes old terminal jobs on a fixed interval.
func runRetention(ctx context.Context, service *notifsvc.Service, cfg config.Retention) {
	if cfg.Days < 1 || cfg.Interval <= 0 {
		zlog.Logger.Info().Msg("retention cleanup disabled")
		return
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := service.CleanupOldJobs(ctx, cfg.Days); err != nil {
				zlog.Logger.Error().Err(err).Msg("retention cleanup failed")
			}
		}
	}
}
