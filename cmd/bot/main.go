package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/frediicrewii/facting/internal/adapters/api"
	"github.com/frediicrewii/facting/internal/adapters/generator"
	"github.com/frediicrewii/facting/internal/adapters/telegram"
	"github.com/frediicrewii/facting/internal/domain"
	"github.com/frediicrewii/facting/internal/infra/config"
	"github.com/frediicrewii/facting/internal/infra/gemini"
	httpinfra "github.com/frediicrewii/facting/internal/infra/http"
	"github.com/frediicrewii/facting/internal/infra/log"
	"github.com/frediicrewii/facting/internal/infra/metrics"
	"github.com/frediicrewii/facting/internal/usecase/activity"
	"github.com/frediicrewii/facting/internal/usecase/broadcast"
	"github.com/frediicrewii/facting/internal/usecase/directory"
	"github.com/frediicrewii/facting/internal/usecase/reconcile"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	topic, err := domain.ParseTopic(cfg.Broadcast.Topic)
	if err != nil {
		logger.Fatal().Err(err).Msg("некорректная тема в конфиге")
	}

	tg, err := telegram.NewClient(cfg.Telegram.Token, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать клиента Bot API")
	}

	var gen domain.Generator
	if cfg.Gemini.APIKey != "" {
		client := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, time.Duration(cfg.Gemini.TimeoutSec)*time.Second)
		gen = generator.NewGemini(client, cfg.Gemini.TextModel, cfg.Gemini.ImageModel, time.Duration(cfg.Gemini.TimeoutSec)*time.Second)
	} else {
		logger.Warn().Msg("GEMINI_API_KEY не задан, используется офлайн-генератор")
		gen = generator.NewSimple()
	}

	journal := activity.NewJournal(logger)
	dir := directory.NewService()
	scheduler := broadcast.NewService(dir, gen, tg, journal, broadcast.Settings{
		Topic:           topic,
		IntervalMinutes: cfg.Broadcast.IntervalMinutes,
		RatePerSec:      cfg.Broadcast.RatePerSec,
	}, logger)
	reconciler := reconcile.NewService(dir, tg, journal, logger)

	srv := httpinfra.NewServer(logger)
	handler := api.NewHandler(scheduler, dir, reconciler, journal, logger)
	handler.Routes(srv.Router)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logger.Error().Err(err).Msg("HTTP сервер остановлен")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	logger.Info().Msg("остановка бота")

	scheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("не удалось корректно остановить HTTP сервер")
	}
}

var (
	_ domain.Generator    = (*generator.Gemini)(nil)
	_ domain.Generator    = (*generator.Simple)(nil)
	_ domain.Messenger    = (*telegram.Client)(nil)
	_ domain.UpdateSource = (*telegram.Client)(nil)
)
