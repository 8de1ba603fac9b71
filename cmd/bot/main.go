package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aibekm/codeassist-bot/config"
	"github.com/aibekm/codeassist-bot/internal/health"
	"github.com/aibekm/codeassist-bot/internal/infrastructure/postgres"
	ctxlog "github.com/aibekm/codeassist-bot/internal/log"
	"github.com/aibekm/codeassist-bot/internal/metrics"
	"github.com/aibekm/codeassist-bot/internal/ops"
	"github.com/aibekm/codeassist-bot/internal/pomodoro"
	"github.com/aibekm/codeassist-bot/internal/quote"
	"github.com/aibekm/codeassist-bot/internal/reminder"
	"github.com/aibekm/codeassist-bot/internal/scheduler"
	"github.com/aibekm/codeassist-bot/internal/telegram"
	"github.com/aibekm/codeassist-bot/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}
	logger.Info("db ready")

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		stop()
		log.Fatalf("telegram: %v", err)
	}
	logger.Info("bot authorized", "username", api.Self.UserName)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	prefRepo := postgres.NewWeatherPrefRepository(pool)

	sender := telegram.NewSender(api, logger)
	sched := scheduler.New(logger, time.Duration(cfg.TickIntervalSec)*time.Second)

	reminderMgr := reminder.NewManager(sched, sender, logger)
	weatherMgr := weather.NewManager(
		sched,
		weather.NewClient(cfg.WeatherURL, cfg.WeatherAPIKey),
		sender,
		prefRepo,
		logger,
	)
	pomodoroMgr := pomodoro.NewManager(sched, sender, logger,
		time.Duration(cfg.WorkMinutes)*time.Minute,
		time.Duration(cfg.BreakMinutes)*time.Minute,
	)
	quoteClient := quote.NewClient(cfg.QuoteURL)

	router := telegram.NewRouter(sender, logger, reminderMgr, weatherMgr, pomodoroMgr,
		quoteClient, userRepo, projectRepo, taskRepo)

	go sched.Run(ctx)

	opsSrv := ops.NewServer(":"+cfg.OpsPort, logger, checker, sched)
	go func() {
		logger.Info("ops server started", "port", cfg.OpsPort)
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server", "error", err)
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := api.GetUpdatesChan(u)

	logger.Info("bot is running")

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case upd := <-updates:
			router.HandleUpdate(ctx, upd)
		}
	}

	stop()
	logger.Info("shutting down...")
	api.StopReceivingUpdates()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown", "error", err)
	}

	logger.Info("bot shut down")
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
