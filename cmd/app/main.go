// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	"telegram-movie-bot/internal/application"
	"telegram-movie-bot/internal/config"
	"telegram-movie-bot/internal/domain/ports/repository"
	tele "telegram-movie-bot/internal/infra/adapters/telegram"
	"telegram-movie-bot/internal/infra/catalog"
	httpapi "telegram-movie-bot/internal/infra/http"
	"telegram-movie-bot/internal/infra/i18n"
	"telegram-movie-bot/internal/infra/logging"
	"telegram-movie-bot/internal/infra/memory"
	"telegram-movie-bot/internal/infra/metrics"
	red "telegram-movie-bot/internal/infra/redis"
	"telegram-movie-bot/internal/infra/scheduler"
	"telegram-movie-bot/internal/usecase"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	devMode := flag.Bool("dev", false, "console logging and no secret redaction")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	logger.Info().
		Str("version", version).
		Str("token", logging.Redact(cfg.Bot.Token, cfg.Runtime.Dev)).
		Str("channel", cfg.Channel.ID).
		Bool("dev", cfg.Runtime.Dev).
		Msg("starting movie bot")

	// ---- Metrics ----
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Catalog ----
	movies, err := catalog.Load(ctx, cfg.Catalog)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("catalog")
	}
	size, _ := movies.Count(ctx)
	metrics.SetCatalogSize(size)
	logger.Info().Str("source", cfg.Catalog.Source).Int("movies", size).Msg("catalog loaded")

	var refresh *scheduler.Scheduler
	if cfg.Catalog.RefreshInterval > 0 && cfg.Catalog.Source != "" && cfg.Catalog.Source != "static" {
		refresh = scheduler.NewScheduler(cfg.Catalog.RefreshInterval, catalog.NewReloader(cfg.Catalog, movies, logger), logger)
		refresh.Start(ctx)
	}

	// ---- User state + rate limiting ----
	var (
		users       repository.UserStateRepository
		rateLimiter tele.RateLimiter
	)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		users = red.NewUserStateRepo(redisClient)
		rateLimiter = red.NewRateLimiter(redisClient)
		logger.Info().Msg("user state: redis")
	} else {
		users = memory.NewUserStateRepo()
		rateLimiter = memory.NewRateLimiter()
		logger.Info().Msg("user state: memory (not persisted)")
	}

	// ---- Use cases ----
	catalogUC := usecase.NewCatalogUseCase(movies, users, logger)
	userUC := usecase.NewUserUseCase(users, catalogUC, logger)
	repostUC := usecase.NewRepostUseCase(movies, nil, logger)

	// ---- Facade ----
	translator, err := i18n.NewTranslator(i18n.LocalesFS, cfg.I18n.Lang)
	if err != nil {
		logger.Fatal().Err(err).Str("lang", cfg.I18n.Lang).Msg("i18n")
	}
	logger.Info().Str("lang", translator.Lang()).Msg("locale loaded")
	facade := application.NewBotFacade(catalogUC, userUC, repostUC, translator)

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(cfg, facade, translator, rateLimiter, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	repostUC.SetPublisher(botAdapter)

	// ---- HTTP ----
	server := httpapi.NewServer(cfg.HTTP, movies, logger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer stop()
		if err := botAdapter.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()
	go func() {
		defer wg.Done()
		defer stop()
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	<-ctx.Done()
	logger.Info().Msg("shutdown requested")
	if refresh != nil {
		refresh.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
	wg.Wait()
	logger.Info().Msg("bye")
}
