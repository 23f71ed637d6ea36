package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"unishift/internal/adapter/repo"
	"unishift/internal/domain"
	"unishift/internal/http/handlers"
	httpapi "unishift/internal/http/httpapi"
	"unishift/internal/infra"
	"unishift/internal/infra/geoip"
	"unishift/internal/storage"
)

func main() {
	// Load .env when present.
	infra.LoadDotEnv()

	// Config and logger.
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")
	if err := cfg.ValidateAPI(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	questions, closeStore, err := openQuestionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("store", cfg.QuestionStore).Msg("failed to open question store")
	}
	defer closeStore()

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	defer geo.Close()

	app := handlers.NewApp(questions, geo, logger)
	router := httpapi.NewRouter(app, logger, httpapi.Options{
		AllowedOrigins:  cfg.AllowedOrigin,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("store", cfg.QuestionStore).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func openQuestionStore(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.QuestionRepository, func(), error) {
	if cfg.QuestionStore == infra.QuestionStoreFile {
		store, err := storage.NewFileStore(cfg.QuestionsFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	// Postgres pool.
	pool, err := infra.NewDBPool(ctx, cfg, "unishift-api")
	if err != nil {
		return nil, nil, err
	}
	runner := infra.NewSQLRunner(pool, logger)
	return repo.NewQuestionRepository(runner), pool.Close, nil
}
