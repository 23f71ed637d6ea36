package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"unishift/internal/adapter/feed"
	"unishift/internal/adapter/repo"
	"unishift/internal/bot"
	"unishift/internal/db"
	"unishift/internal/domain"
	"unishift/internal/infra"
	"unishift/internal/infra/smtp"
	"unishift/internal/ledger"
	"unishift/internal/relay"
	"unishift/internal/storage"
)

func main() {
	infra.LoadDotEnv()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "bot")
	if err := cfg.ValidateBot(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg, "unishift-bot")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()
	runner := infra.NewSQLRunner(pool, logger)

	// Question store and the feed that announces new records in it.
	var (
		questions    domain.QuestionRepository
		questionFeed domain.QuestionFeed
	)
	switch cfg.QuestionStore {
	case infra.QuestionStoreFile:
		store, err := storage.NewFileStore(cfg.QuestionsFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open questions file")
		}
		questions = store
		questionFeed = feed.NewPollFeed(store, cfg.QuestionPollInterval, logger)
	default:
		pgQuestions := repo.NewQuestionRepository(runner)
		questions = pgQuestions
		questionFeed = feed.NewNotifyFeed(cfg.DatabaseURL, db.NotifyChannel, pgQuestions, logger)
	}

	mailer, err := smtp.NewMailer(smtp.Options{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
		From:     cfg.EmailFrom,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure mailer")
	}

	ledgerFlow := ledger.New(repo.NewDonationRepository(runner), logger, ledger.WithLocation(cfg.Location()))

	b, err := bot.New(bot.Options{
		Token:   cfg.DiscordToken,
		AppID:   cfg.DiscordAppID,
		GuildID: cfg.DiscordGuildID,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bot")
	}
	notifier := bot.NewChannelNotifier(b.Session(), cfg.DiscordQuestionsChannelID)
	relayFlow := relay.New(questions, mailer, notifier, logger, relay.WithComposer(relay.NewComposer(cfg.OrgName)))

	if err := b.Start(ctx, bot.NewHandler(ledgerFlow, relayFlow, logger)); err != nil {
		logger.Fatal().Err(err).Msg("failed to start bot")
	}
	defer b.Close()

	go func() {
		if err := relayFlow.Run(ctx, questionFeed); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("question relay stopped")
			stop()
		}
	}()

	logger.Info().Str("store", cfg.QuestionStore).Msg("bot running")
	<-ctx.Done()
	logger.Info().Msg("bot stopped")
}
