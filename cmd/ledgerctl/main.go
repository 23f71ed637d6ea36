package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"unishift/internal/adapter/repo"
	"unishift/internal/cli"
	"unishift/internal/db"
	"unishift/internal/infra"
	"unishift/internal/ledger"
	"unishift/internal/storage"
)

func main() {
	infra.LoadDotEnv()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Commands print their own output.
	logger := infra.NewLogger(cfg.AppEnv, "ledgerctl").Level(zerolog.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(opener(cfg, logger)).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func opener(cfg *infra.Config, logger zerolog.Logger) cli.Opener {
	return func(ctx context.Context) (*cli.Backend, func(), error) {
		backend := &cli.Backend{}
		release := func() {}

		if cfg.DatabaseURL != "" {
			pool, err := infra.NewDBPool(ctx, cfg, "unishift-ledgerctl")
			if err != nil {
				return nil, nil, err
			}
			release = pool.Close
			runner := infra.NewSQLRunner(pool, logger)
			backend.Migrate = func(ctx context.Context) error { return db.Migrate(ctx, runner) }
			backend.Ledger = ledger.New(repo.NewDonationRepository(runner), logger, ledger.WithLocation(cfg.Location()))
			backend.Questions = repo.NewQuestionRepository(runner)
		}

		if cfg.QuestionStore == infra.QuestionStoreFile {
			store, err := storage.NewFileStore(cfg.QuestionsFile)
			if err != nil {
				release()
				return nil, nil, err
			}
			backend.Questions = store
		}
		if backend.Questions == nil {
			release()
			return nil, nil, errors.New("DATABASE_URL is required when QUESTION_STORE=postgres")
		}
		return backend, release, nil
	}
}
