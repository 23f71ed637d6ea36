// Package cli implements the ledgerctl administration commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"unishift/internal/domain"
	"unishift/internal/ledger"
)

// Backend is what the commands operate on.
type Backend struct {
	Migrate   func(ctx context.Context) error
	Ledger    *ledger.Workflow
	Questions domain.QuestionRepository
}

// Opener connects a Backend on first use. The returned func releases it.
type Opener func(ctx context.Context) (*Backend, func(), error)

// NewRootCmd builds the command tree. Connections open lazily so --help works
// without a database.
func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect and maintain the UniSHIFT donation ledger and question store",
		Long: `ledgerctl applies the database schema and prints the donation ledger
and the website question backlog.

Configuration is read from the same environment variables as the API and bot
(DATABASE_URL, QUESTION_STORE, QUESTIONS_FILE, DISPLAY_TIMEZONE).`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(open),
		newDonationsCmd(open),
		newQuestionsCmd(open),
	)
	return root
}

func withBackend(cmd *cobra.Command, open Opener, fn func(context.Context, *Backend) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, release, err := open(ctx)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer release()
	return fn(ctx, backend)
}

func newMigrateCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(ctx context.Context, b *Backend) error {
				if b.Migrate == nil {
					return fmt.Errorf("no database configured")
				}
				if err := b.Migrate(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema applied.")
				return nil
			})
		},
	}
}
