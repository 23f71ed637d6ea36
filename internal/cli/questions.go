package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"unishift/internal/domain"
)

func newQuestionsCmd(open Opener) *cobra.Command {
	questionsCmd := &cobra.Command{
		Use:   "questions",
		Short: "Inspect website questions",
	}

	var status string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List questions, newest first",
		Long: `List every stored question, newest first.

Optionally filter by status using --status (new or responded).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.QuestionStatus(strings.ToLower(status))
			if filter != "" && filter != domain.QuestionStatusNew && filter != domain.QuestionStatusResponded {
				return fmt.Errorf("invalid --status %q (want new or responded)", status)
			}
			return withBackend(cmd, open, func(ctx context.Context, b *Backend) error {
				items, err := b.Questions.List(ctx)
				if err != nil {
					return fmt.Errorf("listing questions: %w", err)
				}
				out := cmd.OutOrStdout()
				shown := 0
				fmt.Fprintf(out, "%-36s  %-9s  %-16s  %s\n", "ID", "STATUS", "RECEIVED", "EMAIL")
				for _, q := range items {
					if filter != "" && q.Status != filter {
						continue
					}
					fmt.Fprintf(out, "%-36s  %-9s  %-16s  %s\n", q.ID, q.Status, q.CreatedAt.UTC().Format("2006-01-02 15:04"), q.Email)
					shown++
				}
				if shown == 0 {
					fmt.Fprintln(out, "No questions found.")
				}
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&status, "status", "", "only show questions with this status")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print question counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(ctx context.Context, b *Backend) error {
				stats, err := b.Questions.Stats(ctx, time.Now())
				if err != nil {
					return fmt.Errorf("loading stats: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total:      %d\n", stats.Total)
				fmt.Fprintf(out, "New:        %d\n", stats.New)
				fmt.Fprintf(out, "Responded:  %d\n", stats.Responded)
				fmt.Fprintf(out, "This month: %d\n", stats.ThisMonth)
				return nil
			})
		},
	}

	questionsCmd.AddCommand(listCmd, statsCmd)
	return questionsCmd
}
