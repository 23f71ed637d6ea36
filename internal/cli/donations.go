package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"unishift/internal/ledger"
)

func newDonationsCmd(open Opener) *cobra.Command {
	donationsCmd := &cobra.Command{
		Use:   "donations",
		Short: "Inspect recorded donations",
	}

	var page int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the donation history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			return withBackend(cmd, open, func(ctx context.Context, b *Backend) error {
				if b.Ledger == nil {
					return fmt.Errorf("no database configured")
				}
				p, err := b.Ledger.LoadPage(ctx, page)
				if err != nil {
					return fmt.Errorf("loading donations: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, b.Ledger.Listing(p))
				fmt.Fprintln(out)
				fmt.Fprintln(out, ledger.Footer(p))
				return nil
			})
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "page number (10 donations per page)")

	donationsCmd.AddCommand(listCmd)
	return donationsCmd
}
