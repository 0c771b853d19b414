package commands

import (
	"context"
	"fmt"

	"github.com/mrled/skyval/internal/service/boardid"
	"github.com/spf13/cobra"
)

var boardidCmd = &cobra.Command{
	Use:     "boardid <board> [board...]",
	Short:   "Calculate board IDs",
	GroupID: "boards",
	Long: `Calculate the ID of each board: a version prefix and the base64 SHA-256 of its rows.

Stored verdicts are keyed by board ID, so the same board checked from two
sources shares an ID.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		boardLoader, err := newBoardLoader(ctx, args)
		if err != nil {
			return ExitWithCode(ExitCodeError, err)
		}

		for _, ref := range args {
			b, err := boardLoader.Load(ctx, ref)
			if err != nil {
				return ExitWithCode(ExitCodeError, fmt.Errorf("failed to load board %s: %w", ref, err))
			}
			if len(args) == 1 {
				fmt.Fprintln(cmd.OutOrStdout(), boardid.Calculate(b))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", boardid.Calculate(b), ref)
			}
		}

		return nil
	},
}
