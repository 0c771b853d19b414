package commands

import (
	"context"
	"fmt"

	"github.com/mrled/skyval/internal/repository"
	"github.com/mrled/skyval/internal/usecase/revalidate"
	"github.com/spf13/cobra"
)

var revalidateFlags struct {
	PersistenceFlags
	ValidationFlags
	RecordFilterFlags
}

var revalidateCmd = &cobra.Command{
	Use:           "revalidate",
	Short:         "Re-evaluate stored verdicts against the current rules",
	GroupID:       "records",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Revalidate re-evaluates every stored verdict using the stored rows.

It does not reload boards from their sources. A record is stale when its
verdict differs from a fresh evaluation (for example after turning on
--strict), when its rows no longer form a board, or when its board ID does
not match its rows.

By default stale verdicts are rewritten and records that cannot be
re-evaluated are dropped. Use --dry-run to see what would change.

Examples:
  # Re-evaluate everything with the column uniqueness rule
  skyval revalidate --file ./verdicts.json --strict

  # Dry run for a single source
  skyval revalidate --file ./verdicts.json --source ./board.txt --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := repository.NewRepository(ctx, revalidateFlags.repositoryConfig())
		if err != nil {
			return ExitWithCode(ExitCodeError, err)
		}

		revalidateUC := revalidate.NewRevalidateUseCase(repo, revalidateFlags.newService())
		out := cmd.OutOrStdout()

		if desc := revalidateFlags.describe(); desc != "" {
			fmt.Fprintf(out, "Filtering by %s\n", desc)
		} else {
			fmt.Fprintln(out, "No filters specified - checking all records")
		}

		var stale []revalidate.StaleRecordInfo
		if revalidateFlags.DryRun {
			fmt.Fprintln(out, "\n--- DRY RUN MODE (no changes will be made) ---")
			stale, err = revalidateUC.FindStale(ctx, revalidateFlags.filter())
		} else {
			stale, err = revalidateUC.FindStaleAndUpdate(ctx, revalidateFlags.filter())
		}
		if err != nil {
			return ExitWithCode(ExitCodeError, fmt.Errorf("revalidation failed: %w", err))
		}

		if len(stale) == 0 {
			fmt.Fprintln(out, "\n✓ All checked verdicts are current")
			return nil
		}

		if revalidateFlags.DryRun {
			fmt.Fprintf(out, "\n✗ Found %d stale record(s) that would be changed:\n\n", len(stale))
		} else {
			fmt.Fprintf(out, "\n✗ Found and updated %d stale record(s):\n\n", len(stale))
		}

		for i, info := range stale {
			action := "update"
			if info.Corrupt {
				action = "drop"
			}
			fmt.Fprintf(out, "%d. Source: %s\n", i+1, info.Record.Source)
			fmt.Fprintf(out, "   Board ID: %s\n", info.Record.BoardID)
			fmt.Fprintf(out, "   Reason: %s\n", info.Reason)
			fmt.Fprintf(out, "   Action: %s\n", action)
			fmt.Fprintln(out)
		}

		if revalidateFlags.DryRun {
			fmt.Fprintln(out, "(No changes made - dry run)")
		}

		return nil
	},
}

func init() {
	addPersistenceFlags(revalidateCmd, &revalidateFlags.PersistenceFlags)
	addValidationFlags(revalidateCmd, &revalidateFlags.ValidationFlags)
	addRecordFilterFlags(revalidateCmd, &revalidateFlags.RecordFilterFlags)
}
