package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mrled/skyval/internal/model"
	"github.com/mrled/skyval/internal/presenter"
	"github.com/mrled/skyval/internal/repository"
	"github.com/spf13/cobra"
)

var showFlags struct {
	PersistenceFlags
	RecordFilterFlags
	Format string
	SortBy string
}

var showCmd = &cobra.Command{
	Use:           "show",
	Short:         "Show verdicts from the data store",
	GroupID:       "records",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Display stored verdicts filtered by board ID, source, failed rule or validity.

If no filters are specified, all records are displayed.

Examples:
  # Show all records
  skyval show --file ./verdicts.json

  # Show invalid boards only
  skyval show --file ./verdicts.json --invalid

  # Show boards that failed a visibility rule
  skyval show --file ./verdicts.json --rule horizontal-visibility --rule vertical-visibility

  # Show records sorted by validation time
  skyval show --file ./verdicts.json --sort validate-time

  # Show records in compact format
  skyval show --file ./verdicts.json --format compact

  # Draw every stored board
  skyval show --file ./verdicts.json --format board`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := repository.NewRepository(ctx, showFlags.repositoryConfig())
		if err != nil {
			return ExitWithCode(ExitCodeError, err)
		}

		allRecords, err := repo.List(ctx)
		if err != nil {
			return ExitWithCode(ExitCodeError, fmt.Errorf("failed to list records: %w", err))
		}

		records := model.FilterRecords(allRecords, showFlags.filter())
		model.SortRecords(records, showFlags.SortBy)

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "\nNo records found matching the specified criteria.")
			return nil
		}

		switch showFlags.Format {
		case "compact":
			displayRecordsCompact(out, records)
		case "board":
			displayRecordsBoard(out, records)
		default: // "detailed" or empty
			displayRecordsDetailed(out, records)
		}

		fmt.Fprintf(out, "\nTotal records: %d\n", len(records))
		if desc := showFlags.describe(); desc != "" {
			fmt.Fprintf(out, "Filters applied: %s\n", desc)
		}

		return nil
	},
}

// displayRecordsDetailed displays records grouped by board
func displayRecordsDetailed(out io.Writer, records []*model.VerdictRecord) {
	fmt.Fprintln(out, "\n=== Verdict Records ===")

	grouped := model.GroupByBoardID(records)
	seen := make(map[string]bool)

	// Keep the sort order of the first record of each board
	for _, first := range records {
		if seen[first.BoardID] {
			continue
		}
		seen[first.BoardID] = true

		boardRecords := grouped[first.BoardID]
		fmt.Fprintf(out, "\nBoard ID: %s\n", first.BoardID)
		fmt.Fprintf(out, "Rows: %s\n", strings.Join(first.Rows, " "))
		fmt.Fprintf(out, "Sources (%d):\n", len(boardRecords))

		for _, record := range boardRecords {
			fmt.Fprintf(out, "  - %s (validated: %s, rev: %d)\n",
				presenter.FormatVerdict(record),
				presenter.FormatTimeSince(record.ValidateTime),
				record.Rev)
		}
	}
}

// displayRecordsCompact displays records one per line
func displayRecordsCompact(out io.Writer, records []*model.VerdictRecord) {
	fmt.Fprintln(out, "\n=== Verdict Records (Compact) ===")
	fmt.Fprintf(out, "%-40s %-8s %-22s %-15s %s\n", "Source", "Verdict", "Failed Rule", "Board ID", "Last Validated")
	fmt.Fprintln(out, strings.Repeat("-", 100))

	for _, record := range records {
		verdict := "invalid"
		if record.Valid {
			verdict = "valid"
		}
		fmt.Fprintf(out, "%-40s %-8s %-22s %-15s %s\n",
			truncateString(record.Source, 38),
			verdict,
			record.FailedRule,
			truncateString(record.BoardID, 13),
			presenter.FormatTimeSinceCompact(record.ValidateTime))
	}
}

// displayRecordsBoard draws each stored board under its verdict
func displayRecordsBoard(out io.Writer, records []*model.VerdictRecord) {
	for _, record := range records {
		fmt.Fprintf(out, "\n%s\n", presenter.FormatVerdict(record))
		b, err := record.Board()
		if err != nil {
			fmt.Fprintf(out, "  (stored rows do not form a board: %v)\n", err)
			continue
		}
		fmt.Fprint(out, presenter.RenderBoard(b))
	}
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func init() {
	addPersistenceFlags(showCmd, &showFlags.PersistenceFlags)
	addRecordFilterFlags(showCmd, &showFlags.RecordFilterFlags)

	showCmd.Flags().StringVar(&showFlags.Format, "format", "detailed", "Output format: detailed, compact or board")
	showCmd.Flags().StringVar(&showFlags.SortBy, "sort", "", "Sort by: board, source, validate-time, or rule")
}
