package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrled/skyval/internal/board"
	"github.com/mrled/skyval/internal/presenter"
	"github.com/mrled/skyval/internal/repository"
	"github.com/mrled/skyval/internal/usecase/check"
	"github.com/spf13/cobra"
)

var checkFlags struct {
	PersistenceFlags
	ValidationFlags
	ShowBoard bool
}

var checkCmd = &cobra.Command{
	Use:           "check <board> [board...]",
	Short:         "Check whether boards are valid finished Skyscrapers boards",
	GroupID:       "boards",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Check loads each board and reports whether it is a valid finished board.

A board is valid when:
  1. No cell is still unresolved (?)
  2. Every interior row holds each height 1-5 exactly once
  3. Every left and right hint matches the number of visible buildings
  4. Every top and bottom hint matches the number of visible buildings

With --strict, every interior column must also hold each height exactly once.

Boards are read from local files or from S3 (s3://bucket/key). Files ending
in .yaml or .yml are read as YAML documents with a "rows" list; anything
else is read as seven lines of text.

When a JSON file or DynamoDB table is given, each verdict is stored, keyed
by board ID and source. Use --dry-run to check without storing.

Examples:
  # Check a board
  skyval check ./board.txt

  # Check several boards, showing each one
  skyval check --show-board ./a.txt ./b.yaml

  # Check a board stored in S3 and record the verdict
  skyval check --dynamodb-table verdicts s3://boards/daily.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		boardLoader, err := newBoardLoader(ctx, args)
		if err != nil {
			return ExitWithCode(ExitCodeError, err)
		}

		opts := []check.Option{check.WithLogger(slog.Default())}
		if checkFlags.repositoryConfig().Configured() && !checkFlags.DryRun {
			repo, err := repository.NewRepository(ctx, checkFlags.repositoryConfig())
			if err != nil {
				return ExitWithCode(ExitCodeError, err)
			}
			opts = append(opts, check.WithRepository(repo))
		}

		checkUC := check.NewCheckUseCase(boardLoader, checkFlags.newService(), opts...)

		var invalid, failed int
		for _, ref := range args {
			record, err := checkUC.Check(ctx, ref)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: error: %v\n", ref, err)
				failed++
				continue
			}

			fmt.Fprintln(cmd.OutOrStdout(), presenter.FormatVerdict(record))
			if checkFlags.ShowBoard {
				if b, err := board.Parse(record.Rows); err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), presenter.RenderBoard(b))
				}
			}
			if !record.Valid {
				invalid++
			}
		}

		if failed > 0 {
			return ExitWithCode(ExitCodeError, fmt.Errorf("%d of %d board(s) could not be checked", failed, len(args)))
		}
		if invalid > 0 {
			return ExitWithCode(ExitCodeInvalid, fmt.Errorf("%d of %d board(s) invalid", invalid, len(args)))
		}
		return nil
	},
}

func init() {
	addPersistenceFlags(checkCmd, &checkFlags.PersistenceFlags)
	addValidationFlags(checkCmd, &checkFlags.ValidationFlags)
	checkCmd.Flags().BoolVar(&checkFlags.ShowBoard, "show-board", false, "Print each board after its verdict")
}
