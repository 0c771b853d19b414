package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mrled/skyval/internal/adapter/s3board"
	"github.com/mrled/skyval/internal/loader"
	"github.com/mrled/skyval/internal/model"
	"github.com/mrled/skyval/internal/repository"
	"github.com/mrled/skyval/internal/service/validation"
	"github.com/spf13/cobra"
)

// PersistenceFlags holds flags related to persistence and data storage options
type PersistenceFlags struct {
	FilePath       string
	DynamoTable    string
	DynamoEndpoint string
	DryRun         bool
}

// addPersistenceFlags adds common persistence-related flags to a command.
// The DynamoDB flags default to DYNAMODB_TABLE and DYNAMODB_ENDPOINT.
func addPersistenceFlags(cmd *cobra.Command, flags *PersistenceFlags) {
	cmd.Flags().StringVarP(&flags.FilePath, "file", "f", "", "Path to JSON file for persistence")
	cmd.Flags().StringVarP(&flags.DynamoTable, "dynamodb-table", "t", os.Getenv("DYNAMODB_TABLE"), "DynamoDB table name for persistence")
	cmd.Flags().StringVarP(&flags.DynamoEndpoint, "dynamodb-endpoint", "e", os.Getenv("DYNAMODB_ENDPOINT"), "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
	cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "r", false, "Show what would be changed without making changes")
}

func (f PersistenceFlags) repositoryConfig() repository.RepositoryConfig {
	return repository.RepositoryConfig{
		FilePath:       f.FilePath,
		DynamoTable:    f.DynamoTable,
		DynamoEndpoint: f.DynamoEndpoint,
	}
}

// ValidationFlags holds flags that change the rule set
type ValidationFlags struct {
	Strict bool
}

// addValidationFlags adds the rule set flags to a command.
// --strict defaults to SKYVAL_COLUMN_UNIQUENESS.
func addValidationFlags(cmd *cobra.Command, flags *ValidationFlags) {
	strict, _ := strconv.ParseBool(os.Getenv("SKYVAL_COLUMN_UNIQUENESS"))
	cmd.Flags().BoolVar(&flags.Strict, "strict", strict, "Also require every column's interior to be a permutation of 1-5")
}

func (f ValidationFlags) newService() *validation.Service {
	return validation.NewService(
		validation.WithLogger(slog.Default()),
		validation.WithColumnUniqueness(f.Strict),
	)
}

// RecordFilterFlags holds flags for selecting stored verdicts
type RecordFilterFlags struct {
	BoardIDs    []string
	Sources     []string
	FailedRules []string
	OnlyValid   bool
	OnlyInvalid bool
}

func addRecordFilterFlags(cmd *cobra.Command, flags *RecordFilterFlags) {
	cmd.Flags().StringSliceVarP(&flags.BoardIDs, "board-id", "b", []string{}, "Filter by board ID (can be repeated)")
	cmd.Flags().StringSliceVarP(&flags.Sources, "source", "s", []string{}, "Filter by source (can be repeated)")
	cmd.Flags().StringSliceVar(&flags.FailedRules, "rule", []string{}, "Filter by failed rule (can be repeated)")
	cmd.Flags().BoolVar(&flags.OnlyValid, "valid", false, "Only valid boards")
	cmd.Flags().BoolVar(&flags.OnlyInvalid, "invalid", false, "Only invalid boards")
	cmd.MarkFlagsMutuallyExclusive("valid", "invalid")
}

func (f RecordFilterFlags) filter() model.RecordFilter {
	filter := model.RecordFilter{
		BoardIDs:    f.BoardIDs,
		Sources:     f.Sources,
		FailedRules: f.FailedRules,
	}
	switch {
	case f.OnlyValid:
		valid := true
		filter.Valid = &valid
	case f.OnlyInvalid:
		valid := false
		filter.Valid = &valid
	}
	return filter
}

func (f RecordFilterFlags) describe() string {
	var parts []string
	if len(f.BoardIDs) > 0 {
		parts = append(parts, fmt.Sprintf("board ID(s) %v", f.BoardIDs))
	}
	if len(f.Sources) > 0 {
		parts = append(parts, fmt.Sprintf("source(s) %v", f.Sources))
	}
	if len(f.FailedRules) > 0 {
		parts = append(parts, fmt.Sprintf("failed rule(s) %v", f.FailedRules))
	}
	if f.OnlyValid {
		parts = append(parts, "valid only")
	}
	if f.OnlyInvalid {
		parts = append(parts, "invalid only")
	}
	return strings.Join(parts, ", ")
}

// newBoardLoader returns a loader for local paths, adding S3 support
// only when one of refs needs it
func newBoardLoader(ctx context.Context, refs []string) (loader.Loader, error) {
	multi := loader.NewMulti(loader.NewFileLoader())
	for _, ref := range refs {
		if !strings.HasPrefix(ref, s3board.Scheme+"://") {
			continue
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		multi.Register(s3board.Scheme, s3board.New(s3.NewFromConfig(awsCfg)))
		break
	}
	return multi, nil
}
