package revalidatebatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mrled/skyval/internal/logger"
	"github.com/mrled/skyval/internal/model"
	"github.com/mrled/skyval/internal/repository"
	"github.com/mrled/skyval/internal/service/validation"
	"github.com/mrled/skyval/internal/usecase/revalidate"
)

// Handler holds the dependencies for the scheduled revalidation Lambda handler
type Handler struct {
	log          *slog.Logger
	revalidateUC *revalidate.RevalidateUseCase
}

// New creates a handler around an existing repository and rule set
func New(repo model.VerdictRepository, validator validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		log:          log,
		revalidateUC: revalidate.NewRevalidateUseCase(repo, validator),
	}
}

// NewHandler creates a new revalidatebatch handler configured from the environment
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "revalidatebatch")
	logger.SetDefault(log)

	repoCfg := repository.RepositoryConfig{
		DynamoTable:    os.Getenv("DYNAMODB_TABLE"),
		DynamoEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
	}
	if repoCfg.DynamoTable == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	log.Info("Using DynamoDB table", slog.String("table", repoCfg.DynamoTable))

	repo, err := repository.NewRepository(context.Background(), repoCfg)
	if err != nil {
		return nil, err
	}

	strict := os.Getenv("SKYVAL_COLUMN_UNIQUENESS") == "true"
	validator := validation.NewService(validation.WithLogger(log), validation.WithColumnUniqueness(strict))

	return New(repo, validator, log), nil
}

// Handle processes scheduled events, rewriting every stale verdict
func (h *Handler) Handle(ctx context.Context, event map[string]interface{}) error {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		"") // No request ID for scheduled events

	requestLogger.Info("Scheduled Lambda triggered", slog.Any("event", event))

	stale, err := h.revalidateUC.FindStaleAndUpdate(ctx, model.RecordFilter{})
	if err != nil {
		requestLogger.Error("Failed to revalidate verdicts",
			slog.Bool("notify", true),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to revalidate verdicts: %w", err)
	}

	var updated, dropped int
	for _, info := range stale {
		recordLogger := logger.WithBoard(requestLogger, info.Record.BoardID, info.Record.Source)
		if info.Corrupt {
			dropped++
			recordLogger.Warn("Dropped verdict that could not be re-evaluated", slog.String("reason", info.Reason))
		} else {
			updated++
			recordLogger.Info("Updated stale verdict", slog.String("reason", info.Reason))
		}
	}

	requestLogger.Info("Revalidation completed",
		slog.Int("records_updated", updated),
		slog.Int("records_deleted", dropped))

	return nil
}
