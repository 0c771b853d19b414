package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mrled/skyval/internal/board"
	"github.com/mrled/skyval/internal/loader"
	"github.com/mrled/skyval/internal/logger"
	"github.com/mrled/skyval/internal/model"
	"github.com/mrled/skyval/internal/service/boardid"
	"github.com/mrled/skyval/internal/service/validation"
)

// CheckUseCase loads boards, validates them, and records the verdicts
type CheckUseCase struct {
	loader     loader.Loader
	validator  validation.Validator
	repository model.VerdictRepository
	now        func() time.Time
	log        *slog.Logger
}

// Option configures a CheckUseCase
type Option func(*CheckUseCase)

// WithRepository stores every verdict in repo
func WithRepository(repo model.VerdictRepository) Option {
	return func(uc *CheckUseCase) {
		uc.repository = repo
	}
}

// WithClock overrides the validation timestamp source
func WithClock(now func() time.Time) Option {
	return func(uc *CheckUseCase) {
		uc.now = now
	}
}

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(uc *CheckUseCase) {
		uc.log = log
	}
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(l loader.Loader, v validation.Validator, opts ...Option) *CheckUseCase {
	uc := &CheckUseCase{
		loader:    l,
		validator: v,
		now:       time.Now,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.log = logger.WithService(uc.log, "check")
	return uc
}

// Check loads the board named by ref and validates it.
// An invalid board is not an error; errors are reserved for loading and storage failures.
func (uc *CheckUseCase) Check(ctx context.Context, ref string) (*model.VerdictRecord, error) {
	b, err := uc.loader.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load board %s: %w", ref, err)
	}
	return uc.CheckBoard(ctx, ref, b)
}

// CheckBoard validates an already loaded board, labelling the verdict with source
func (uc *CheckUseCase) CheckBoard(ctx context.Context, source string, b board.Board) (*model.VerdictRecord, error) {
	id := boardid.Calculate(b)
	verdict := uc.validator.Evaluate(ctx, b)

	record := &model.VerdictRecord{
		BoardID:      id,
		Source:       source,
		Rows:         b.Rows(),
		Valid:        verdict.Valid,
		FailedRule:   string(verdict.FailedRule),
		ValidateTime: uc.now().UTC(),
	}

	log := logger.WithBoard(uc.log, id, source)
	if uc.repository != nil {
		if err := uc.repository.UnconditionalStore(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to store verdict for %s: %w", source, err)
		}
		log = log.With(slog.Int64("rev", record.Rev))
	}

	if verdict.Valid {
		log.Info("Board is valid")
	} else {
		log.Info("Board is invalid", slog.String("rule", record.FailedRule))
	}

	return record, nil
}
