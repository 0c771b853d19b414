package revalidate

import (
	"context"
	"fmt"
	"time"

	"github.com/mrled/skyval/internal/model"
	"github.com/mrled/skyval/internal/service/boardid"
	"github.com/mrled/skyval/internal/service/validation"
)

// RevalidateUseCase re-evaluates stored verdict records against the current rule set
type RevalidateUseCase struct {
	repository model.VerdictRepository
	validator  validation.Validator
	now        func() time.Time
}

// NewRevalidateUseCase creates a new revalidate use case
func NewRevalidateUseCase(repo model.VerdictRepository, v validation.Validator) *RevalidateUseCase {
	return &RevalidateUseCase{
		repository: repo,
		validator:  v,
		now:        time.Now,
	}
}

// StaleRecordInfo contains a stored record whose verdict no longer matches
// what the current rules say about its board
type StaleRecordInfo struct {
	Record  *model.VerdictRecord
	Current validation.Verdict
	Reason  string

	// Corrupt is set when the stored rows cannot be re-evaluated at all
	Corrupt bool
}

// FindStale checks every record matching filter.
// It does not reload boards from their sources; it validates the stored rows.
// A record is stale when its stored rows no longer parse, when its board ID
// does not match its rows, or when its verdict differs from a fresh evaluation.
func (uc *RevalidateUseCase) FindStale(ctx context.Context, filter model.RecordFilter) ([]StaleRecordInfo, error) {
	allRecords, err := uc.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	stale := []StaleRecordInfo{}
	for _, record := range model.FilterRecords(allRecords, filter) {
		b, err := record.Board()
		if err != nil {
			stale = append(stale, StaleRecordInfo{Record: record, Reason: err.Error(), Corrupt: true})
			continue
		}

		if id := boardid.Calculate(b); id != record.BoardID {
			stale = append(stale, StaleRecordInfo{
				Record:  record,
				Reason:  fmt.Sprintf("board ID mismatch: stored %s, calculated %s", record.BoardID, id),
				Corrupt: true,
			})
			continue
		}

		current := uc.validator.Evaluate(ctx, b)
		if current.Valid != record.Valid || string(current.FailedRule) != record.FailedRule {
			stale = append(stale, StaleRecordInfo{
				Record:  record,
				Current: current,
				Reason:  fmt.Sprintf("verdict changed: stored %s, current %s", describe(record.Valid, record.FailedRule), describe(current.Valid, string(current.FailedRule))),
			})
		}
	}

	return stale, nil
}

// FindStaleAndUpdate finds stale records and rewrites the ones that can be re-evaluated.
// Records whose rows no longer parse, or whose board ID is wrong, are deleted.
func (uc *RevalidateUseCase) FindStaleAndUpdate(ctx context.Context, filter model.RecordFilter) ([]StaleRecordInfo, error) {
	stale, err := uc.FindStale(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find stale records: %w", err)
	}

	for _, info := range stale {
		record := info.Record
		if info.Corrupt {
			if err := uc.repository.Delete(ctx, record.BoardID, record.Source); err != nil {
				return stale, fmt.Errorf("failed to delete record %s (board %s): %w", record.Source, record.BoardID, err)
			}
			continue
		}
		updated := *record
		updated.Valid = info.Current.Valid
		updated.FailedRule = string(info.Current.FailedRule)
		updated.ValidateTime = uc.now().UTC()
		if err := uc.repository.UnconditionalStore(ctx, &updated); err != nil {
			return stale, fmt.Errorf("failed to update record %s (board %s): %w", record.Source, record.BoardID, err)
		}
	}

	return stale, nil
}

func describe(valid bool, rule string) string {
	if valid {
		return "valid"
	}
	return "invalid (" + rule + ")"
}
