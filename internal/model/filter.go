package model

// RecordFilter contains criteria for filtering verdict records.
// All criteria are optional; only non-empty fields are applied.
// Within each field, values are combined with OR logic (any value matches).
// Between fields, criteria are combined with AND logic (all fields must match).
type RecordFilter struct {
	// BoardIDs filters by exact board ID matches
	BoardIDs []string

	// Sources filters by exact source matches
	Sources []string

	// FailedRules filters by the rule that failed; use "" to match valid boards
	FailedRules []string

	// Valid filters by verdict when non-nil
	Valid *bool
}

func (f RecordFilter) empty() bool {
	return len(f.BoardIDs) == 0 && len(f.Sources) == 0 && len(f.FailedRules) == 0 && f.Valid == nil
}

// FilterRecords filters a slice of verdict records based on the provided criteria.
// Returns a new slice containing only records that match the filter.
func FilterRecords(records []*VerdictRecord, filter RecordFilter) []*VerdictRecord {
	if filter.empty() {
		return records
	}

	boardIDs := toSet(filter.BoardIDs)
	sources := toSet(filter.Sources)
	rules := toSet(filter.FailedRules)

	var filtered []*VerdictRecord
	for _, record := range records {
		if len(boardIDs) > 0 && !boardIDs[record.BoardID] {
			continue
		}
		if len(sources) > 0 && !sources[record.Source] {
			continue
		}
		if len(rules) > 0 && !rules[record.FailedRule] {
			continue
		}
		if filter.Valid != nil && record.Valid != *filter.Valid {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
