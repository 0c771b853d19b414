package model

import "sort"

// SortBy specifies the field and order for sorting verdict records
type SortBy string

const (
	SortByBoard        SortBy = "board"
	SortBySource       SortBy = "source"
	SortByValidateTime SortBy = "validate-time"
	SortByRule         SortBy = "rule"
	SortByDefault      SortBy = "" // Default sort: source, then board ID
)

// SortRecords sorts a slice of verdict records in place based on the specified field.
// The sortBy parameter should be one of: "board", "source", "validate-time", "rule".
// If sortBy is empty or unrecognized, records are sorted by source, then by board ID.
func SortRecords(records []*VerdictRecord, sortBy string) {
	switch SortBy(sortBy) {
	case SortByBoard:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].BoardID < records[j].BoardID
		})
	case SortBySource:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Source < records[j].Source
		})
	case SortByValidateTime:
		// Most recent first
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ValidateTime.After(records[j].ValidateTime)
		})
	case SortByRule:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].FailedRule < records[j].FailedRule
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Source != records[j].Source {
				return records[i].Source < records[j].Source
			}
			return records[i].BoardID < records[j].BoardID
		})
	}
}
