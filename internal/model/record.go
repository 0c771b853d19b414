package model

import (
	"time"

	"github.com/mrled/skyval/internal/board"
)

// VerdictRecord is the stored outcome of validating one board from one source
type VerdictRecord struct {
	BoardID      string
	Source       string
	Rows         []string
	Valid        bool
	FailedRule   string
	ValidateTime time.Time
	Rev          int64
}

// Board parses the stored rows back into a board
func (r *VerdictRecord) Board() (board.Board, error) {
	return board.Parse(r.Rows)
}

// GroupByBoardID groups records that share a board, keyed by board ID
func GroupByBoardID(records []*VerdictRecord) map[string][]*VerdictRecord {
	grouped := make(map[string][]*VerdictRecord)
	for _, record := range records {
		grouped[record.BoardID] = append(grouped[record.BoardID], record)
	}
	return grouped
}
