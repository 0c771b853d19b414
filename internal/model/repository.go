package model

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("verdict record not found")
	ErrAlreadyExists = errors.New("verdict record already exists")
)

// VerdictRepository defines the interface for storing and retrieving verdict records
type VerdictRepository interface {
	// Store saves a record, failing with ErrAlreadyExists if one is already stored
	// for the same board ID and source
	Store(ctx context.Context, record *VerdictRecord) error

	// UnconditionalStore saves a record, replacing any existing one and
	// incrementing its revision
	UnconditionalStore(ctx context.Context, record *VerdictRecord) error

	// Get retrieves a record by board ID and source (the composite key)
	Get(ctx context.Context, boardID, source string) (*VerdictRecord, error)

	// List retrieves all records
	List(ctx context.Context) ([]*VerdictRecord, error)

	// Delete removes a record by board ID and source
	Delete(ctx context.Context, boardID, source string) error
}
