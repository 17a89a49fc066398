package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// RecordStore keeps the most recent State Record per navigable and kind.
// It is the "last known state" board of a session; it is not a history.
type RecordStore interface {
	// Put publishes rec, replacing any previous record for the same navigable ID and kind.
	Put(ctx context.Context, rec domain.StateRecord) error

	// Last returns the most recent record.
	// Returns domain.ErrRecordNotFound if nothing was published.
	Last(ctx context.Context, navigableID string, kind domain.StateKind) (domain.StateRecord, error)

	// List returns all last-known records, ordered by navigable ID then kind.
	List(ctx context.Context) ([]domain.StateRecord, error)

	// Clear removes every record.
	Clear(ctx context.Context) error
}
