package audit

import "context"

// Repository is append-only: Append is the single mutation the write path
// exposes, everything else is reads.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// ListByApplicationID returns the trail oldest-first.
	ListByApplicationID(ctx context.Context, applicationID uint64) ([]Entry, error)
}
