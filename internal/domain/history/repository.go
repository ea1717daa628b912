package history

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Save(ctx context.Context, e *Entry) error

	GetByEntryID(ctx context.Context, entryID string) (*Entry, error)
	// GetCurrent returns the open entry (exited_at IS NULL) for the
	// opportunity, latest entered_at first should more than one ever exist.
	GetCurrent(ctx context.Context, opportunityID uint64) (*Entry, error)
	// CountOpen reports how many open entries the opportunity has; the
	// transition usecase asserts this is exactly 1 before committing.
	CountOpen(ctx context.Context, opportunityID uint64) (int64, error)
	ListForOpportunity(ctx context.Context, opportunityID uint64, includeCurrent bool) ([]Entry, error)
	// ListPendingApprovals lists pending entries oldest-first; a nil
	// opportunityID means across all opportunities.
	ListPendingApprovals(ctx context.Context, opportunityID *uint64) ([]Entry, error)
}
