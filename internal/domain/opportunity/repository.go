package opportunity

import "context"

type Repository interface {
	Create(ctx context.Context, o *Opportunity) error
	GetByOpportunityID(ctx context.Context, opportunityID string) (*Opportunity, error)
	GetByID(ctx context.Context, id uint64) (*Opportunity, error)
	// GetByOpportunityIDForUpdate locks the row for the enclosing transaction.
	GetByOpportunityIDForUpdate(ctx context.Context, opportunityID string) (*Opportunity, error)
	// SaveCAS persists o only if lock_version still matches, bumping it on
	// success; returns ErrConcurrencyConflict otherwise.
	SaveCAS(ctx context.Context, o *Opportunity) error
}
