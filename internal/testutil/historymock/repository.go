package historymock

import (
	"context"

	domain "github.com/ptbantu/crm-backend/internal/domain/history"
)

// Repo is a function-backed mock that satisfies history.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, e *domain.Entry) error
	SaveFn                 func(ctx context.Context, e *domain.Entry) error
	GetByEntryIDFn         func(ctx context.Context, entryID string) (*domain.Entry, error)
	GetCurrentFn           func(ctx context.Context, opportunityID uint64) (*domain.Entry, error)
	CountOpenFn            func(ctx context.Context, opportunityID uint64) (int64, error)
	ListForOpportunityFn   func(ctx context.Context, opportunityID uint64, includeCurrent bool) ([]domain.Entry, error)
	ListPendingApprovalsFn func(ctx context.Context, opportunityID *uint64) ([]domain.Entry, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, e *domain.Entry) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByEntryID(ctx context.Context, entryID string) (*domain.Entry, error) {
	if m.GetByEntryIDFn != nil {
		return m.GetByEntryIDFn(ctx, entryID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetCurrent(ctx context.Context, opportunityID uint64) (*domain.Entry, error) {
	if m.GetCurrentFn != nil {
		return m.GetCurrentFn(ctx, opportunityID)
	}
	return nil, context.Canceled
}

func (m *Repo) CountOpen(ctx context.Context, opportunityID uint64) (int64, error) {
	if m.CountOpenFn != nil {
		return m.CountOpenFn(ctx, opportunityID)
	}
	return 1, nil
}

func (m *Repo) ListForOpportunity(ctx context.Context, opportunityID uint64, includeCurrent bool) ([]domain.Entry, error) {
	if m.ListForOpportunityFn != nil {
		return m.ListForOpportunityFn(ctx, opportunityID, includeCurrent)
	}
	return nil, context.Canceled
}

func (m *Repo) ListPendingApprovals(ctx context.Context, opportunityID *uint64) ([]domain.Entry, error) {
	if m.ListPendingApprovalsFn != nil {
		return m.ListPendingApprovalsFn(ctx, opportunityID)
	}
	return nil, context.Canceled
}
