package opportunitymock

import (
	"context"

	domain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
)

// Repo is a function-backed mock that satisfies opportunity.Repository.
type Repo struct {
	CreateFn                      func(ctx context.Context, o *domain.Opportunity) error
	GetByOpportunityIDFn          func(ctx context.Context, opportunityID string) (*domain.Opportunity, error)
	GetByIDFn                     func(ctx context.Context, id uint64) (*domain.Opportunity, error)
	GetByOpportunityIDForUpdateFn func(ctx context.Context, opportunityID string) (*domain.Opportunity, error)
	SaveCASFn                     func(ctx context.Context, o *domain.Opportunity) error
}

func (m *Repo) Create(ctx context.Context, o *domain.Opportunity) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOpportunityID(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	if m.GetByOpportunityIDFn != nil {
		return m.GetByOpportunityIDFn(ctx, opportunityID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Opportunity, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByOpportunityIDForUpdate(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	if m.GetByOpportunityIDForUpdateFn != nil {
		return m.GetByOpportunityIDForUpdateFn(ctx, opportunityID)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveCAS(ctx context.Context, o *domain.Opportunity) error {
	if m.SaveCASFn != nil {
		return m.SaveCASFn(ctx, o)
	}
	return nil
}
