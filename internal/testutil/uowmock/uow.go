package uowmock

import (
	"context"
	"errors"

	"github.com/ptbantu/crm-backend/internal/domain/opportunity"
	"github.com/ptbantu/crm-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinOpportunityTxFn func(ctx context.Context, opportunityID string, fn func(r uow.Repos, o *opportunity.Opportunity) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a UoW whose transactions simply run the callback
// against the given repos, loading the locked opportunity via the repo.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinOpportunityTxFn: func(ctx context.Context, opportunityID string, fn func(uow.Repos, *opportunity.Opportunity) error) error {
			o, err := r.Opportunities.GetByOpportunityIDForUpdate(ctx, opportunityID)
			if err != nil {
				return opportunity.ErrNotFound
			}
			return fn(r, o)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinOpportunityTx(ctx context.Context, opportunityID string, fn func(r uow.Repos, o *opportunity.Opportunity) error) error {
	if m.WithinOpportunityTxFn != nil {
		return m.WithinOpportunityTxFn(ctx, opportunityID, fn)
	}
	return errUnimplemented
}
