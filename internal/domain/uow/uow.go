package uow

import (
	"context"

	"github.com/ptbantu/crm-backend/internal/domain/history"
	"github.com/ptbantu/crm-backend/internal/domain/opportunity"
	"github.com/ptbantu/crm-backend/internal/domain/stage"
)

type Repos struct {
	Templates     stage.Repository
	Opportunities opportunity.Repository
	History       history.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the opportunity row first, then pass it in
	WithinOpportunityTx(ctx context.Context, opportunityID string, fn func(r Repos, o *opportunity.Opportunity) error) error
}
