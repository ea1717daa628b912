package mysql

import (
	"context"
	"errors"

	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	"github.com/ptbantu/crm-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Templates:     &TemplateRepository{db: tx},
		Opportunities: &OpportunityRepository{db: tx},
		History:       &HistoryRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinOpportunityTx(ctx context.Context, opportunityID string, fn func(r uow.Repos, o *oppDomain.Opportunity) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the opportunity row up-front to prevent races
		o, err := r.Opportunities.GetByOpportunityIDForUpdate(ctx, opportunityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return oppDomain.ErrNotFound
			}
			return err
		}
		return fn(r, o)
	})
}
