package mysql

import (
	"context"

	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OpportunityRepository struct{ db *gorm.DB }

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, o *oppDomain.Opportunity) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OpportunityRepository) GetByOpportunityID(ctx context.Context, opportunityID string) (*oppDomain.Opportunity, error) {
	var out oppDomain.Opportunity
	res := r.db.WithContext(ctx).Where("opportunity_id = ?", opportunityID).First(&out)
	return &out, res.Error
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id uint64) (*oppDomain.Opportunity, error) {
	var out oppDomain.Opportunity
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *OpportunityRepository) GetByOpportunityIDForUpdate(ctx context.Context, opportunityID string) (*oppDomain.Opportunity, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no SELECT ... FOR UPDATE; its writer lock covers us.
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out oppDomain.Opportunity
	res := q.Where("opportunity_id = ?", opportunityID).First(&out)
	return &out, res.Error
}

// SaveCAS writes the aggregate guarded by lock_version: the UPDATE matches
// only the version the caller read, so a lost race surfaces as zero rows.
func (r *OpportunityRepository) SaveCAS(ctx context.Context, o *oppDomain.Opportunity) error {
	readVersion := o.LockVersion
	res := r.db.WithContext(ctx).
		Model(&oppDomain.Opportunity{}).
		Where("id = ? AND lock_version = ?", o.ID, readVersion).
		Updates(map[string]any{
			"current_stage_id": o.CurrentStageID,
			"workflow_status":  o.WorkflowStatus,
			"lock_version":     readVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return oppDomain.ErrConcurrencyConflict
	}
	o.LockVersion = readVersion + 1
	return nil
}
