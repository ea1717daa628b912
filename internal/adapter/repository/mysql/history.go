package mysql

import (
	"context"

	historyDomain "github.com/ptbantu/crm-backend/internal/domain/history"

	"gorm.io/gorm"
)

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Create(ctx context.Context, e *historyDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *HistoryRepository) Save(ctx context.Context, e *historyDomain.Entry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *HistoryRepository) GetByEntryID(ctx context.Context, entryID string) (*historyDomain.Entry, error) {
	var out historyDomain.Entry
	res := r.db.WithContext(ctx).Where("entry_id = ?", entryID).First(&out)
	return &out, res.Error
}

func (r *HistoryRepository) GetCurrent(ctx context.Context, opportunityID uint64) (*historyDomain.Entry, error) {
	var out historyDomain.Entry
	res := r.db.WithContext(ctx).
		Where("opportunity_id = ? AND exited_at IS NULL", opportunityID).
		Order("entered_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *HistoryRepository) CountOpen(ctx context.Context, opportunityID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&historyDomain.Entry{}).
		Where("opportunity_id = ? AND exited_at IS NULL", opportunityID).
		Count(&n)
	return n, res.Error
}

func (r *HistoryRepository) ListForOpportunity(ctx context.Context, opportunityID uint64, includeCurrent bool) ([]historyDomain.Entry, error) {
	q := r.db.WithContext(ctx).Where("opportunity_id = ?", opportunityID)
	if !includeCurrent {
		q = q.Where("exited_at IS NOT NULL")
	}
	var out []historyDomain.Entry
	res := q.Order("entered_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *HistoryRepository) ListPendingApprovals(ctx context.Context, opportunityID *uint64) ([]historyDomain.Entry, error) {
	q := r.db.WithContext(ctx).
		Where("requires_approval = ? AND approval_status = ?", true, historyDomain.ApprovalPending)
	if opportunityID != nil {
		q = q.Where("opportunity_id = ?", *opportunityID)
	}
	var out []historyDomain.Entry
	res := q.Order("entered_at ASC, id ASC").Find(&out)
	return out, res.Error
}
