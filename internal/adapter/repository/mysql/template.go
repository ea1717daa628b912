package mysql

import (
	"context"

	stageDomain "github.com/ptbantu/crm-backend/internal/domain/stage"

	"gorm.io/gorm"
)

type TemplateRepository struct{ db *gorm.DB }

func NewTemplateRepository(db *gorm.DB) *TemplateRepository { return &TemplateRepository{db: db} }

func (r *TemplateRepository) Create(ctx context.Context, t *stageDomain.Template) error {
	t.SyncActiveMarker()
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TemplateRepository) Save(ctx context.Context, t *stageDomain.Template) error {
	t.SyncActiveMarker()
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TemplateRepository) GetByTemplateID(ctx context.Context, templateID string) (*stageDomain.Template, error) {
	var out stageDomain.Template
	res := r.db.WithContext(ctx).Where("template_id = ?", templateID).First(&out)
	return &out, res.Error
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uint64) (*stageDomain.Template, error) {
	var out stageDomain.Template
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *TemplateRepository) GetByCode(ctx context.Context, code string) (*stageDomain.Template, error) {
	var out stageDomain.Template
	res := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&out)
	return &out, res.Error
}

func (r *TemplateRepository) GetByOrder(ctx context.Context, order int) (*stageDomain.Template, error) {
	var out stageDomain.Template
	res := r.db.WithContext(ctx).
		Where("stage_order = ? AND is_active = ?", order, true).
		First(&out)
	return &out, res.Error
}

func (r *TemplateRepository) GetNext(ctx context.Context, order int) (*stageDomain.Template, error) {
	var out stageDomain.Template
	res := r.db.WithContext(ctx).
		Where("stage_order > ? AND is_active = ?", order, true).
		Order("stage_order ASC").
		First(&out)
	return &out, res.Error
}

func (r *TemplateRepository) GetPrevious(ctx context.Context, order int) (*stageDomain.Template, error) {
	var out stageDomain.Template
	res := r.db.WithContext(ctx).
		Where("stage_order < ? AND is_active = ?", order, true).
		Order("stage_order DESC").
		First(&out)
	return &out, res.Error
}

func (r *TemplateRepository) GetFirst(ctx context.Context) (*stageDomain.Template, error) {
	var out stageDomain.Template
	res := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("stage_order ASC").
		First(&out)
	return &out, res.Error
}

func (r *TemplateRepository) ListActive(ctx context.Context) ([]stageDomain.Template, error) {
	var out []stageDomain.Template
	res := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("stage_order ASC").
		Find(&out)
	return out, res.Error
}
