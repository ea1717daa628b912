package templatemock

import (
	"context"

	domain "github.com/ptbantu/crm-backend/internal/domain/stage"
)

// Repo is a function-backed mock that satisfies stage.Repository.
// Only fill the fields a test needs; unfilled lookups report "not found"
// via context.Canceled to fail loudly.
type Repo struct {
	CreateFn          func(ctx context.Context, t *domain.Template) error
	SaveFn            func(ctx context.Context, t *domain.Template) error
	GetByTemplateIDFn func(ctx context.Context, templateID string) (*domain.Template, error)
	GetByIDFn         func(ctx context.Context, id uint64) (*domain.Template, error)
	GetByCodeFn       func(ctx context.Context, code string) (*domain.Template, error)
	GetByOrderFn      func(ctx context.Context, order int) (*domain.Template, error)
	GetNextFn         func(ctx context.Context, order int) (*domain.Template, error)
	GetPreviousFn     func(ctx context.Context, order int) (*domain.Template, error)
	GetFirstFn        func(ctx context.Context) (*domain.Template, error)
	ListActiveFn      func(ctx context.Context) ([]domain.Template, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Template) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, t *domain.Template) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTemplateID(ctx context.Context, templateID string) (*domain.Template, error) {
	if m.GetByTemplateIDFn != nil {
		return m.GetByTemplateIDFn(ctx, templateID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Template, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByCode(ctx context.Context, code string) (*domain.Template, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByOrder(ctx context.Context, order int) (*domain.Template, error) {
	if m.GetByOrderFn != nil {
		return m.GetByOrderFn(ctx, order)
	}
	return nil, context.Canceled
}

func (m *Repo) GetNext(ctx context.Context, order int) (*domain.Template, error) {
	if m.GetNextFn != nil {
		return m.GetNextFn(ctx, order)
	}
	return nil, context.Canceled
}

func (m *Repo) GetPrevious(ctx context.Context, order int) (*domain.Template, error) {
	if m.GetPreviousFn != nil {
		return m.GetPreviousFn(ctx, order)
	}
	return nil, context.Canceled
}

func (m *Repo) GetFirst(ctx context.Context) (*domain.Template, error) {
	if m.GetFirstFn != nil {
		return m.GetFirstFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListActive(ctx context.Context) ([]domain.Template, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, context.Canceled
}
