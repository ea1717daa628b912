package stage

import "context"

type Repository interface {
	Create(ctx context.Context, t *Template) error
	Save(ctx context.Context, t *Template) error

	GetByTemplateID(ctx context.Context, templateID string) (*Template, error)
	// GetByID resolves the numeric key regardless of active state; history
	// rows keep referencing retired templates.
	GetByID(ctx context.Context, id uint64) (*Template, error)
	// Lookups below only consider active templates.
	GetByCode(ctx context.Context, code string) (*Template, error)
	GetByOrder(ctx context.Context, order int) (*Template, error)
	// GetNext returns the active template with the smallest stage_order
	// strictly greater than order; GetPrevious is symmetric.
	GetNext(ctx context.Context, order int) (*Template, error)
	GetPrevious(ctx context.Context, order int) (*Template, error)
	// GetFirst returns the lowest-ordered active template.
	GetFirst(ctx context.Context) (*Template, error)
	ListActive(ctx context.Context) ([]Template, error)
}
