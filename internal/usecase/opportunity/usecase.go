package opportunity

import (
	"context"
	"errors"
	"time"

	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	stageDomain "github.com/ptbantu/crm-backend/internal/domain/stage"
	"github.com/ptbantu/crm-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	repo      oppDomain.Repository
	templates stageDomain.Repository
}

func NewUsecase(r oppDomain.Repository, templates stageDomain.Repository) *Usecase {
	return &Usecase{repo: r, templates: templates}
}

type CreateOpportunityInput struct {
	Title string `json:"title"`
}

type OpportunityDTO struct {
	OpportunityID    string    `json:"opportunity_id"`
	Title            string    `json:"title"`
	CurrentStageCode string    `json:"current_stage_code,omitempty"`
	WorkflowStatus   string    `json:"workflow_status,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Create registers a bare opportunity with no current stage; the first
// transition assigns the opening stage and activates the workflow.
func (u *Usecase) Create(ctx context.Context, in CreateOpportunityInput) (*OpportunityDTO, error) {
	if in.Title == "" {
		return nil, errors.New("title is required")
	}

	o := &oppDomain.Opportunity{
		OpportunityID: id.NewID32(),
		Title:         in.Title,
	}
	if err := u.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return u.toDTO(ctx, o)
}

func (u *Usecase) Get(ctx context.Context, opportunityID string) (*OpportunityDTO, error) {
	o, err := u.repo.GetByOpportunityID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, oppDomain.ErrNotFound
		}
		return nil, err
	}
	return u.toDTO(ctx, o)
}

func (u *Usecase) toDTO(ctx context.Context, o *oppDomain.Opportunity) (*OpportunityDTO, error) {
	dto := &OpportunityDTO{
		OpportunityID:  o.OpportunityID,
		Title:          o.Title,
		WorkflowStatus: string(o.WorkflowStatus),
		CreatedAt:      o.CreatedAt,
	}
	if o.CurrentStageID != nil {
		t, err := u.templates.GetByID(ctx, *o.CurrentStageID)
		if err != nil {
			return nil, err
		}
		dto.CurrentStageCode = t.Code
	}
	return dto, nil
}
