package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ptbantu/crm-backend/internal/domain/stage"
	"github.com/ptbantu/crm-backend/internal/domain/uow"
	"github.com/ptbantu/crm-backend/pkg/id"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Usecase struct {
	repo stage.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r stage.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

type UpsertTemplateInput struct {
	Code             string
	NameEn           string
	NameAr           string
	DescriptionEn    string
	DescriptionAr    string
	StageOrder       int
	RequiresApproval bool
	ApprovalRoles    []string
	Conditions       []byte
	IsActive         *bool // nil on create means active
}

type TemplateDTO struct {
	TemplateID       string          `json:"template_id"`
	Code             string          `json:"code"`
	NameEn           string          `json:"name_en"`
	NameAr           string          `json:"name_ar,omitempty"`
	DescriptionEn    string          `json:"description_en,omitempty"`
	DescriptionAr    string          `json:"description_ar,omitempty"`
	StageOrder       int             `json:"stage_order"`
	RequiresApproval bool            `json:"requires_approval"`
	ApprovalRoles    []string        `json:"approval_roles,omitempty"`
	Conditions       json.RawMessage `json:"conditions,omitempty"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (u *Usecase) Create(ctx context.Context, in UpsertTemplateInput) (*TemplateDTO, error) {
	if in.Code == "" || in.NameEn == "" {
		return nil, errors.New("code and name_en are required")
	}
	if in.StageOrder <= 0 {
		return nil, errors.New("stage_order must be positive")
	}
	if _, err := stage.ParseRules(in.Conditions); err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	var dto *TemplateDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := u.checkOrderFree(ctx, r.Templates, in.StageOrder, 0); err != nil {
			return err
		}
		if _, err := r.Templates.GetByCode(ctx, in.Code); err == nil {
			return stage.ErrDuplicateCode
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		t := &stage.Template{
			TemplateID:       id.NewID32(),
			Code:             in.Code,
			NameEn:           in.NameEn,
			NameAr:           in.NameAr,
			DescriptionEn:    in.DescriptionEn,
			DescriptionAr:    in.DescriptionAr,
			StageOrder:       in.StageOrder,
			RequiresApproval: in.RequiresApproval,
			ApprovalRoles:    rolesJSON(in.ApprovalRoles),
			Conditions:       datatypes.JSON(in.Conditions),
			IsActive:         active,
		}
		if err := r.Templates.Create(ctx, t); err != nil {
			return err
		}
		dto = toDTO(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Update(ctx context.Context, templateID string, in UpsertTemplateInput) (*TemplateDTO, error) {
	if in.StageOrder <= 0 {
		return nil, errors.New("stage_order must be positive")
	}
	if _, err := stage.ParseRules(in.Conditions); err != nil {
		return nil, err
	}

	var dto *TemplateDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Templates.GetByTemplateID(ctx, templateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return stage.ErrNotFound
			}
			return err
		}
		if err := u.checkOrderFree(ctx, r.Templates, in.StageOrder, t.ID); err != nil {
			return err
		}

		t.NameEn = in.NameEn
		t.NameAr = in.NameAr
		t.DescriptionEn = in.DescriptionEn
		t.DescriptionAr = in.DescriptionAr
		t.StageOrder = in.StageOrder
		t.RequiresApproval = in.RequiresApproval
		t.ApprovalRoles = rolesJSON(in.ApprovalRoles)
		t.Conditions = datatypes.JSON(in.Conditions)
		if in.IsActive != nil {
			t.IsActive = *in.IsActive
		}
		if err := r.Templates.Save(ctx, t); err != nil {
			return err
		}
		dto = toDTO(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// checkOrderFree enforces order uniqueness among active templates inside the
// write transaction (selfID 0 means "creating a new row").
func (u *Usecase) checkOrderFree(ctx context.Context, repo stage.Repository, order int, selfID uint64) error {
	existing, err := repo.GetByOrder(ctx, order)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return fmt.Errorf("%w: order %d taken by %s", stage.ErrDuplicateOrder, order, existing.Code)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

func (u *Usecase) GetByCode(ctx context.Context, code string) (*TemplateDTO, error) {
	t, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stage.ErrNotFound
		}
		return nil, err
	}
	return toDTO(t), nil
}

func (u *Usecase) ListActive(ctx context.Context) ([]TemplateDTO, error) {
	ts, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TemplateDTO, 0, len(ts))
	for i := range ts {
		out = append(out, *toDTO(&ts[i]))
	}
	return out, nil
}

func rolesJSON(roles []string) datatypes.JSON {
	if len(roles) == 0 {
		return nil
	}
	b, _ := json.Marshal(roles)
	return datatypes.JSON(b)
}

func toDTO(t *stage.Template) *TemplateDTO {
	dto := &TemplateDTO{
		TemplateID:       t.TemplateID,
		Code:             t.Code,
		NameEn:           t.NameEn,
		NameAr:           t.NameAr,
		DescriptionEn:    t.DescriptionEn,
		DescriptionAr:    t.DescriptionAr,
		StageOrder:       t.StageOrder,
		RequiresApproval: t.RequiresApproval,
		Conditions:       json.RawMessage(t.Conditions),
		IsActive:         t.IsActive,
		CreatedAt:        t.CreatedAt,
	}
	if len(t.ApprovalRoles) > 0 {
		_ = json.Unmarshal(t.ApprovalRoles, &dto.ApprovalRoles)
	}
	return dto
}
