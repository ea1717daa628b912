package transition

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	historyDomain "github.com/ptbantu/crm-backend/internal/domain/history"
	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	stageDomain "github.com/ptbantu/crm-backend/internal/domain/stage"
	"github.com/ptbantu/crm-backend/internal/domain/uow"
	"github.com/ptbantu/crm-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Usecase is the sole authority for moving an opportunity between stages:
// it closes the current history entry, opens the next one and updates the
// denormalized current-stage pointer, all inside one row-locked transaction.
type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
	// ApprovalBlocking gates progression on the open entry's approval
	// outcome instead of treating approval as an informational sign-off.
	approvalBlocking bool
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger, approvalBlocking bool) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log, approvalBlocking: approvalBlocking}
}

type AdvanceInput struct {
	OpportunityID string
	// TargetTemplateID, when set, names any forward-ordered stage directly;
	// empty means "the next stage in order".
	TargetTemplateID string
	ConditionsMet    []string
	Notes            string
}

type EntryDTO struct {
	EntryID          string     `json:"entry_id"`
	OpportunityID    string     `json:"opportunity_id"`
	StageTemplateID  string     `json:"stage_template_id"`
	StageCode        string     `json:"stage_code"`
	StageNameEn      string     `json:"stage_name_en"`
	StageNameAr      string     `json:"stage_name_ar,omitempty"`
	StageOrder       int        `json:"stage_order"`
	EnteredAt        time.Time  `json:"entered_at"`
	ExitedAt         *time.Time `json:"exited_at,omitempty"`
	DurationDays     *int       `json:"duration_days,omitempty"`
	ConditionsMet    []string   `json:"conditions_met,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	RequiresApproval bool       `json:"requires_approval"`
	ApprovalStatus   *string    `json:"approval_status,omitempty"`
	ApprovedBy       *string    `json:"approved_by,omitempty"`
	ApprovalAt       *time.Time `json:"approval_at,omitempty"`
	ApprovalNotes    *string    `json:"approval_notes,omitempty"`
	WorkflowStatus   string     `json:"workflow_status"`
	CurrentStageCode string     `json:"current_stage_code"`
}

// Advance performs §transition: resolve target, validate ordering and
// conditions, then close-old/open-new/update-pointer atomically.
func (u *Usecase) Advance(ctx context.Context, in AdvanceInput) (*EntryDTO, error) {
	if u.uow == nil {
		return nil, oppDomain.ErrInvalidTransition
	}

	var dto *EntryDTO
	err := u.uow.WithinOpportunityTx(ctx, in.OpportunityID, func(r uow.Repos, o *oppDomain.Opportunity) error {
		now := time.Now().UTC()

		current, err := u.currentTemplate(ctx, r, o)
		if err != nil {
			return err
		}

		target, err := u.resolveTarget(ctx, r, current, in.TargetTemplateID)
		if err != nil {
			return err
		}

		// Ordering is absolute: no backward moves, no re-entering.
		if current != nil && target.StageOrder <= current.StageOrder {
			return oppDomain.ErrInvalidTransition
		}

		rules, err := stageDomain.ParseRules(target.Conditions)
		if err != nil {
			return err
		}
		if missing := rules.Missing(in.ConditionsMet); len(missing) > 0 {
			return &stageDomain.UnmetConditionsError{Missing: missing}
		}

		open, err := r.History.GetCurrent(ctx, o.ID)
		switch {
		case err == nil:
			if u.approvalBlocking && open.RequiresApproval && open.ApprovalStatus != nil {
				switch *open.ApprovalStatus {
				case historyDomain.ApprovalPending:
					return oppDomain.ErrApprovalRequired
				case historyDomain.ApprovalRejected:
					return oppDomain.ErrStageRejected
				}
			}
			open.Close(now)
			if err := r.History.Save(ctx, open); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first transition, nothing to close
		default:
			return err
		}

		entry := &historyDomain.Entry{
			EntryID:          id.NewID32(),
			OpportunityID:    o.ID,
			StageID:          target.ID,
			EnteredAt:        now,
			ConditionsMet:    metJSON(in.ConditionsMet),
			Notes:            in.Notes,
			RequiresApproval: target.RequiresApproval,
		}
		if target.RequiresApproval {
			s := historyDomain.ApprovalPending
			entry.ApprovalStatus = &s
		}
		if err := r.History.Create(ctx, entry); err != nil {
			return err
		}

		// read-your-write guard for the single-open-entry invariant
		n, err := r.History.CountOpen(ctx, o.ID)
		if err != nil {
			return err
		}
		if n != 1 {
			u.log.Error("open history entries out of step, rolling back",
				zap.String("opportunity_id", in.OpportunityID),
				zap.Int64("open_entries", n))
			return oppDomain.ErrConcurrencyConflict
		}

		o.CurrentStageID = &target.ID
		if o.WorkflowStatus == "" {
			o.WorkflowStatus = oppDomain.StatusActive
		}
		if err := r.Opportunities.SaveCAS(ctx, o); err != nil {
			return err
		}

		u.log.Info("opportunity advanced",
			zap.String("opportunity_id", in.OpportunityID),
			zap.String("stage_code", target.Code),
			zap.Int("stage_order", target.StageOrder))

		dto = toEntryDTO(entry, o, target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// currentTemplate resolves the opportunity's stage pointer by numeric id so
// a since-retired template still anchors the ordering check.
func (u *Usecase) currentTemplate(ctx context.Context, r uow.Repos, o *oppDomain.Opportunity) (*stageDomain.Template, error) {
	if o.CurrentStageID == nil {
		return nil, nil
	}
	t, err := r.Templates.GetByID(ctx, *o.CurrentStageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stageDomain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (u *Usecase) resolveTarget(ctx context.Context, r uow.Repos, current *stageDomain.Template, targetTemplateID string) (*stageDomain.Template, error) {
	if targetTemplateID != "" {
		t, err := r.Templates.GetByTemplateID(ctx, targetTemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, stageDomain.ErrNotFound
			}
			return nil, err
		}
		if !t.IsActive {
			return nil, stageDomain.ErrNotFound
		}
		return t, nil
	}

	var (
		t   *stageDomain.Template
		err error
	)
	if current == nil {
		t, err = r.Templates.GetFirst(ctx)
	} else {
		t, err = r.Templates.GetNext(ctx, current.StageOrder)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, oppDomain.ErrNoFurtherStage
		}
		return nil, err
	}
	return t, nil
}

func metJSON(met []string) datatypes.JSON {
	if len(met) == 0 {
		return nil
	}
	b, _ := json.Marshal(met)
	return datatypes.JSON(b)
}

func toEntryDTO(e *historyDomain.Entry, o *oppDomain.Opportunity, t *stageDomain.Template) *EntryDTO {
	dto := &EntryDTO{
		EntryID:          e.EntryID,
		OpportunityID:    o.OpportunityID,
		StageTemplateID:  t.TemplateID,
		StageCode:        t.Code,
		StageNameEn:      t.NameEn,
		StageNameAr:      t.NameAr,
		StageOrder:       t.StageOrder,
		EnteredAt:        e.EnteredAt,
		ExitedAt:         e.ExitedAt,
		DurationDays:     e.DurationDays,
		Notes:            e.Notes,
		RequiresApproval: e.RequiresApproval,
		ApprovedBy:       e.ApprovedBy,
		ApprovalAt:       e.ApprovalAt,
		ApprovalNotes:    e.ApprovalNotes,
		WorkflowStatus:   string(o.WorkflowStatus),
		CurrentStageCode: t.Code,
	}
	if e.ApprovalStatus != nil {
		s := string(*e.ApprovalStatus)
		dto.ApprovalStatus = &s
	}
	if len(e.ConditionsMet) > 0 {
		_ = json.Unmarshal(e.ConditionsMet, &dto.ConditionsMet)
	}
	return dto
}
