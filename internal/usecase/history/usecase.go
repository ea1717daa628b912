package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	historyDomain "github.com/ptbantu/crm-backend/internal/domain/history"
	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	stageDomain "github.com/ptbantu/crm-backend/internal/domain/stage"

	"gorm.io/gorm"
)

// Usecase is the read surface over the stage history ledger.
type Usecase struct {
	opportunities oppDomain.Repository
	entries       historyDomain.Repository
	templates     stageDomain.Repository
}

func NewUsecase(opps oppDomain.Repository, entries historyDomain.Repository, templates stageDomain.Repository) *Usecase {
	return &Usecase{opportunities: opps, entries: entries, templates: templates}
}

type EntryDTO struct {
	EntryID          string     `json:"entry_id"`
	OpportunityID    string     `json:"opportunity_id"`
	StageTemplateID  string     `json:"stage_template_id"`
	StageCode        string     `json:"stage_code"`
	StageNameEn      string     `json:"stage_name_en"`
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
}

func (u *Usecase) ListForOpportunity(ctx context.Context, opportunityID string, includeCurrent bool) ([]EntryDTO, error) {
	o, err := u.opportunities.GetByOpportunityID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, oppDomain.ErrNotFound
		}
		return nil, err
	}
	es, err := u.entries.ListForOpportunity(ctx, o.ID, includeCurrent)
	if err != nil {
		return nil, err
	}
	return u.toDTOs(ctx, es, map[uint64]string{o.ID: o.OpportunityID})
}

func (u *Usecase) GetCurrent(ctx context.Context, opportunityID string) (*EntryDTO, error) {
	o, err := u.opportunities.GetByOpportunityID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, oppDomain.ErrNotFound
		}
		return nil, err
	}
	e, err := u.entries.GetCurrent(ctx, o.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, historyDomain.ErrNotFound
		}
		return nil, err
	}
	dtos, err := u.toDTOs(ctx, []historyDomain.Entry{*e}, map[uint64]string{o.ID: o.OpportunityID})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// ListPendingApprovals lists pending entries oldest-first, across all
// opportunities when opportunityID is empty.
func (u *Usecase) ListPendingApprovals(ctx context.Context, opportunityID string) ([]EntryDTO, error) {
	var (
		scope *uint64
		known = map[uint64]string{}
	)
	if opportunityID != "" {
		o, err := u.opportunities.GetByOpportunityID(ctx, opportunityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, oppDomain.ErrNotFound
			}
			return nil, err
		}
		scope = &o.ID
		known[o.ID] = o.OpportunityID
	}
	es, err := u.entries.ListPendingApprovals(ctx, scope)
	if err != nil {
		return nil, err
	}
	return u.toDTOs(ctx, es, known)
}

func (u *Usecase) toDTOs(ctx context.Context, es []historyDomain.Entry, oppIDs map[uint64]string) ([]EntryDTO, error) {
	templates := map[uint64]*stageDomain.Template{}
	out := make([]EntryDTO, 0, len(es))
	for i := range es {
		e := &es[i]
		t, ok := templates[e.StageID]
		if !ok {
			var err error
			t, err = u.templates.GetByID(ctx, e.StageID)
			if err != nil {
				return nil, err
			}
			templates[e.StageID] = t
		}
		if _, ok := oppIDs[e.OpportunityID]; !ok {
			o, err := u.opportunities.GetByID(ctx, e.OpportunityID)
			if err != nil {
				return nil, err
			}
			oppIDs[e.OpportunityID] = o.OpportunityID
		}
		dto := EntryDTO{
			EntryID:          e.EntryID,
			OpportunityID:    oppIDs[e.OpportunityID],
			StageTemplateID:  t.TemplateID,
			StageCode:        t.Code,
			StageNameEn:      t.NameEn,
			StageOrder:       t.StageOrder,
			EnteredAt:        e.EnteredAt,
			ExitedAt:         e.ExitedAt,
			DurationDays:     e.DurationDays,
			Notes:            e.Notes,
			RequiresApproval: e.RequiresApproval,
			ApprovedBy:       e.ApprovedBy,
			ApprovalAt:       e.ApprovalAt,
			ApprovalNotes:    e.ApprovalNotes,
		}
		if e.ApprovalStatus != nil {
			s := string(*e.ApprovalStatus)
			dto.ApprovalStatus = &s
		}
		if len(e.ConditionsMet) > 0 {
			_ = json.Unmarshal(e.ConditionsMet, &dto.ConditionsMet)
		}
		out = append(out, dto)
	}
	return out, nil
}
