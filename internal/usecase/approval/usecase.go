package approval

import (
	"context"
	"errors"
	"time"

	historyDomain "github.com/ptbantu/crm-backend/internal/domain/history"
	"github.com/ptbantu/crm-backend/internal/domain/uow"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Usecase records a one-time approval decision against a pending history
// entry. It never moves the opportunity: by default the stage change has
// already been applied and the decision is an after-the-fact sign-off (the
// transition usecase's blocking flag is what turns it into a hard gate).
type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log}
}

func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*DecisionDTO, error) {
	decision := historyDomain.ApprovalStatus(in.Decision)
	if decision != historyDomain.ApprovalApproved && decision != historyDomain.ApprovalRejected {
		return nil, historyDomain.ErrNotApprovable
	}

	var dto *DecisionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := r.History.GetByEntryID(ctx, in.EntryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return historyDomain.ErrNotFound
			}
			return err
		}

		if !e.RequiresApproval || e.ApprovalStatus == nil {
			return historyDomain.ErrNotApprovable
		}
		// decisions are final: first writer wins, the rest fail here
		if *e.ApprovalStatus != historyDomain.ApprovalPending {
			return historyDomain.ErrAlreadyDecided
		}

		now := time.Now().UTC()
		e.ApprovalStatus = &decision
		e.ApprovedBy = &in.ApproverID
		e.ApprovalAt = &now
		if in.Notes != "" {
			e.ApprovalNotes = &in.Notes
		}
		if err := r.History.Save(ctx, e); err != nil {
			return err
		}

		u.log.Info("stage entry decided",
			zap.String("entry_id", e.EntryID),
			zap.String("decision", string(decision)),
			zap.String("approved_by", in.ApproverID))

		dto = &DecisionDTO{
			EntryID:        e.EntryID,
			ApprovalStatus: string(decision),
			ApprovedBy:     in.ApproverID,
			ApprovalAt:     now,
			ApprovalNotes:  in.Notes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
