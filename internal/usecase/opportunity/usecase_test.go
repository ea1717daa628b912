package opportunity

import (
	"context"
	"errors"
	"testing"

	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	stageDomain "github.com/ptbantu/crm-backend/internal/domain/stage"
	"github.com/ptbantu/crm-backend/internal/testutil/opportunitymock"
	"github.com/ptbantu/crm-backend/internal/testutil/templatemock"

	"gorm.io/gorm"
)

func TestUsecase_Create(t *testing.T) {
	var created *oppDomain.Opportunity
	repo := &opportunitymock.Repo{
		CreateFn: func(ctx context.Context, o *oppDomain.Opportunity) error {
			created = o
			return nil
		},
	}
	uc := NewUsecase(repo, &templatemock.Repo{})

	dto, err := uc.Create(context.Background(), CreateOpportunityInput{Title: "Acme deal"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created == nil || len(created.OpportunityID) != 32 {
		t.Fatalf("created opportunity wrong: %+v", created)
	}
	if created.CurrentStageID != nil || created.WorkflowStatus != "" {
		t.Fatalf("new opportunity must have no stage yet: %+v", created)
	}
	if dto.Title != "Acme deal" || dto.CurrentStageCode != "" {
		t.Fatalf("dto wrong: %+v", dto)
	}

	if _, err := uc.Create(context.Background(), CreateOpportunityInput{}); err == nil {
		t.Fatal("want error for empty title")
	}
}

func TestUsecase_Get(t *testing.T) {
	stageID := uint64(20)
	repo := &opportunitymock.Repo{
		GetByOpportunityIDFn: func(ctx context.Context, id string) (*oppDomain.Opportunity, error) {
			if id != "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
				return nil, gorm.ErrRecordNotFound
			}
			return &oppDomain.Opportunity{
				ID:             1,
				OpportunityID:  id,
				Title:          "Acme deal",
				CurrentStageID: &stageID,
				WorkflowStatus: oppDomain.StatusActive,
			}, nil
		},
	}
	tpls := &templatemock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*stageDomain.Template, error) {
			if id != stageID {
				return nil, gorm.ErrRecordNotFound
			}
			return &stageDomain.Template{ID: id, Code: "quoted", StageOrder: 2}, nil
		},
	}
	uc := NewUsecase(repo, tpls)

	dto, err := uc.Get(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if dto.CurrentStageCode != "quoted" || dto.WorkflowStatus != "active" {
		t.Fatalf("dto wrong: %+v", dto)
	}

	if _, err := uc.Get(context.Background(), "ffffffffffffffffffffffffffffffff"); !errors.Is(err, oppDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
