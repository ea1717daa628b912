package mysql

import (
	"context"
	"errors"
	"testing"

	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"

	"gorm.io/gorm"
)

func TestOpportunityCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewOpportunityRepository(db)
	ctx := context.Background()

	o := makeOpportunity("Acme renewal")
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetByOpportunityID(ctx, o.OpportunityID)
	if err != nil {
		t.Fatalf("GetByOpportunityID: %v", err)
	}
	if got.Title != "Acme renewal" || got.CurrentStageID != nil {
		t.Errorf("unexpected opportunity: %+v", got)
	}

	if _, err := repo.GetByOpportunityID(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing id err = %v, want record-not-found", err)
	}

	byNum, err := repo.GetByID(ctx, o.ID)
	if err != nil || byNum.OpportunityID != o.OpportunityID {
		t.Errorf("GetByID = (%+v, %v)", byNum, err)
	}
}

func TestOpportunitySaveCAS(t *testing.T) {
	db := openTestDB(t)
	repo := NewOpportunityRepository(db)
	tpls := NewTemplateRepository(db)
	ctx := context.Background()

	tpl := makeTemplate("new", 1, false)
	if err := tpls.Create(ctx, tpl); err != nil {
		t.Fatalf("seed template: %v", err)
	}
	o := makeOpportunity("CAS target")
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	o.CurrentStageID = &tpl.ID
	o.WorkflowStatus = oppDomain.StatusActive
	if err := repo.SaveCAS(ctx, o); err != nil {
		t.Fatalf("SaveCAS: %v", err)
	}
	if o.LockVersion != 1 {
		t.Fatalf("LockVersion = %d, want 1", o.LockVersion)
	}

	// a writer holding the old version must lose
	stale := *o
	stale.LockVersion = 0
	if err := repo.SaveCAS(ctx, &stale); !errors.Is(err, oppDomain.ErrConcurrencyConflict) {
		t.Fatalf("stale SaveCAS err = %v, want ErrConcurrencyConflict", err)
	}

	got, err := repo.GetByOpportunityID(ctx, o.OpportunityID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.LockVersion != 1 || got.CurrentStageID == nil || *got.CurrentStageID != tpl.ID {
		t.Errorf("post-CAS state: %+v", got)
	}
}

func TestOpportunityGetForUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewOpportunityRepository(db)
	ctx := context.Background()

	o := makeOpportunity("locked read")
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByOpportunityIDForUpdate(ctx, o.OpportunityID)
	if err != nil {
		t.Fatalf("GetByOpportunityIDForUpdate: %v", err)
	}
	if got.OpportunityID != o.OpportunityID {
		t.Errorf("unexpected row: %+v", got)
	}
}
