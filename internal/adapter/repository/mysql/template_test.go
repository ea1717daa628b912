package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func seedTemplates(t *testing.T, repo *TemplateRepository) {
	t.Helper()
	ctx := context.Background()
	for _, tpl := range []struct {
		code  string
		order int
	}{
		{"new", 1}, {"quoted", 2}, {"won", 3},
	} {
		if err := repo.Create(ctx, makeTemplate(tpl.code, tpl.order, false)); err != nil {
			t.Fatalf("seed %s: %v", tpl.code, err)
		}
	}
}

func TestTemplateLookups(t *testing.T) {
	db := openTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()
	seedTemplates(t, repo)

	got, err := repo.GetByCode(ctx, "quoted")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if got.StageOrder != 2 {
		t.Errorf("GetByCode order = %d, want 2", got.StageOrder)
	}

	if got, err = repo.GetByOrder(ctx, 3); err != nil || got.Code != "won" {
		t.Errorf("GetByOrder(3) = (%v, %v), want won", got, err)
	}

	if got, err = repo.GetFirst(ctx); err != nil || got.Code != "new" {
		t.Errorf("GetFirst = (%v, %v), want new", got, err)
	}

	if _, err = repo.GetByCode(ctx, "lost"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("GetByCode(lost) err = %v, want record-not-found", err)
	}
}

func TestTemplateGetNextPrevious(t *testing.T) {
	db := openTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()
	seedTemplates(t, repo)

	next, err := repo.GetNext(ctx, 1)
	if err != nil || next.Code != "quoted" {
		t.Fatalf("GetNext(1) = (%v, %v), want quoted", next, err)
	}
	// gaps in the order sequence are skipped over
	if next, err = repo.GetNext(ctx, 2); err != nil || next.Code != "won" {
		t.Fatalf("GetNext(2) = (%v, %v), want won", next, err)
	}
	// terminal stage has no next
	if _, err = repo.GetNext(ctx, 3); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetNext(3) err = %v, want record-not-found", err)
	}

	prev, err := repo.GetPrevious(ctx, 3)
	if err != nil || prev.Code != "quoted" {
		t.Fatalf("GetPrevious(3) = (%v, %v), want quoted", prev, err)
	}
	if _, err = repo.GetPrevious(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetPrevious(1) err = %v, want record-not-found", err)
	}
}

func TestTemplateInactiveExcluded(t *testing.T) {
	db := openTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()
	seedTemplates(t, repo)

	quoted, err := repo.GetByCode(ctx, "quoted")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	quoted.IsActive = false
	if err := repo.Save(ctx, quoted); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// ordered lookups now skip the retired stage
	if next, err := repo.GetNext(ctx, 1); err != nil || next.Code != "won" {
		t.Fatalf("GetNext(1) after retire = (%v, %v), want won", next, err)
	}
	if _, err := repo.GetByCode(ctx, "quoted"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByCode(quoted) err = %v, want record-not-found", err)
	}
	// numeric lookup still resolves it for history rows
	if got, err := repo.GetByID(ctx, quoted.ID); err != nil || got.Code != "quoted" {
		t.Fatalf("GetByID = (%v, %v), want quoted", got, err)
	}

	list, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(list) != 2 || list[0].Code != "new" || list[1].Code != "won" {
		t.Fatalf("ListActive = %+v, want [new won]", list)
	}
}

func TestTemplateOrderUniqueAmongActive(t *testing.T) {
	db := openTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()
	seedTemplates(t, repo)

	// same order as an active row is rejected by the partial unique index
	if err := repo.Create(ctx, makeTemplate("dup", 2, false)); err == nil {
		t.Fatal("expected unique violation for duplicate active order")
	}

	// retiring the holder frees the slot
	quoted, err := repo.GetByCode(ctx, "quoted")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	quoted.IsActive = false
	if err := repo.Save(ctx, quoted); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Create(ctx, makeTemplate("requote", 2, false)); err != nil {
		t.Fatalf("Create after retire: %v", err)
	}
}
