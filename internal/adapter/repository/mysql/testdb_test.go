package mysql

import (
	"testing"
	"time"

	historyDomain "github.com/ptbantu/crm-backend/internal/domain/history"
	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	stageDomain "github.com/ptbantu/crm-backend/internal/domain/stage"
	"github.com/ptbantu/crm-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB migrates all three workflow tables into an in-memory sqlite DB.
// The domain models carry no mysql-only column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&stageDomain.Template{}, &oppDomain.Opportunity{}, &historyDomain.Entry{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeTemplate(code string, order int, requiresApproval bool) *stageDomain.Template {
	return &stageDomain.Template{
		TemplateID:       id.NewID32(),
		Code:             code,
		NameEn:           code,
		StageOrder:       order,
		RequiresApproval: requiresApproval,
		IsActive:         true,
	}
}

func makeOpportunity(title string) *oppDomain.Opportunity {
	return &oppDomain.Opportunity{
		OpportunityID: id.NewID32(),
		Title:         title,
	}
}

func makeEntry(oppID, stageID uint64, enteredAt time.Time, requiresApproval bool) *historyDomain.Entry {
	e := &historyDomain.Entry{
		EntryID:          id.NewID32(),
		OpportunityID:    oppID,
		StageID:          stageID,
		EnteredAt:        enteredAt,
		RequiresApproval: requiresApproval,
	}
	if requiresApproval {
		s := historyDomain.ApprovalPending
		e.ApprovalStatus = &s
	}
	return e
}
