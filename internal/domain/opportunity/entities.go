package opportunity

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("opportunity not found")
	ErrInvalidTransition   = errors.New("cannot move backward or re-enter the same stage")
	ErrNoFurtherStage      = errors.New("no further stage")
	ErrApprovalRequired    = errors.New("current stage is awaiting approval")
	ErrStageRejected       = errors.New("current stage entry was rejected")
	ErrConcurrencyConflict = errors.New("opportunity was modified concurrently")
)

type WorkflowStatus string

const (
	StatusActive    WorkflowStatus = "active"
	StatusPaused    WorkflowStatus = "paused"
	StatusCompleted WorkflowStatus = "completed"
	StatusCancelled WorkflowStatus = "cancelled"
)

// Opportunity is the partial aggregate the workflow engine owns:
// CurrentStageID is mutated only by the transition usecase, guarded by
// LockVersion (optimistic CAS on save).
type Opportunity struct {
	ID uint64 `gorm:"primaryKey;column:id"`
	// Public identifier (32-char lowercase hex)
	OpportunityID  string         `gorm:"column:opportunity_id;type:char(32);not null;uniqueIndex:ux_opportunities_opportunity_id"`
	Title          string         `gorm:"column:title;size:256;not null"`
	CurrentStageID *uint64        `gorm:"column:current_stage_id;index"`
	WorkflowStatus WorkflowStatus `gorm:"column:workflow_status;size:16"`
	LockVersion    uint64         `gorm:"column:lock_version;not null;default:0"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Opportunity) TableName() string { return "opportunities" }
