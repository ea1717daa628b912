package history

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("stage history entry not found")
	ErrNotApprovable  = errors.New("entry does not require approval")
	ErrAlreadyDecided = errors.New("approval decision already recorded")
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Entry is one occupancy interval of one opportunity in one stage.
// ExitedAt is null while the entry is current; RequiresApproval and the
// approval fields are snapshotted from the template at entry time so later
// template edits never rewrite history.
type Entry struct {
	ID uint64 `gorm:"primaryKey;column:id"`
	// Public identifier (32-char lowercase hex)
	EntryID       string `gorm:"column:entry_id;type:char(32);not null;uniqueIndex:ux_stage_history_entry_id"`
	OpportunityID uint64 `gorm:"column:opportunity_id;not null;index:idx_stage_history_opportunity"`
	StageID       uint64 `gorm:"column:stage_id;not null;index"`

	EnteredAt    time.Time  `gorm:"column:entered_at;not null"`
	ExitedAt     *time.Time `gorm:"column:exited_at"`
	DurationDays *int       `gorm:"column:duration_days"`

	ConditionsMet datatypes.JSON `gorm:"column:conditions_met"`
	Notes         string         `gorm:"column:notes;type:text"`

	RequiresApproval bool            `gorm:"column:requires_approval;not null;default:false"`
	ApprovalStatus   *ApprovalStatus `gorm:"column:approval_status;size:16"`
	ApprovedBy       *string         `gorm:"column:approved_by;type:char(32)"`
	ApprovalAt       *time.Time      `gorm:"column:approval_at"`
	ApprovalNotes    *string         `gorm:"column:approval_notes;type:text"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Entry) TableName() string { return "stage_history" }

// Close stamps the exit time and derives the whole-day duration.
func (e *Entry) Close(at time.Time) {
	e.ExitedAt = &at
	d := int(at.Sub(e.EnteredAt).Hours() / 24)
	e.DurationDays = &d
}
