package stage

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("stage template not found")
	ErrDuplicateCode  = errors.New("stage template code already in use")
	ErrDuplicateOrder = errors.New("stage order already used by an active template")
)

// Template is one node of the workflow definition. stage_order gives a total
// order over active templates; uniqueness among active rows is validated on
// write and backed by ux_stage_templates_order_active (Active is set only
// while the row is active, so inactive rows never collide).
type Template struct {
	ID uint64 `gorm:"primaryKey;column:id"`
	// Public identifier (32-char lowercase hex)
	TemplateID       string         `gorm:"column:template_id;type:char(32);not null;uniqueIndex:ux_stage_templates_template_id"`
	Code             string         `gorm:"column:code;size:64;not null;uniqueIndex:ux_stage_templates_code"`
	NameEn           string         `gorm:"column:name_en;size:128;not null"`
	NameAr           string         `gorm:"column:name_ar;size:128"`
	DescriptionEn    string         `gorm:"column:description_en;type:text"`
	DescriptionAr    string         `gorm:"column:description_ar;type:text"`
	StageOrder       int            `gorm:"column:stage_order;not null;uniqueIndex:ux_stage_templates_order_active"`
	RequiresApproval bool           `gorm:"column:requires_approval;not null;default:false"`
	ApprovalRoles    datatypes.JSON `gorm:"column:approval_roles"`
	Conditions       datatypes.JSON `gorm:"column:conditions"`
	IsActive         bool           `gorm:"column:is_active;not null;default:true"`
	// Set to true while IsActive, NULL otherwise, so the composite unique
	// index only bites for active rows.
	Active    *bool          `gorm:"column:active;uniqueIndex:ux_stage_templates_order_active"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Template) TableName() string { return "stage_templates" }

// SyncActiveMarker keeps the partial-unique marker in step with IsActive.
// Call before any create/save.
func (t *Template) SyncActiveMarker() {
	if t.IsActive {
		v := true
		t.Active = &v
		return
	}
	t.Active = nil
}
