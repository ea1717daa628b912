package approval

import "time"

type DecideInput struct {
	EntryID    string
	Decision   string // "approved" | "rejected"
	ApproverID string // 32-char hex
	Notes      string
}

type DecisionDTO struct {
	EntryID        string    `json:"entry_id"`
	ApprovalStatus string    `json:"approval_status"`
	ApprovedBy     string    `json:"approved_by"`
	ApprovalAt     time.Time `json:"approval_at"`
	ApprovalNotes  string    `json:"approval_notes,omitempty"`
}
