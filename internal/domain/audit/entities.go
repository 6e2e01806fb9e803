package audit

import (
	"time"

	"gatepass-backend/internal/domain/workflow"
)

// Entry is one immutable audit row; exactly one is written per workflow
// transition (and per period modification, with status_before ==
// status_after). ActorUserID is nil only for the contractor-side creation
// entry.
type Entry struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID uint64          `gorm:"column:application_id;not null;index" json:"application_id"`
	ActorUserID   *uint64         `gorm:"column:actor_user_id" json:"actor_user_id,omitempty"`
	ActorRole     workflow.Role   `gorm:"column:actor_role;size:32;not null" json:"actor_role"`
	StatusBefore  *string         `gorm:"column:status_before;size:32" json:"status_before,omitempty"`
	StatusAfter   string          `gorm:"column:status_after;size:32;not null" json:"status_after"`
	ActionKind    workflow.Action `gorm:"column:action_kind;size:16;not null" json:"action_kind"`
	Remarks       *string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "application_audit_log" }
