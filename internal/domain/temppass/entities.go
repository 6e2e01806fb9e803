package temppass

import (
	"time"

	"gorm.io/gorm"

	"gatepass-backend/internal/domain/workflow"
)

// Status is the expedited pass's own, smaller status set. No SSE or Safety
// stage exists on this path.
type Status string

const (
	StatusPendingWithOfficer1 Status = "pending_with_officer1"
	StatusPendingWithOfficer2 Status = "pending_with_officer2"
	StatusPendingWithChos     Status = "pending_with_chos"
	StatusApproved            Status = "approved"
	StatusRejected            Status = "rejected"
)

func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// OfficerTarget is the submitter's nomination of which officer reviews first.
type OfficerTarget string

const (
	TargetOfficer1 OfficerTarget = "officer1"
	TargetOfficer2 OfficerTarget = "officer2"
)

// TemporaryPass is the expedited short-duration aggregate. Independent
// lifecycle from Application; same atomicity and audit contract.
type TemporaryPass struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	LOANumber       string    `gorm:"column:loa_number;size:64;not null;index" json:"loa_number"`
	FirmID          uint64    `gorm:"column:firm_id;not null;index" json:"firm_id"`
	Purpose         string    `gorm:"column:purpose;type:text;not null" json:"purpose"`
	NumberOfPersons int       `gorm:"column:number_of_persons;not null" json:"number_of_persons"`
	PeriodFrom      time.Time `gorm:"column:period_from;type:date;not null" json:"period_from"`
	PeriodTo        time.Time `gorm:"column:period_to;type:date;not null" json:"period_to"`

	Status             Status        `gorm:"column:status;size:32;not null;index" json:"status"`
	ForwardedToOfficer OfficerTarget `gorm:"column:forwarded_to_officer;size:16;not null" json:"forwarded_to_officer"`
	AssignedOfficerID  uint64        `gorm:"column:assigned_officer_id;not null;index" json:"assigned_officer_id"`

	OfficerRemarks    *string    `gorm:"column:officer_remarks;type:text" json:"officer_remarks,omitempty"`
	OfficerReviewedBy *uint64    `gorm:"column:officer_reviewed_by" json:"officer_reviewed_by,omitempty"`
	OfficerReviewedAt *time.Time `gorm:"column:officer_reviewed_at" json:"officer_reviewed_at,omitempty"`

	ChosRemarks    *string    `gorm:"column:chos_remarks;type:text" json:"chos_remarks,omitempty"`
	ChosApprovedAt *time.Time `gorm:"column:chos_approved_at" json:"chos_approved_at,omitempty"`
	PermitNumber   *string    `gorm:"column:permit_number;size:32;uniqueIndex" json:"permit_number,omitempty"`
	PDFFilePath    *string    `gorm:"column:pdf_file_path;type:text" json:"pdf_file_path,omitempty"`

	// The rejecting stage is recorded as free text, not an enum suffix.
	RejectedByRole  *string `gorm:"column:rejected_by_role;size:32" json:"rejected_by_role,omitempty"`
	RejectionReason *string `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	SubmittedAt time.Time      `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (TemporaryPass) TableName() string { return "temporary_passes" }

// LogEntry is the temporary-pass audit row, kept in its own table.
type LogEntry struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TemporaryPassID uint64          `gorm:"column:temporary_pass_id;not null;index" json:"temporary_pass_id"`
	ActorUserID     *uint64         `gorm:"column:actor_user_id" json:"actor_user_id,omitempty"`
	ActorRole       workflow.Role   `gorm:"column:actor_role;size:32;not null" json:"actor_role"`
	StatusBefore    *string         `gorm:"column:status_before;size:32" json:"status_before,omitempty"`
	StatusAfter     string          `gorm:"column:status_after;size:32;not null" json:"status_after"`
	ActionKind      workflow.Action `gorm:"column:action_kind;size:16;not null" json:"action_kind"`
	Remarks         *string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LogEntry) TableName() string { return "temporary_pass_log" }
