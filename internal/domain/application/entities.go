package application

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPendingWithSSE      Status = "pending_with_sse"
	StatusPendingWithSafety   Status = "pending_with_safety"
	StatusPendingWithOfficer1 Status = "pending_with_officer1"
	StatusPendingWithOfficer2 Status = "pending_with_officer2"
	StatusPendingWithChos     Status = "pending_with_chos"
	StatusChosApproved        Status = "chos_approved"
	StatusPDFGenerated        Status = "pdf_generated"
	StatusSent                Status = "sent"
	StatusRejectedBySSE       Status = "rejected_by_sse"
	StatusRejectedBySafety    Status = "rejected_by_safety"
	StatusRejectedByOfficer   Status = "rejected_by_officer"
	StatusRejectedByChos      Status = "rejected_by_chos"
)

// FinalStatus values; empty while the application is still in flight.
const (
	FinalApproved = "approved"
	FinalRejected = "rejected"
)

// OfficerTarget is the Safety-stage forward choice, the one branch point in
// the chain.
type OfficerTarget string

const (
	TargetOfficer1 OfficerTarget = "officer1"
	TargetOfficer2 OfficerTarget = "officer2"
)

// Terminal reports whether no further workflow transition may leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejectedBySSE, StatusRejectedBySafety, StatusRejectedByOfficer, StatusRejectedByChos, StatusSent:
		return true
	}
	return false
}

// Rejected reports whether s is one of the rejected_by_* off-ramps.
func (s Status) Rejected() bool {
	switch s {
	case StatusRejectedBySSE, StatusRejectedBySafety, StatusRejectedByOfficer, StatusRejectedByChos:
		return true
	}
	return false
}

// Supervisor is a person-in-charge row attached to one application.
type Supervisor struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID uint64 `gorm:"column:application_id;not null;index" json:"-"`
	Name          string `gorm:"column:name;size:128;not null" json:"name"`
	Phone         string `gorm:"column:phone;size:20;not null" json:"phone"`
}

func (Supervisor) TableName() string { return "application_supervisors" }

// ToolItem is one tool/material line the pass covers.
type ToolItem struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID uint64 `gorm:"column:application_id;not null;index" json:"-"`
	Description   string `gorm:"column:description;size:255;not null" json:"description"`
	Category      string `gorm:"column:category;size:64" json:"category"`
	Quantity      int    `gorm:"column:quantity;not null" json:"quantity"`
}

func (ToolItem) TableName() string { return "application_tool_items" }

// Application is the gate-pass request aggregate. The payload block is set
// once at submission; the per-stage blocks are each written exactly once by
// the stage that owns them, through the workflow engine only.
type Application struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	// Contract linkage, denormalized at submission.
	LOANumber     string `gorm:"column:loa_number;size:64;not null;index" json:"loa_number"`
	FirmID        uint64 `gorm:"column:firm_id;not null;index" json:"firm_id"`
	AssignedSSEID uint64 `gorm:"column:assigned_sse_id;not null;index" json:"assigned_sse_id"`

	// Payload.
	NumberOfPersons     int         `gorm:"column:number_of_persons;not null" json:"number_of_persons"`
	NumberOfSupervisors int         `gorm:"column:number_of_supervisors;not null" json:"number_of_supervisors"`
	GatePassFrom        time.Time   `gorm:"column:gate_pass_from;type:date;not null" json:"gate_pass_from"`
	GatePassTo          time.Time   `gorm:"column:gate_pass_to;type:date;not null" json:"gate_pass_to"`
	Supervisors         []Supervisor `gorm:"foreignKey:ApplicationID" json:"supervisors"`
	ToolItems           []ToolItem   `gorm:"foreignKey:ApplicationID" json:"tool_items"`

	SpecialTiming       bool    `gorm:"column:special_timing;not null;default:false" json:"special_timing"`
	SpecialTimingFrom   *string `gorm:"column:special_timing_from;size:8" json:"special_timing_from,omitempty"`
	SpecialTimingTo     *string `gorm:"column:special_timing_to;size:8" json:"special_timing_to,omitempty"`
	SpecialApprovalFile *string `gorm:"column:special_approval_file;type:text" json:"special_approval_file,omitempty"`

	LabourLicense          bool    `gorm:"column:labour_license;not null;default:false" json:"labour_license"`
	LabourLicenseNumber    *string `gorm:"column:labour_license_number;size:64" json:"labour_license_number,omitempty"`
	InterStateMigration    bool    `gorm:"column:inter_state_migration;not null;default:false" json:"inter_state_migration"`
	MigrationLicenseNumber *string `gorm:"column:migration_license_number;size:64" json:"migration_license_number,omitempty"`

	Insurance             bool       `gorm:"column:insurance;not null;default:false" json:"insurance"`
	InsurancePolicyNumber *string    `gorm:"column:insurance_policy_number;size:64" json:"insurance_policy_number,omitempty"`
	InsurancePersons      *int       `gorm:"column:insurance_persons" json:"insurance_persons,omitempty"`
	InsuranceFrom         *time.Time `gorm:"column:insurance_from;type:date" json:"insurance_from,omitempty"`
	InsuranceTo           *time.Time `gorm:"column:insurance_to;type:date" json:"insurance_to,omitempty"`
	InsuranceFile         *string    `gorm:"column:insurance_file;type:text" json:"insurance_file,omitempty"`

	ESI          bool       `gorm:"column:esi;not null;default:false" json:"esi"`
	ESINumber    *string    `gorm:"column:esi_number;size:64" json:"esi_number,omitempty"`
	ESIPersons   *int       `gorm:"column:esi_persons" json:"esi_persons,omitempty"`
	ESIIssueDate *time.Time `gorm:"column:esi_issue_date;type:date" json:"esi_issue_date,omitempty"`
	ESIFile      *string    `gorm:"column:esi_file;type:text" json:"esi_file,omitempty"`

	// Workflow state. Mutated solely through engine transitions.
	Status Status `gorm:"column:status;size:32;not null;index;default:'pending_with_sse'" json:"status"`

	SSERemarks    *string    `gorm:"column:sse_remarks;type:text" json:"sse_remarks,omitempty"`
	SSEApprovedBy *uint64    `gorm:"column:sse_approved_by" json:"sse_approved_by,omitempty"`
	SSEApprovedAt *time.Time `gorm:"column:sse_approved_at" json:"sse_approved_at,omitempty"`

	SafetyRemarks      *string    `gorm:"column:safety_remarks;type:text" json:"safety_remarks,omitempty"`
	SafetyApprovedBy   *uint64    `gorm:"column:safety_approved_by" json:"safety_approved_by,omitempty"`
	SafetyApprovedAt   *time.Time `gorm:"column:safety_approved_at" json:"safety_approved_at,omitempty"`
	ForwardedToOfficer *string    `gorm:"column:forwarded_to_officer;size:16" json:"forwarded_to_officer,omitempty"`
	AssignedOfficer1ID *uint64    `gorm:"column:assigned_officer1_id;index" json:"assigned_officer1_id,omitempty"`
	AssignedOfficer2ID *uint64    `gorm:"column:assigned_officer2_id;index" json:"assigned_officer2_id,omitempty"`

	Officer1Status     *string    `gorm:"column:officer1_status;size:16" json:"officer1_status,omitempty"`
	Officer1Remarks    *string    `gorm:"column:officer1_remarks;type:text" json:"officer1_remarks,omitempty"`
	Officer1ReviewedAt *time.Time `gorm:"column:officer1_reviewed_at" json:"officer1_reviewed_at,omitempty"`

	Officer2Status     *string    `gorm:"column:officer2_status;size:16" json:"officer2_status,omitempty"`
	Officer2Remarks    *string    `gorm:"column:officer2_remarks;type:text" json:"officer2_remarks,omitempty"`
	Officer2ReviewedAt *time.Time `gorm:"column:officer2_reviewed_at" json:"officer2_reviewed_at,omitempty"`

	ChosRemarks      *string    `gorm:"column:chos_remarks;type:text" json:"chos_remarks,omitempty"`
	ChosApprovedAt   *time.Time `gorm:"column:chos_approved_at" json:"chos_approved_at,omitempty"`
	GatePermitNumber *string    `gorm:"column:gate_permit_number;size:32;uniqueIndex" json:"gate_permit_number,omitempty"`

	RejectionReason *string `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	FinalStatus     *string `gorm:"column:final_status;size:16" json:"final_status,omitempty"`

	PDFFilePath *string    `gorm:"column:pdf_file_path;type:text" json:"pdf_file_path,omitempty"`
	EmailSentAt *time.Time `gorm:"column:email_sent_at" json:"email_sent_at,omitempty"`

	SubmittedAt time.Time      `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Application) TableName() string { return "applications" }
