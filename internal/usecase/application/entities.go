package application

import (
	"time"

	"gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/audit"
	"gatepass-backend/internal/domain/workflow"
)

type SupervisorInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ToolItemInput struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
}

// SubmitInput is the contractor-side creation payload. The payload block is
// immutable after creation except for the one Safety period override.
type SubmitInput struct {
	LOANumber           string            `json:"loa_number"`
	NumberOfPersons     int               `json:"number_of_persons"`
	NumberOfSupervisors int               `json:"number_of_supervisors"`
	PeriodFrom          time.Time         `json:"period_from"`
	PeriodTo            time.Time         `json:"period_to"`
	Supervisors         []SupervisorInput `json:"supervisors"`
	ToolItems           []ToolItemInput   `json:"tool_items"`

	SpecialTiming       bool    `json:"special_timing"`
	SpecialTimingFrom   *string `json:"special_timing_from,omitempty"`
	SpecialTimingTo     *string `json:"special_timing_to,omitempty"`
	SpecialApprovalFile *string `json:"special_approval_file,omitempty"`

	LabourLicense          bool    `json:"labour_license"`
	LabourLicenseNumber    *string `json:"labour_license_number,omitempty"`
	InterStateMigration    bool    `json:"inter_state_migration"`
	MigrationLicenseNumber *string `json:"migration_license_number,omitempty"`

	Insurance             bool       `json:"insurance"`
	InsurancePolicyNumber *string    `json:"insurance_policy_number,omitempty"`
	InsurancePersons      *int       `json:"insurance_persons,omitempty"`
	InsuranceFrom         *time.Time `json:"insurance_from,omitempty"`
	InsuranceTo           *time.Time `json:"insurance_to,omitempty"`
	InsuranceFile         *string    `json:"insurance_file,omitempty"`

	ESI          bool       `json:"esi"`
	ESINumber    *string    `json:"esi_number,omitempty"`
	ESIPersons   *int       `json:"esi_persons,omitempty"`
	ESIIssueDate *time.Time `json:"esi_issue_date,omitempty"`
	ESIFile      *string    `json:"esi_file,omitempty"`
}

// Actor is the already-authenticated (userId, role) pair every mutating call
// carries. Authentication itself is external.
type Actor struct {
	UserID uint64        `json:"user_id"`
	Role   workflow.Role `json:"role"`
}

type ApproveInput struct {
	ApplicationID uint64 `json:"application_id"`
	Actor         Actor  `json:"actor"`
	Remarks       string `json:"remarks"`
	// Safety stage only: mandatory forward target and specific officer.
	ForwardTo       application.OfficerTarget `json:"forward_to,omitempty"`
	ForwardToUserID uint64                    `json:"forward_to_user_id,omitempty"`
}

type RejectInput struct {
	ApplicationID uint64 `json:"application_id"`
	Actor         Actor  `json:"actor"`
	Remarks       string `json:"remarks"`
}

type ModifyPeriodInput struct {
	ApplicationID uint64    `json:"application_id"`
	Actor         Actor     `json:"actor"`
	PeriodFrom    time.Time `json:"period_from"`
	PeriodTo      time.Time `json:"period_to"`
}

type GenerateDocumentInput struct {
	ApplicationID uint64 `json:"application_id"`
	Actor         Actor  `json:"actor"`
}

type SendInput struct {
	ApplicationID uint64 `json:"application_id"`
	Actor         Actor  `json:"actor"`
}

// TransitionResult is what every mutating call returns: the updated
// aggregate plus the old/new status pair.
type TransitionResult struct {
	Application  *application.Application `json:"application"`
	StatusBefore application.Status       `json:"status_before"`
	StatusAfter  application.Status       `json:"status_after"`
}

// HistoryEntry is one audit row joined with the actor's display name.
type HistoryEntry struct {
	audit.Entry
	ActorName string `json:"actor_name,omitempty"`
}
