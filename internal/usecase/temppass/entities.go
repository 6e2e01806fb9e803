package temppass

import (
	"time"

	"gatepass-backend/internal/domain/temppass"
	"gatepass-backend/internal/domain/workflow"
)

type Actor struct {
	UserID uint64        `json:"user_id"`
	Role   workflow.Role `json:"role"`
}

// SubmitInput creates an expedited pass. The submitter nominates the
// reviewing officer directly; there is no SSE or Safety stage on this path.
type SubmitInput struct {
	LOANumber       string                 `json:"loa_number"`
	Purpose         string                 `json:"purpose"`
	NumberOfPersons int                    `json:"number_of_persons"`
	PeriodFrom      time.Time              `json:"period_from"`
	PeriodTo        time.Time              `json:"period_to"`
	ForwardTo       temppass.OfficerTarget `json:"forward_to"`
	ForwardToUserID uint64                 `json:"forward_to_user_id"`
}

type ApproveInput struct {
	PassID  uint64 `json:"pass_id"`
	Actor   Actor  `json:"actor"`
	Remarks string `json:"remarks"`
}

// IssueInput is the chos action that approves, mints the permit number and
// renders the document in one call.
type IssueInput struct {
	PassID  uint64 `json:"pass_id"`
	Actor   Actor  `json:"actor"`
	Remarks string `json:"remarks"`
}

type RejectInput struct {
	PassID  uint64 `json:"pass_id"`
	Actor   Actor  `json:"actor"`
	Remarks string `json:"remarks"`
}

type TransitionResult struct {
	Pass         *temppass.TemporaryPass `json:"pass"`
	StatusBefore temppass.Status         `json:"status_before"`
	StatusAfter  temppass.Status         `json:"status_after"`
}

type HistoryEntry struct {
	temppass.LogEntry
	ActorName string `json:"actor_name,omitempty"`
}
