package application

import (
	"gatepass-backend/internal/domain/workflow"
)

// The transition table: everything the status field is allowed to do, keyed
// by (current status, acting role, action). Anything absent is an invalid
// transition. The Safety approve is the one parameterized hop and is resolved
// by ForwardStatus instead of a fixed entry.
type transitionKey struct {
	from   Status
	role   workflow.Role
	action workflow.Action
}

var transitions = map[transitionKey]Status{
	{StatusPendingWithSSE, workflow.RoleSSE, workflow.ActionApprove}:     StatusPendingWithSafety,
	{StatusPendingWithSSE, workflow.RoleSSE, workflow.ActionReject}:      StatusRejectedBySSE,
	{StatusPendingWithSafety, workflow.RoleSafety, workflow.ActionReject}: StatusRejectedBySafety,

	// Officer1 always hands over to Officer2; kept as a real transition so
	// each stage's remarks stay attributable in the audit trail.
	{StatusPendingWithOfficer1, workflow.RoleOfficer1, workflow.ActionApprove}: StatusPendingWithOfficer2,
	{StatusPendingWithOfficer1, workflow.RoleOfficer1, workflow.ActionReject}:  StatusRejectedByOfficer,
	{StatusPendingWithOfficer2, workflow.RoleOfficer2, workflow.ActionApprove}: StatusPendingWithChos,
	{StatusPendingWithOfficer2, workflow.RoleOfficer2, workflow.ActionReject}:  StatusRejectedByOfficer,

	{StatusPendingWithChos, workflow.RoleChos, workflow.ActionApprove}: StatusChosApproved,
	{StatusPendingWithChos, workflow.RoleChos, workflow.ActionReject}:  StatusRejectedByChos,

	{StatusChosApproved, workflow.RoleChos, workflow.ActionGeneratePDF}: StatusPDFGenerated,
	{StatusPDFGenerated, workflow.RoleChos, workflow.ActionSendPDF}:     StatusSent,
}

// expectedStatus is the single pending status each approving role acts on.
var expectedStatus = map[workflow.Role]Status{
	workflow.RoleSSE:      StatusPendingWithSSE,
	workflow.RoleSafety:   StatusPendingWithSafety,
	workflow.RoleOfficer1: StatusPendingWithOfficer1,
	workflow.RoleOfficer2: StatusPendingWithOfficer2,
	workflow.RoleChos:     StatusPendingWithChos,
}

// ExpectedStatus returns the pending status role is permitted to act on.
func ExpectedStatus(role workflow.Role) (Status, bool) {
	s, ok := expectedStatus[role]
	return s, ok
}

// Next resolves the transition table for a fixed hop. The Safety approve is
// not in the table; use ForwardStatus for it. Every status change the engine
// makes, other than that forward, goes through here.
func Next(from Status, role workflow.Role, action workflow.Action) (Status, error) {
	next, ok := transitions[transitionKey{from, role, action}]
	if !ok {
		// Each (role, action) pair has exactly one legal source status, so
		// the table itself says what the caller should have been looking at.
		expected := ""
		for k := range transitions {
			if k.role == role && k.action == action {
				expected = string(k.from)
				break
			}
		}
		return "", workflow.NewTransitionError(role, action, expected, string(from))
	}
	return next, nil
}

// ForwardStatus maps the Safety-stage forward target to the next status.
func ForwardStatus(target OfficerTarget) (Status, error) {
	switch target {
	case TargetOfficer1:
		return StatusPendingWithOfficer1, nil
	case TargetOfficer2:
		return StatusPendingWithOfficer2, nil
	}
	return "", workflow.NewValidationError("forward_to", "must be officer1 or officer2")
}

// NextApproverRole names the role pool to notify once status advances.
func NextApproverRole(s Status) (workflow.Role, bool) {
	switch s {
	case StatusPendingWithSafety:
		return workflow.RoleSafety, true
	case StatusPendingWithOfficer1:
		return workflow.RoleOfficer1, true
	case StatusPendingWithOfficer2:
		return workflow.RoleOfficer2, true
	case StatusPendingWithChos:
		return workflow.RoleChos, true
	}
	return "", false
}
