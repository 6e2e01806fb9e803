package workflow

// Role is the closed set of actors known to the workflow engine. The
// contractor role only ever creates; the remaining roles form the approval
// chain in order.
type Role string

const (
	RoleContractor Role = "contractor"
	RoleSSE        Role = "sse"
	RoleSafety     Role = "safety_officer"
	RoleOfficer1   Role = "officer1"
	RoleOfficer2   Role = "officer2"
	RoleChos       Role = "chos_npb"
)

// KnownRole reports whether r belongs to the closed role set.
func KnownRole(r Role) bool {
	switch r {
	case RoleContractor, RoleSSE, RoleSafety, RoleOfficer1, RoleOfficer2, RoleChos:
		return true
	}
	return false
}

// Action is the kind of a workflow operation; it doubles as the audit
// entry's action_kind column.
type Action string

const (
	ActionCreate       Action = "create"
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
	ActionForward      Action = "forward"
	ActionModifyPeriod Action = "modify_period"
	ActionGeneratePDF  Action = "generate_pdf"
	ActionSendPDF      Action = "send_pdf"
)
