package notify

import "context"

// Template identifies the message kind; rendering is the dispatcher's
// problem, the engine only picks the kind and the payload.
type Template string

const (
	TemplateApplicationSubmitted Template = "application_submitted"
	TemplateStageApproved        Template = "stage_approved"
	TemplateReviewRequested      Template = "review_requested"
	TemplateApplicationRejected  Template = "application_rejected"
	TemplateGatePassIssued       Template = "gate_pass_issued"
	TemplateTempPassSubmitted    Template = "temp_pass_submitted"
	TemplateTempPassIssued       Template = "temp_pass_issued"
	TemplateTempPassRejected     Template = "temp_pass_rejected"
)

// Result is the delivery outcome, used for logging only.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
}

// Dispatcher sends one message to one recipient. Fire-and-forget from the
// engine's perspective: a failed send is logged and never rolls back or
// blocks a committed transition. Attachment, when set, is an opaque artifact
// reference.
type Dispatcher interface {
	Notify(ctx context.Context, recipientEmail string, tpl Template, payload map[string]any) (Result, error)
	NotifyWithAttachment(ctx context.Context, recipientEmail string, tpl Template, payload map[string]any, attachmentRef string) (Result, error)
}
