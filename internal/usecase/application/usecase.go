package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domainApp "gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/audit"
	"gatepass-backend/internal/domain/document"
	"gatepass-backend/internal/domain/notify"
	"gatepass-backend/internal/domain/refdata"
	"gatepass-backend/internal/domain/uow"
	"gatepass-backend/internal/domain/workflow"
	"gatepass-backend/pkg/id"
)

// Compliance thresholds on head count, checked at submission.
const (
	labourLicenseThreshold    = 20
	migrationLicenseThreshold = 5
)

// Usecase is the application workflow engine. Every transition runs as one
// atomic unit (status guard + mutation + audit append) behind a row lock;
// notifications and document rendering happen outside that unit, best-effort.
type Usecase struct {
	uow        uow.UnitOfWork
	apps       domainApp.Repository
	audit      audit.Repository
	directory  refdata.Directory
	dispatcher notify.Dispatcher
	renderer   document.Renderer
	log        zerolog.Logger
}

func NewUsecase(
	tx uow.UnitOfWork,
	apps domainApp.Repository,
	auditRepo audit.Repository,
	directory refdata.Directory,
	dispatcher notify.Dispatcher,
	renderer document.Renderer,
	log zerolog.Logger,
) *Usecase {
	return &Usecase{
		uow:        tx,
		apps:       apps,
		audit:      auditRepo,
		directory:  directory,
		dispatcher: dispatcher,
		renderer:   renderer,
		log:        log,
	}
}

// Submit creates a new application against an existing active contract and
// puts it in front of that contract's executing SSE.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*TransitionResult, error) {
	if err := validateSubmit(in); err != nil {
		return nil, err
	}

	contract, err := u.directory.GetContractByLOANumber(ctx, in.LOANumber)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", in.LOANumber, workflow.ErrNotFound)
	}
	if !contract.Active {
		return nil, workflow.NewValidationError("loa_number", "contract is not active")
	}

	a := buildApplication(in, contract)

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		after := string(a.Status)
		return r.Audit.Append(ctx, &audit.Entry{
			ApplicationID: a.ID,
			ActorRole:     workflow.RoleContractor,
			StatusAfter:   after,
			ActionKind:    workflow.ActionCreate,
		})
	})
	if err != nil {
		return nil, err
	}

	u.notifyBestEffort(ctx, contract.FirmEmail, notify.TemplateApplicationSubmitted, u.payload(a), "")
	if sse, err := u.directory.GetUserByID(ctx, a.AssignedSSEID); err == nil && sse.Active {
		u.notifyBestEffort(ctx, sse.Email, notify.TemplateReviewRequested, u.payload(a), "")
	} else if err != nil {
		u.log.Warn().Err(err).Uint64("sse_id", a.AssignedSSEID).Msg("submit: could not resolve executing sse")
	}

	return &TransitionResult{Application: a, StatusBefore: "", StatusAfter: a.Status}, nil
}

// Approve advances the application one stage. For the Safety stage the
// caller must nominate the forward target and the specific officer.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*TransitionResult, error) {
	expected, ok := domainApp.ExpectedStatus(in.Actor.Role)
	if !ok {
		return nil, fmt.Errorf("role %q cannot approve: %w", in.Actor.Role, workflow.ErrUnauthorizedRole)
	}

	var nextOnForward domainApp.Status
	if in.Actor.Role == workflow.RoleSafety {
		next, err := domainApp.ForwardStatus(in.ForwardTo)
		if err != nil {
			return nil, err
		}
		if in.ForwardToUserID == 0 {
			return nil, workflow.NewValidationError("forward_to_user_id", "is required")
		}
		officer, err := u.directory.GetUserByID(ctx, in.ForwardToUserID)
		if err != nil {
			return nil, fmt.Errorf("forward target user %d: %w", in.ForwardToUserID, workflow.ErrNotFound)
		}
		if officer.Role != workflow.Role(in.ForwardTo) || !officer.Active {
			return nil, workflow.NewValidationError("forward_to_user_id", "must be an active "+string(in.ForwardTo))
		}
		nextOnForward = next
	}

	var res *TransitionResult
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domainApp.Application) error {
		// The transition table is the single authority on where an approve
		// may go; the Safety forward is its one parameterized hop.
		next := nextOnForward
		action := workflow.ActionApprove
		if in.Actor.Role == workflow.RoleSafety {
			if a.Status != expected {
				return workflow.NewTransitionError(in.Actor.Role, workflow.ActionApprove, string(expected), string(a.Status))
			}
			action = workflow.ActionForward
		} else {
			n, err := domainApp.Next(a.Status, in.Actor.Role, workflow.ActionApprove)
			if err != nil {
				return err
			}
			next = n
		}
		if err := checkAssignment(a, in.Actor); err != nil {
			return err
		}

		before := a.Status
		now := time.Now().UTC()
		a.Status = next

		switch in.Actor.Role {
		case workflow.RoleSSE:
			a.SSERemarks = optional(in.Remarks)
			a.SSEApprovedBy = &in.Actor.UserID
			a.SSEApprovedAt = &now
		case workflow.RoleSafety:
			a.SafetyRemarks = appendRemark(a.SafetyRemarks, in.Remarks)
			a.SafetyApprovedBy = &in.Actor.UserID
			a.SafetyApprovedAt = &now
			target := string(in.ForwardTo)
			a.ForwardedToOfficer = &target
			if in.ForwardTo == domainApp.TargetOfficer1 {
				a.AssignedOfficer1ID = &in.ForwardToUserID
			} else {
				a.AssignedOfficer2ID = &in.ForwardToUserID
			}
		case workflow.RoleOfficer1:
			st := "approved"
			a.Officer1Status = &st
			a.Officer1Remarks = optional(in.Remarks)
			a.Officer1ReviewedAt = &now
		case workflow.RoleOfficer2:
			st := "approved"
			a.Officer2Status = &st
			a.Officer2Remarks = optional(in.Remarks)
			a.Officer2ReviewedAt = &now
		case workflow.RoleChos:
			a.ChosRemarks = optional(in.Remarks)
			a.ChosApprovedAt = &now
			// The permit number is minted here, at the moment of final
			// approval, never at send time and never reassigned.
			pn := id.GatePermitNumber(now.Year(), a.ID)
			a.GatePermitNumber = &pn
			final := domainApp.FinalApproved
			a.FinalStatus = &final
		}

		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		beforeStr := string(before)
		if err := r.Audit.Append(ctx, &audit.Entry{
			ApplicationID: a.ID,
			ActorUserID:   &in.Actor.UserID,
			ActorRole:     in.Actor.Role,
			StatusBefore:  &beforeStr,
			StatusAfter:   string(a.Status),
			ActionKind:    action,
			Remarks:       optional(in.Remarks),
		}); err != nil {
			return err
		}
		res = &TransitionResult{Application: a, StatusBefore: before, StatusAfter: a.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.fanOutApproval(ctx, res.Application, res.StatusAfter)
	return res, nil
}

// Reject sends the application to the acting role's off-ramp. Remarks are
// mandatory; nothing is persisted without them.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*TransitionResult, error) {
	if strings.TrimSpace(in.Remarks) == "" {
		return nil, workflow.NewValidationError("remarks", "is required")
	}
	if _, ok := domainApp.ExpectedStatus(in.Actor.Role); !ok {
		return nil, fmt.Errorf("role %q cannot reject: %w", in.Actor.Role, workflow.ErrUnauthorizedRole)
	}

	var res *TransitionResult
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domainApp.Application) error {
		rejected, err := domainApp.Next(a.Status, in.Actor.Role, workflow.ActionReject)
		if err != nil {
			return err
		}
		if err := checkAssignment(a, in.Actor); err != nil {
			return err
		}

		before := a.Status
		now := time.Now().UTC()
		a.Status = rejected
		a.RejectionReason = &in.Remarks
		final := domainApp.FinalRejected
		a.FinalStatus = &final

		switch in.Actor.Role {
		case workflow.RoleSSE:
			a.SSERemarks = optional(in.Remarks)
			a.SSEApprovedBy = &in.Actor.UserID
			a.SSEApprovedAt = &now
		case workflow.RoleSafety:
			a.SafetyRemarks = appendRemark(a.SafetyRemarks, in.Remarks)
			a.SafetyApprovedBy = &in.Actor.UserID
			a.SafetyApprovedAt = &now
		case workflow.RoleOfficer1:
			st := "rejected"
			a.Officer1Status = &st
			a.Officer1Remarks = optional(in.Remarks)
			a.Officer1ReviewedAt = &now
		case workflow.RoleOfficer2:
			st := "rejected"
			a.Officer2Status = &st
			a.Officer2Remarks = optional(in.Remarks)
			a.Officer2ReviewedAt = &now
		case workflow.RoleChos:
			a.ChosRemarks = optional(in.Remarks)
		}

		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		beforeStr := string(before)
		if err := r.Audit.Append(ctx, &audit.Entry{
			ApplicationID: a.ID,
			ActorUserID:   &in.Actor.UserID,
			ActorRole:     in.Actor.Role,
			StatusBefore:  &beforeStr,
			StatusAfter:   string(a.Status),
			ActionKind:    workflow.ActionReject,
			Remarks:       &in.Remarks,
		}); err != nil {
			return err
		}
		res = &TransitionResult{Application: a, StatusBefore: before, StatusAfter: a.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if contract, err := u.directory.GetContractByLOANumber(ctx, res.Application.LOANumber); err == nil {
		p := u.payload(res.Application)
		p["rejection_reason"] = in.Remarks
		u.notifyBestEffort(ctx, contract.FirmEmail, notify.TemplateApplicationRejected, p, "")
	}
	return res, nil
}

// ModifyPeriod is the Safety Officer's side-channel date override. It is not
// a workflow transition: status is unchanged and the audit row records the
// same status on both sides.
func (u *Usecase) ModifyPeriod(ctx context.Context, in ModifyPeriodInput) (*TransitionResult, error) {
	if in.Actor.Role != workflow.RoleSafety {
		return nil, fmt.Errorf("role %q cannot modify the gate pass period: %w", in.Actor.Role, workflow.ErrUnauthorizedRole)
	}
	if in.PeriodFrom.IsZero() || in.PeriodTo.IsZero() {
		return nil, workflow.NewValidationError("period", "both dates are required")
	}
	if !in.PeriodFrom.Before(in.PeriodTo) {
		return nil, workflow.NewValidationError("period_from", "must be before period_to")
	}

	var res *TransitionResult
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domainApp.Application) error {
		switch a.Status {
		case domainApp.StatusPendingWithSSE, domainApp.StatusPendingWithSafety:
		default:
			return workflow.NewTransitionError(in.Actor.Role, workflow.ActionModifyPeriod,
				string(domainApp.StatusPendingWithSafety), string(a.Status))
		}

		note := fmt.Sprintf("period changed from [%s .. %s] to [%s .. %s]",
			a.GatePassFrom.Format("2006-01-02"), a.GatePassTo.Format("2006-01-02"),
			in.PeriodFrom.Format("2006-01-02"), in.PeriodTo.Format("2006-01-02"))

		a.GatePassFrom = in.PeriodFrom
		a.GatePassTo = in.PeriodTo
		a.SafetyRemarks = appendRemark(a.SafetyRemarks, note)

		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		status := string(a.Status)
		if err := r.Audit.Append(ctx, &audit.Entry{
			ApplicationID: a.ID,
			ActorUserID:   &in.Actor.UserID,
			ActorRole:     in.Actor.Role,
			StatusBefore:  &status,
			StatusAfter:   status,
			ActionKind:    workflow.ActionModifyPeriod,
			Remarks:       &note,
		}); err != nil {
			return err
		}
		res = &TransitionResult{Application: a, StatusBefore: a.Status, StatusAfter: a.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GenerateDocument renders the gate-pass artifact for a chos-approved
// application. Idempotent: a second call on an already-generated application
// returns the existing artifact and permit number without re-rendering. A
// render failure fails this call and rolls back its own transition.
func (u *Usecase) GenerateDocument(ctx context.Context, in GenerateDocumentInput) (*TransitionResult, error) {
	if in.Actor.Role != workflow.RoleChos {
		return nil, fmt.Errorf("role %q cannot generate the document: %w", in.Actor.Role, workflow.ErrUnauthorizedRole)
	}

	var res *TransitionResult
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domainApp.Application) error {
		if a.Status == domainApp.StatusPDFGenerated && a.PDFFilePath != nil {
			res = &TransitionResult{Application: a, StatusBefore: a.Status, StatusAfter: a.Status}
			return nil
		}
		next, err := domainApp.Next(a.Status, in.Actor.Role, workflow.ActionGeneratePDF)
		if err != nil {
			return err
		}

		path, err := u.renderer.RenderGatePass(ctx, a)
		if err != nil {
			return fmt.Errorf("render gate pass: %w: %v", workflow.ErrDependencyFailure, err)
		}

		before := a.Status
		a.Status = next
		a.PDFFilePath = &path

		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		beforeStr := string(before)
		if err := r.Audit.Append(ctx, &audit.Entry{
			ApplicationID: a.ID,
			ActorUserID:   &in.Actor.UserID,
			ActorRole:     in.Actor.Role,
			StatusBefore:  &beforeStr,
			StatusAfter:   string(a.Status),
			ActionKind:    workflow.ActionGeneratePDF,
			Remarks:       &path,
		}); err != nil {
			return err
		}
		res = &TransitionResult{Application: a, StatusBefore: before, StatusAfter: a.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SendToContractor marks the application delivered and mails the rendered
// document to the firm. Terminal: nothing may follow it.
func (u *Usecase) SendToContractor(ctx context.Context, in SendInput) (*TransitionResult, error) {
	if in.Actor.Role != workflow.RoleChos {
		return nil, fmt.Errorf("role %q cannot send the document: %w", in.Actor.Role, workflow.ErrUnauthorizedRole)
	}

	var res *TransitionResult
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domainApp.Application) error {
		next, err := domainApp.Next(a.Status, in.Actor.Role, workflow.ActionSendPDF)
		if err != nil {
			return err
		}
		if a.PDFFilePath == nil {
			return workflow.NewTransitionError(in.Actor.Role, workflow.ActionSendPDF,
				string(domainApp.StatusPDFGenerated), string(a.Status))
		}

		before := a.Status
		now := time.Now().UTC()
		a.Status = next
		a.EmailSentAt = &now

		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		beforeStr := string(before)
		if err := r.Audit.Append(ctx, &audit.Entry{
			ApplicationID: a.ID,
			ActorUserID:   &in.Actor.UserID,
			ActorRole:     in.Actor.Role,
			StatusBefore:  &beforeStr,
			StatusAfter:   string(a.Status),
			ActionKind:    workflow.ActionSendPDF,
		}); err != nil {
			return err
		}
		res = &TransitionResult{Application: a, StatusBefore: before, StatusAfter: a.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if contract, err := u.directory.GetContractByLOANumber(ctx, res.Application.LOANumber); err == nil {
		u.notifyBestEffort(ctx, contract.FirmEmail, notify.TemplateGatePassIssued,
			u.payload(res.Application), *res.Application.PDFFilePath)
	} else {
		u.log.Warn().Err(err).Str("loa", res.Application.LOANumber).Msg("send: could not resolve firm contact")
	}
	return res, nil
}

// Get returns one application.
func (u *Usecase) Get(ctx context.Context, applicationID uint64) (*domainApp.Application, error) {
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// History returns the chronological audit trail with actor display names
// joined from reference data. Read-only.
func (u *Usecase) History(ctx context.Context, applicationID uint64) ([]HistoryEntry, error) {
	if _, err := u.Get(ctx, applicationID); err != nil {
		return nil, err
	}
	entries, err := u.audit.ListByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	names := map[uint64]string{}
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		he := HistoryEntry{Entry: e}
		if e.ActorUserID != nil {
			name, ok := names[*e.ActorUserID]
			if !ok {
				if user, err := u.directory.GetUserByID(ctx, *e.ActorUserID); err == nil {
					name = user.Name
				}
				names[*e.ActorUserID] = name
			}
			he.ActorName = name
		}
		out = append(out, he)
	}
	return out, nil
}

// ListPending returns the actor's pending queue, scoped server-side by the
// claimed identity; a client-supplied filter is never trusted on its own.
func (u *Usecase) ListPending(ctx context.Context, actor Actor) ([]domainApp.Application, error) {
	switch actor.Role {
	case workflow.RoleSSE:
		return u.apps.ListByStatusForSSE(ctx, actor.UserID, domainApp.StatusPendingWithSSE)
	case workflow.RoleSafety:
		return u.apps.ListByStatus(ctx, domainApp.StatusPendingWithSafety)
	case workflow.RoleOfficer1:
		return u.apps.ListAssignedToOfficer(ctx, domainApp.TargetOfficer1, actor.UserID, domainApp.StatusPendingWithOfficer1)
	case workflow.RoleOfficer2:
		return u.apps.ListAssignedToOfficer(ctx, domainApp.TargetOfficer2, actor.UserID, domainApp.StatusPendingWithOfficer2)
	case workflow.RoleChos:
		return u.apps.ListByStatus(ctx, domainApp.StatusPendingWithChos)
	}
	return nil, fmt.Errorf("role %q has no pending queue: %w", actor.Role, workflow.ErrUnauthorizedRole)
}

// ListForFirm returns a firm's own applications (contractor dashboard).
func (u *Usecase) ListForFirm(ctx context.Context, firmID uint64) ([]domainApp.Application, error) {
	return u.apps.ListByFirm(ctx, firmID)
}

// ---- helpers ----

// checkAssignment enforces the per-stage identity binding: the SSE stage is
// tied to the contract's executing SSE, the officer stages to the officer
// Safety forwarded to (when one was nominated).
func checkAssignment(a *domainApp.Application, actor Actor) error {
	switch actor.Role {
	case workflow.RoleSSE:
		if a.AssignedSSEID != actor.UserID {
			return fmt.Errorf("application %d is assigned to sse %d: %w", a.ID, a.AssignedSSEID, workflow.ErrUnauthorizedRole)
		}
	case workflow.RoleOfficer1:
		if a.AssignedOfficer1ID != nil && *a.AssignedOfficer1ID != actor.UserID {
			return fmt.Errorf("application %d is assigned to officer1 %d: %w", a.ID, *a.AssignedOfficer1ID, workflow.ErrUnauthorizedRole)
		}
	case workflow.RoleOfficer2:
		if a.AssignedOfficer2ID != nil && *a.AssignedOfficer2ID != actor.UserID {
			return fmt.Errorf("application %d is assigned to officer2 %d: %w", a.ID, *a.AssignedOfficer2ID, workflow.ErrUnauthorizedRole)
		}
	}
	return nil
}

// fanOutApproval notifies the contractor and the next stage after a
// committed approval. Every send is independent best-effort.
func (u *Usecase) fanOutApproval(ctx context.Context, a *domainApp.Application, after domainApp.Status) {
	p := u.payload(a)

	if contract, err := u.directory.GetContractByLOANumber(ctx, a.LOANumber); err == nil {
		u.notifyBestEffort(ctx, contract.FirmEmail, notify.TemplateStageApproved, p, "")
	} else {
		u.log.Warn().Err(err).Str("loa", a.LOANumber).Msg("fan-out: could not resolve firm contact")
	}

	// Safety forwarded to one nominated officer: notify only them.
	switch after {
	case domainApp.StatusPendingWithOfficer1, domainApp.StatusPendingWithOfficer2:
		var officerID *uint64
		if after == domainApp.StatusPendingWithOfficer1 {
			officerID = a.AssignedOfficer1ID
		} else {
			officerID = a.AssignedOfficer2ID
		}
		if officerID != nil {
			if user, err := u.directory.GetUserByID(ctx, *officerID); err == nil {
				u.notifyBestEffort(ctx, user.Email, notify.TemplateReviewRequested, p, "")
			} else {
				u.log.Warn().Err(err).Uint64("officer_id", *officerID).Msg("fan-out: could not resolve officer")
			}
			return
		}
	}

	role, ok := domainApp.NextApproverRole(after)
	if !ok {
		return
	}
	users, err := u.directory.GetActiveUsersByRole(ctx, role)
	if err != nil {
		u.log.Warn().Err(err).Str("role", string(role)).Msg("fan-out: could not list next approvers")
		return
	}
	for _, user := range users {
		u.notifyBestEffort(ctx, user.Email, notify.TemplateReviewRequested, p, "")
	}
}

func (u *Usecase) notifyBestEffort(ctx context.Context, recipient string, tpl notify.Template, payload map[string]any, attachment string) {
	var err error
	var result notify.Result
	if attachment != "" {
		result, err = u.dispatcher.NotifyWithAttachment(ctx, recipient, tpl, payload, attachment)
	} else {
		result, err = u.dispatcher.Notify(ctx, recipient, tpl, payload)
	}
	if err != nil || !result.Success {
		u.log.Warn().Err(err).Str("recipient", recipient).Str("template", string(tpl)).Msg("notification failed")
		return
	}
	u.log.Debug().Str("recipient", recipient).Str("template", string(tpl)).Str("message_id", result.MessageID).Msg("notification sent")
}

func (u *Usecase) payload(a *domainApp.Application) map[string]any {
	p := map[string]any{
		"application_id": a.ID,
		"loa_number":     a.LOANumber,
		"status":         string(a.Status),
	}
	if a.GatePermitNumber != nil {
		p["gate_permit_number"] = *a.GatePermitNumber
	}
	return p
}

func validateSubmit(in SubmitInput) error {
	if strings.TrimSpace(in.LOANumber) == "" {
		return workflow.NewValidationError("loa_number", "is required")
	}
	if in.NumberOfPersons <= 0 {
		return workflow.NewValidationError("number_of_persons", "must be positive")
	}
	if len(in.Supervisors) == 0 {
		return workflow.NewValidationError("supervisors", "at least one supervisor is required")
	}
	for _, s := range in.Supervisors {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Phone) == "" {
			return workflow.NewValidationError("supervisors", "name and phone are required")
		}
	}
	if in.PeriodFrom.IsZero() || in.PeriodTo.IsZero() {
		return workflow.NewValidationError("period", "both dates are required")
	}
	if !in.PeriodFrom.Before(in.PeriodTo) {
		return workflow.NewValidationError("period_from", "must be before period_to")
	}
	if in.NumberOfPersons > labourLicenseThreshold && !in.LabourLicense {
		return workflow.NewValidationError("labour_license",
			fmt.Sprintf("is required above %d persons", labourLicenseThreshold))
	}
	if in.LabourLicense && emptyPtr(in.LabourLicenseNumber) {
		return workflow.NewValidationError("labour_license_number", "is required when labour license is declared")
	}
	if in.NumberOfPersons > migrationLicenseThreshold && !in.InterStateMigration {
		return workflow.NewValidationError("inter_state_migration",
			fmt.Sprintf("is required above %d persons", migrationLicenseThreshold))
	}
	if in.InterStateMigration && emptyPtr(in.MigrationLicenseNumber) {
		return workflow.NewValidationError("migration_license_number", "is required when inter-state migration is declared")
	}
	if in.Insurance && emptyPtr(in.InsurancePolicyNumber) {
		return workflow.NewValidationError("insurance_policy_number", "is required when insurance is declared")
	}
	if in.ESI && emptyPtr(in.ESINumber) {
		return workflow.NewValidationError("esi_number", "is required when esi is declared")
	}
	if in.SpecialTiming && (in.SpecialTimingFrom == nil || in.SpecialTimingTo == nil) {
		return workflow.NewValidationError("special_timing", "time window is required when special timing is set")
	}
	return nil
}

func buildApplication(in SubmitInput, contract *refdata.Contract) *domainApp.Application {
	a := &domainApp.Application{
		LOANumber:           in.LOANumber,
		FirmID:              contract.FirmID,
		AssignedSSEID:       contract.ExecutingSSEID,
		NumberOfPersons:     in.NumberOfPersons,
		NumberOfSupervisors: in.NumberOfSupervisors,
		GatePassFrom:        in.PeriodFrom,
		GatePassTo:          in.PeriodTo,
		SpecialTiming:       in.SpecialTiming,
		SpecialTimingFrom:   in.SpecialTimingFrom,
		SpecialTimingTo:     in.SpecialTimingTo,
		SpecialApprovalFile: in.SpecialApprovalFile,
		LabourLicense:          in.LabourLicense,
		LabourLicenseNumber:    in.LabourLicenseNumber,
		InterStateMigration:    in.InterStateMigration,
		MigrationLicenseNumber: in.MigrationLicenseNumber,
		Insurance:             in.Insurance,
		InsurancePolicyNumber: in.InsurancePolicyNumber,
		InsurancePersons:      in.InsurancePersons,
		InsuranceFrom:         in.InsuranceFrom,
		InsuranceTo:           in.InsuranceTo,
		InsuranceFile:         in.InsuranceFile,
		ESI:                   in.ESI,
		ESINumber:             in.ESINumber,
		ESIPersons:            in.ESIPersons,
		ESIIssueDate:          in.ESIIssueDate,
		ESIFile:               in.ESIFile,
		Status:                domainApp.StatusPendingWithSSE,
	}
	for _, s := range in.Supervisors {
		a.Supervisors = append(a.Supervisors, domainApp.Supervisor{Name: s.Name, Phone: s.Phone})
	}
	for _, t := range in.ToolItems {
		a.ToolItems = append(a.ToolItems, domainApp.ToolItem{Description: t.Description, Category: t.Category, Quantity: t.Quantity})
	}
	return a
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func appendRemark(existing *string, remark string) *string {
	remark = strings.TrimSpace(remark)
	if remark == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return &remark
	}
	joined := *existing + "\n" + remark
	return &joined
}

func emptyPtr(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }
