package temppass

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"gatepass-backend/internal/domain/document"
	"gatepass-backend/internal/domain/notify"
	"gatepass-backend/internal/domain/refdata"
	domainPass "gatepass-backend/internal/domain/temppass"
	"gatepass-backend/internal/domain/uow"
	"gatepass-backend/internal/domain/workflow"
	"gatepass-backend/pkg/id"
)

// Usecase is the expedited-pass engine: the same atomicity and audit
// contract as the application engine over a two-stage chain.
type Usecase struct {
	uow        uow.UnitOfWork
	passes     domainPass.Repository
	passLog    domainPass.LogRepository
	directory  refdata.Directory
	dispatcher notify.Dispatcher
	renderer   document.Renderer
	log        zerolog.Logger
}

func NewUsecase(
	tx uow.UnitOfWork,
	passes domainPass.Repository,
	passLog domainPass.LogRepository,
	directory refdata.Directory,
	dispatcher notify.Dispatcher,
	renderer document.Renderer,
	log zerolog.Logger,
) *Usecase {
	return &Usecase{
		uow:        tx,
		passes:     passes,
		passLog:    passLog,
		directory:  directory,
		dispatcher: dispatcher,
		renderer:   renderer,
		log:        log,
	}
}

// Submit creates the pass in front of the nominated officer.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*TransitionResult, error) {
	if strings.TrimSpace(in.LOANumber) == "" {
		return nil, workflow.NewValidationError("loa_number", "is required")
	}
	if strings.TrimSpace(in.Purpose) == "" {
		return nil, workflow.NewValidationError("purpose", "is required")
	}
	if in.NumberOfPersons <= 0 {
		return nil, workflow.NewValidationError("number_of_persons", "must be positive")
	}
	if in.PeriodFrom.IsZero() || in.PeriodTo.IsZero() || !in.PeriodFrom.Before(in.PeriodTo) {
		return nil, workflow.NewValidationError("period_from", "must be before period_to")
	}

	var initial domainPass.Status
	switch in.ForwardTo {
	case domainPass.TargetOfficer1:
		initial = domainPass.StatusPendingWithOfficer1
	case domainPass.TargetOfficer2:
		initial = domainPass.StatusPendingWithOfficer2
	default:
		return nil, workflow.NewValidationError("forward_to", "must be officer1 or officer2")
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

	contract, err := u.directory.GetContractByLOANumber(ctx, in.LOANumber)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", in.LOANumber, workflow.ErrNotFound)
	}
	if !contract.Active {
		return nil, workflow.NewValidationError("loa_number", "contract is not active")
	}

	p := &domainPass.TemporaryPass{
		LOANumber:          in.LOANumber,
		FirmID:             contract.FirmID,
		Purpose:            in.Purpose,
		NumberOfPersons:    in.NumberOfPersons,
		PeriodFrom:         in.PeriodFrom,
		PeriodTo:           in.PeriodTo,
		Status:             initial,
		ForwardedToOfficer: in.ForwardTo,
		AssignedOfficerID:  in.ForwardToUserID,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.TempPasses.Create(ctx, p); err != nil {
			return err
		}
		return r.TempPassLog.Append(ctx, &domainPass.LogEntry{
			TemporaryPassID: p.ID,
			ActorRole:       workflow.RoleContractor,
			StatusAfter:     string(p.Status),
			ActionKind:      workflow.ActionCreate,
		})
	})
	if err != nil {
		return nil, err
	}

	u.notifyBestEffort(ctx, officer.Email, notify.TemplateTempPassSubmitted, u.payload(p), "")
	return &TransitionResult{Pass: p, StatusBefore: "", StatusAfter: p.Status}, nil
}

// Approve is the officer stage: the nominated officer hands the pass to chos.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*TransitionResult, error) {
	var expected domainPass.Status
	switch in.Actor.Role {
	case workflow.RoleOfficer1:
		expected = domainPass.StatusPendingWithOfficer1
	case workflow.RoleOfficer2:
		expected = domainPass.StatusPendingWithOfficer2
	default:
		return nil, fmt.Errorf("role %q cannot approve a temporary pass: %w", in.Actor.Role, workflow.ErrUnauthorizedRole)
	}

	var res *TransitionResult
	err := u.uow.WithinTempPassTx(ctx, in.PassID, func(r uow.Repos, p *domainPass.TemporaryPass) error {
		if p.Status != expected {
			return workflow.NewTransitionError(in.Actor.Role, workflow.ActionApprove, string(expected), string(p.Status))
		}
		if p.AssignedOfficerID != in.Actor.UserID {
			return fmt.Errorf("pass %d is assigned to officer %d: %w", p.ID, p.AssignedOfficerID, workflow.ErrUnauthorizedRole)
		}

		before := p.Status
		now := time.Now().UTC()
		p.Status = domainPass.StatusPendingWithChos
		p.OfficerRemarks = optional(in.Remarks)
		p.OfficerReviewedBy = &in.Actor.UserID
		p.OfficerReviewedAt = &now

		if err := r.TempPasses.Save(ctx, p); err != nil {
			return err
		}
		beforeStr := string(before)
		if err := r.TempPassLog.Append(ctx, &domainPass.LogEntry{
			TemporaryPassID: p.ID,
			ActorUserID:     &in.Actor.UserID,
			ActorRole:       in.Actor.Role,
			StatusBefore:    &beforeStr,
			StatusAfter:     string(p.Status),
			ActionKind:      workflow.ActionApprove,
			Remarks:         optional(in.Remarks),
		}); err != nil {
			return err
		}
		res = &TransitionResult{Pass: p, StatusBefore: before, StatusAfter: p.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	users, err := u.directory.GetActiveUsersByRole(ctx, workflow.RoleChos)
	if err != nil {
		u.log.Warn().Err(err).Msg("temp pass fan-out: could not list chos users")
		return res, nil
	}
	for _, user := range users {
		u.notifyBestEffort(ctx, user.Email, notify.TemplateReviewRequested, u.payload(res.Pass), "")
	}
	return res, nil
}

// Issue is the chos action: approve, mint the permit number and render the
// document in one atomic call. A render failure fails the whole call.
func (u *Usecase) Issue(ctx context.Context, in IssueInput) (*TransitionResult, error) {
	if in.Actor.Role != workflow.RoleChos {
		return nil, fmt.Errorf("role %q cannot issue a temporary pass: %w", in.Actor.Role, workflow.ErrUnauthorizedRole)
	}

	var res *TransitionResult
	err := u.uow.WithinTempPassTx(ctx, in.PassID, func(r uow.Repos, p *domainPass.TemporaryPass) error {
		if p.Status != domainPass.StatusPendingWithChos {
			return workflow.NewTransitionError(in.Actor.Role, workflow.ActionGeneratePDF,
				string(domainPass.StatusPendingWithChos), string(p.Status))
		}

		before := p.Status
		now := time.Now().UTC()
		pn := id.TempPermitNumber(now.Year(), p.ID)
		p.PermitNumber = &pn
		p.ChosRemarks = optional(in.Remarks)
		p.ChosApprovedAt = &now

		path, err := u.renderer.RenderTemporaryPass(ctx, p)
		if err != nil {
			return fmt.Errorf("render temporary pass: %w: %v", workflow.ErrDependencyFailure, err)
		}
		p.PDFFilePath = &path
		p.Status = domainPass.StatusApproved

		if err := r.TempPasses.Save(ctx, p); err != nil {
			return err
		}
		beforeStr := string(before)
		if err := r.TempPassLog.Append(ctx, &domainPass.LogEntry{
			TemporaryPassID: p.ID,
			ActorUserID:     &in.Actor.UserID,
			ActorRole:       in.Actor.Role,
			StatusBefore:    &beforeStr,
			StatusAfter:     string(p.Status),
			ActionKind:      workflow.ActionApprove,
			Remarks:         &pn,
		}); err != nil {
			return err
		}
		res = &TransitionResult{Pass: p, StatusBefore: before, StatusAfter: p.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if contract, err := u.directory.GetContractByLOANumber(ctx, res.Pass.LOANumber); err == nil {
		u.notifyBestEffort(ctx, contract.FirmEmail, notify.TemplateTempPassIssued,
			u.payload(res.Pass), *res.Pass.PDFFilePath)
	} else {
		u.log.Warn().Err(err).Str("loa", res.Pass.LOANumber).Msg("issue: could not resolve firm contact")
	}
	return res, nil
}

// Reject closes the pass from whichever stage the actor owns; the rejecting
// role is recorded as free text rather than an enum suffix.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*TransitionResult, error) {
	if strings.TrimSpace(in.Remarks) == "" {
		return nil, workflow.NewValidationError("remarks", "is required")
	}
	var expected domainPass.Status
	switch in.Actor.Role {
	case workflow.RoleOfficer1:
		expected = domainPass.StatusPendingWithOfficer1
	case workflow.RoleOfficer2:
		expected = domainPass.StatusPendingWithOfficer2
	case workflow.RoleChos:
		expected = domainPass.StatusPendingWithChos
	default:
		return nil, fmt.Errorf("role %q cannot reject a temporary pass: %w", in.Actor.Role, workflow.ErrUnauthorizedRole)
	}

	var res *TransitionResult
	err := u.uow.WithinTempPassTx(ctx, in.PassID, func(r uow.Repos, p *domainPass.TemporaryPass) error {
		if p.Status != expected {
			return workflow.NewTransitionError(in.Actor.Role, workflow.ActionReject, string(expected), string(p.Status))
		}
		if (in.Actor.Role == workflow.RoleOfficer1 || in.Actor.Role == workflow.RoleOfficer2) &&
			p.AssignedOfficerID != in.Actor.UserID {
			return fmt.Errorf("pass %d is assigned to officer %d: %w", p.ID, p.AssignedOfficerID, workflow.ErrUnauthorizedRole)
		}

		before := p.Status
		role := string(in.Actor.Role)
		p.Status = domainPass.StatusRejected
		p.RejectedByRole = &role
		p.RejectionReason = &in.Remarks

		if err := r.TempPasses.Save(ctx, p); err != nil {
			return err
		}
		beforeStr := string(before)
		if err := r.TempPassLog.Append(ctx, &domainPass.LogEntry{
			TemporaryPassID: p.ID,
			ActorUserID:     &in.Actor.UserID,
			ActorRole:       in.Actor.Role,
			StatusBefore:    &beforeStr,
			StatusAfter:     string(p.Status),
			ActionKind:      workflow.ActionReject,
			Remarks:         &in.Remarks,
		}); err != nil {
			return err
		}
		res = &TransitionResult{Pass: p, StatusBefore: before, StatusAfter: p.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if contract, err := u.directory.GetContractByLOANumber(ctx, res.Pass.LOANumber); err == nil {
		p := u.payload(res.Pass)
		p["rejection_reason"] = in.Remarks
		u.notifyBestEffort(ctx, contract.FirmEmail, notify.TemplateTempPassRejected, p, "")
	}
	return res, nil
}

func (u *Usecase) Get(ctx context.Context, passID uint64) (*domainPass.TemporaryPass, error) {
	p, err := u.passes.GetByID(ctx, passID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// History returns the chronological log with actor names joined.
func (u *Usecase) History(ctx context.Context, passID uint64) ([]HistoryEntry, error) {
	if _, err := u.Get(ctx, passID); err != nil {
		return nil, err
	}
	entries, err := u.passLog.ListByTemporaryPassID(ctx, passID)
	if err != nil {
		return nil, err
	}

	names := map[uint64]string{}
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		he := HistoryEntry{LogEntry: e}
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

// ListPending is the role-scoped queue, filtered server-side.
func (u *Usecase) ListPending(ctx context.Context, actor Actor) ([]domainPass.TemporaryPass, error) {
	switch actor.Role {
	case workflow.RoleOfficer1:
		return u.passes.ListAssignedToOfficer(ctx, actor.UserID, domainPass.StatusPendingWithOfficer1)
	case workflow.RoleOfficer2:
		return u.passes.ListAssignedToOfficer(ctx, actor.UserID, domainPass.StatusPendingWithOfficer2)
	case workflow.RoleChos:
		return u.passes.ListByStatus(ctx, domainPass.StatusPendingWithChos)
	}
	return nil, fmt.Errorf("role %q has no temporary pass queue: %w", actor.Role, workflow.ErrUnauthorizedRole)
}

func (u *Usecase) ListForFirm(ctx context.Context, firmID uint64) ([]domainPass.TemporaryPass, error) {
	return u.passes.ListByFirm(ctx, firmID)
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

func (u *Usecase) payload(p *domainPass.TemporaryPass) map[string]any {
	out := map[string]any{
		"temporary_pass_id": p.ID,
		"loa_number":        p.LOANumber,
		"status":            string(p.Status),
	}
	if p.PermitNumber != nil {
		out["permit_number"] = *p.PermitNumber
	}
	return out
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
