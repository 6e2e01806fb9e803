package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	appDomain "gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/workflow"
	appUsecase "gatepass-backend/internal/usecase/application"
)

type ApplicationHandler struct{ uc *appUsecase.Usecase }

func NewApplicationHandler(uc *appUsecase.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type supervisorReq struct {
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type toolItemReq struct {
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"    validate:"gt=0"`
}

type submitApplicationReq struct {
	LOANumber           string          `json:"loa_number"            validate:"required"`
	NumberOfPersons     int             `json:"number_of_persons"     validate:"gt=0"`
	NumberOfSupervisors int             `json:"number_of_supervisors" validate:"gt=0"`
	PeriodFrom          string          `json:"period_from"           validate:"required,datetime=2006-01-02"`
	PeriodTo            string          `json:"period_to"             validate:"required,datetime=2006-01-02"`
	Supervisors         []supervisorReq `json:"supervisors"           validate:"min=1,dive"`
	ToolItems           []toolItemReq   `json:"tool_items"            validate:"dive"`

	SpecialTiming       bool    `json:"special_timing"`
	SpecialTimingFrom   *string `json:"special_timing_from"`
	SpecialTimingTo     *string `json:"special_timing_to"`
	SpecialApprovalFile *string `json:"special_approval_file"`

	LabourLicense          bool    `json:"labour_license"`
	LabourLicenseNumber    *string `json:"labour_license_number"`
	InterStateMigration    bool    `json:"inter_state_migration"`
	MigrationLicenseNumber *string `json:"migration_license_number"`

	Insurance             bool    `json:"insurance"`
	InsurancePolicyNumber *string `json:"insurance_policy_number"`
	InsurancePersons      *int    `json:"insurance_persons"`
	InsuranceFrom         *string `json:"insurance_from"`
	InsuranceTo           *string `json:"insurance_to"`
	InsuranceFile         *string `json:"insurance_file"`

	ESI          bool    `json:"esi"`
	ESINumber    *string `json:"esi_number"`
	ESIPersons   *int    `json:"esi_persons"`
	ESIIssueDate *string `json:"esi_issue_date"`
	ESIFile      *string `json:"esi_file"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := appUsecase.SubmitInput{
		LOANumber:           req.LOANumber,
		NumberOfPersons:     req.NumberOfPersons,
		NumberOfSupervisors: req.NumberOfSupervisors,
		SpecialTiming:       req.SpecialTiming,
		SpecialTimingFrom:   req.SpecialTimingFrom,
		SpecialTimingTo:     req.SpecialTimingTo,
		SpecialApprovalFile: req.SpecialApprovalFile,
		LabourLicense:          req.LabourLicense,
		LabourLicenseNumber:    req.LabourLicenseNumber,
		InterStateMigration:    req.InterStateMigration,
		MigrationLicenseNumber: req.MigrationLicenseNumber,
		Insurance:             req.Insurance,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
		InsurancePersons:      req.InsurancePersons,
		InsuranceFile:         req.InsuranceFile,
		ESI:                   req.ESI,
		ESINumber:             req.ESINumber,
		ESIPersons:            req.ESIPersons,
		ESIFile:               req.ESIFile,
	}
	in.PeriodFrom, _ = time.Parse("2006-01-02", req.PeriodFrom)
	in.PeriodTo, _ = time.Parse("2006-01-02", req.PeriodTo)
	if req.InsuranceFrom != nil {
		if t, err := time.Parse("2006-01-02", *req.InsuranceFrom); err == nil {
			in.InsuranceFrom = &t
		}
	}
	if req.InsuranceTo != nil {
		if t, err := time.Parse("2006-01-02", *req.InsuranceTo); err == nil {
			in.InsuranceTo = &t
		}
	}
	if req.ESIIssueDate != nil {
		if t, err := time.Parse("2006-01-02", *req.ESIIssueDate); err == nil {
			in.ESIIssueDate = &t
		}
	}
	for _, s := range req.Supervisors {
		in.Supervisors = append(in.Supervisors, appUsecase.SupervisorInput{Name: s.Name, Phone: s.Phone})
	}
	for _, t := range req.ToolItems {
		in.ToolItems = append(in.ToolItems, appUsecase.ToolItemInput{Description: t.Description, Category: t.Category, Quantity: t.Quantity})
	}

	res, err := h.uc.Submit(c.Request().Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

type approveReq struct {
	Remarks         string `json:"remarks"`
	ForwardTo       string `json:"forward_to"         validate:"officer_target"`
	ForwardToUserID uint64 `json:"forward_to_user_id"`
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Approve(c.Request().Context(), appUsecase.ApproveInput{
		ApplicationID:   appID,
		Actor:           appUsecase.Actor{UserID: userID, Role: role},
		Remarks:         req.Remarks,
		ForwardTo:       appDomain.OfficerTarget(req.ForwardTo),
		ForwardToUserID: req.ForwardToUserID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type rejectReq struct {
	Remarks string `json:"remarks" validate:"required"`
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Reject(c.Request().Context(), appUsecase.RejectInput{
		ApplicationID: appID,
		Actor:         appUsecase.Actor{UserID: userID, Role: role},
		Remarks:       req.Remarks,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type modifyPeriodReq struct {
	PeriodFrom string `json:"period_from" validate:"required,datetime=2006-01-02"`
	PeriodTo   string `json:"period_to"   validate:"required,datetime=2006-01-02"`
}

func (h *ApplicationHandler) ModifyPeriod(c echo.Context) error {
	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req modifyPeriodReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	from, _ := time.Parse("2006-01-02", req.PeriodFrom)
	to, _ := time.Parse("2006-01-02", req.PeriodTo)
	res, err := h.uc.ModifyPeriod(c.Request().Context(), appUsecase.ModifyPeriodInput{
		ApplicationID: appID,
		Actor:         appUsecase.Actor{UserID: userID, Role: role},
		PeriodFrom:    from,
		PeriodTo:      to,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ApplicationHandler) GenerateDocument(c echo.Context) error {
	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	res, err := h.uc.GenerateDocument(c.Request().Context(), appUsecase.GenerateDocumentInput{
		ApplicationID: appID,
		Actor:         appUsecase.Actor{UserID: userID, Role: role},
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ApplicationHandler) Send(c echo.Context) error {
	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	res, err := h.uc.SendToContractor(c.Request().Context(), appUsecase.SendInput{
		ApplicationID: appID,
		Actor:         appUsecase.Actor{UserID: userID, Role: role},
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	appID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	a, err := h.uc.Get(c.Request().Context(), appID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ApplicationHandler) History(c echo.Context) error {
	appID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	entries, err := h.uc.History(c.Request().Context(), appID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// List serves the role-scoped queues. The contractor view is scoped by the
// firm claimed in the identity headers, never by a client-supplied filter.
func (h *ApplicationHandler) List(c echo.Context) error {
	role := workflow.Role(strings.TrimSpace(c.Request().Header.Get(HeaderActorRole)))
	if role == workflow.RoleContractor {
		rawFirm := strings.TrimSpace(c.Request().Header.Get(HeaderFirmID))
		firmID, err := strconv.ParseUint(rawFirm, 10, 64)
		if err != nil || firmID == 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + HeaderFirmID})
		}
		apps, err := h.uc.ListForFirm(c.Request().Context(), firmID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, apps)
	}

	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	apps, err := h.uc.ListPending(c.Request().Context(), appUsecase.Actor{UserID: userID, Role: role})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, apps)
}
