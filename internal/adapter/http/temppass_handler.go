package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	passDomain "gatepass-backend/internal/domain/temppass"
	"gatepass-backend/internal/domain/workflow"
	passUsecase "gatepass-backend/internal/usecase/temppass"
)

type TempPassHandler struct{ uc *passUsecase.Usecase }

func NewTempPassHandler(uc *passUsecase.Usecase) *TempPassHandler {
	return &TempPassHandler{uc: uc}
}

type submitTempPassReq struct {
	LOANumber       string `json:"loa_number"         validate:"required"`
	Purpose         string `json:"purpose"            validate:"required"`
	NumberOfPersons int    `json:"number_of_persons"  validate:"gt=0"`
	PeriodFrom      string `json:"period_from"        validate:"required,datetime=2006-01-02"`
	PeriodTo        string `json:"period_to"          validate:"required,datetime=2006-01-02"`
	ForwardTo       string `json:"forward_to"         validate:"required,officer_target"`
	ForwardToUserID uint64 `json:"forward_to_user_id" validate:"required"`
}

func (h *TempPassHandler) Submit(c echo.Context) error {
	var req submitTempPassReq
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
	res, err := h.uc.Submit(c.Request().Context(), passUsecase.SubmitInput{
		LOANumber:       req.LOANumber,
		Purpose:         req.Purpose,
		NumberOfPersons: req.NumberOfPersons,
		PeriodFrom:      from,
		PeriodTo:        to,
		ForwardTo:       passDomain.OfficerTarget(req.ForwardTo),
		ForwardToUserID: req.ForwardToUserID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

type tempPassActionReq struct {
	Remarks string `json:"remarks"`
}

func (h *TempPassHandler) Approve(c echo.Context) error {
	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	passID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pass id"})
	}
	var req tempPassActionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	res, err := h.uc.Approve(c.Request().Context(), passUsecase.ApproveInput{
		PassID:  passID,
		Actor:   passUsecase.Actor{UserID: userID, Role: role},
		Remarks: req.Remarks,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *TempPassHandler) Issue(c echo.Context) error {
	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	passID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pass id"})
	}
	var req tempPassActionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	res, err := h.uc.Issue(c.Request().Context(), passUsecase.IssueInput{
		PassID:  passID,
		Actor:   passUsecase.Actor{UserID: userID, Role: role},
		Remarks: req.Remarks,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *TempPassHandler) Reject(c echo.Context) error {
	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	passID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pass id"})
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

	res, err := h.uc.Reject(c.Request().Context(), passUsecase.RejectInput{
		PassID:  passID,
		Actor:   passUsecase.Actor{UserID: userID, Role: role},
		Remarks: req.Remarks,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *TempPassHandler) Get(c echo.Context) error {
	passID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pass id"})
	}
	p, err := h.uc.Get(c.Request().Context(), passID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *TempPassHandler) History(c echo.Context) error {
	passID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pass id"})
	}
	entries, err := h.uc.History(c.Request().Context(), passID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *TempPassHandler) List(c echo.Context) error {
	role := workflow.Role(strings.TrimSpace(c.Request().Header.Get(HeaderActorRole)))
	if role == workflow.RoleContractor {
		rawFirm := strings.TrimSpace(c.Request().Header.Get(HeaderFirmID))
		firmID, err := strconv.ParseUint(rawFirm, 10, 64)
		if err != nil || firmID == 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + HeaderFirmID})
		}
		passes, err := h.uc.ListForFirm(c.Request().Context(), firmID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, passes)
	}

	userID, role, err := actorFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	passes, err := h.uc.ListPending(c.Request().Context(), passUsecase.Actor{UserID: userID, Role: role})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, passes)
}
