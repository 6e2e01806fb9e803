package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"gatepass-backend/internal/domain/workflow"
)

// Actor identity headers, set by the authenticating gateway in front of this
// service. Authentication itself is out of scope here.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
	HeaderFirmID    = "X-Firm-Id"
)

func actorFromRequest(c echo.Context) (uint64, workflow.Role, error) {
	rawID := strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
	role := workflow.Role(strings.TrimSpace(c.Request().Header.Get(HeaderActorRole)))
	if rawID == "" || role == "" {
		return 0, "", errors.New("missing actor headers")
	}
	userID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || userID == 0 {
		return 0, "", errors.New("invalid " + HeaderActorID)
	}
	if !workflow.KnownRole(role) {
		return 0, "", errors.New("unknown " + HeaderActorRole)
	}
	return userID, role, nil
}

func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeDomainError maps the workflow error taxonomy onto HTTP codes. Every
// error carries an error kind; nothing is returned as an opaque failure.
func writeDomainError(c echo.Context, err error) error {
	var ve *workflow.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	}
	var te *workflow.TransitionError
	if errors.As(err, &te) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error: "invalid transition",
			Details: []FieldError{
				{Field: "status", Message: "expected " + te.Expected + ", got " + te.Actual},
			},
		})
	}
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, workflow.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "invalid transition"})
	case errors.Is(err, workflow.ErrUnauthorizedRole):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "unauthorized role"})
	case errors.Is(err, workflow.ErrDependencyFailure):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "dependency failure"})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
