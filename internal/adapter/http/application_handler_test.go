package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	appDomain "gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/refdata"
	"gatepass-backend/internal/domain/uow"
	"gatepass-backend/internal/domain/workflow"
	"gatepass-backend/internal/testutil/appmock"
	"gatepass-backend/internal/testutil/auditmock"
	"gatepass-backend/internal/testutil/docmock"
	"gatepass-backend/internal/testutil/notifymock"
	"gatepass-backend/internal/testutil/refdatamock"
	"gatepass-backend/internal/testutil/uowmock"
	appUsecase "gatepass-backend/internal/usecase/application"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func handlerDirectory() *refdatamock.Directory {
	return &refdatamock.Directory{
		Contracts: map[string]refdata.Contract{
			"LOA-2026-001": {LOANumber: "LOA-2026-001", FirmID: 9, FirmEmail: "firm@example.com", ExecutingSSEID: 11, Active: true},
		},
		Users: map[uint64]refdata.UserSummary{
			11: {ID: 11, Name: "S. Kumar", Email: "sse@example.com", Role: workflow.RoleSSE, Active: true},
			21: {ID: 21, Name: "A. Rao", Email: "safety@example.com", Role: workflow.RoleSafety, Active: true},
		},
	}
}

// newApplicationHandler wires a real usecase over mocks; app is what the
// locked transaction hands to the engine.
func newApplicationHandler(app *appDomain.Application) *ApplicationHandler {
	apps := &appmock.Repo{
		CreateFn: func(ctx context.Context, a *appDomain.Application) error {
			a.ID = 101
			return nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (*appDomain.Application, error) {
			if app == nil {
				return nil, workflow.ErrNotFound
			}
			return app, nil
		},
	}
	auditRepo := &auditmock.Repo{}
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Applications: apps, Audit: auditRepo})
		},
		WithinApplicationTxFn: func(ctx context.Context, id uint64, fn func(r uow.Repos, a *appDomain.Application) error) error {
			if app == nil {
				return workflow.ErrNotFound
			}
			return fn(uow.Repos{Applications: apps, Audit: auditRepo}, app)
		},
	}
	uc := appUsecase.NewUsecase(tx, apps, auditRepo, handlerDirectory(), &notifymock.Dispatcher{}, &docmock.Renderer{}, zerolog.Nop())
	return NewApplicationHandler(uc)
}

func validSubmitBody() map[string]any {
	return map[string]any{
		"loa_number":            "LOA-2026-001",
		"number_of_persons":     4,
		"number_of_supervisors": 1,
		"period_from":           "2026-09-01",
		"period_to":             "2026-09-30",
		"supervisors":           []map[string]any{{"name": "R. Singh", "phone": "9000000001"}},
	}
}

func TestSubmitApplication_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/applications", mustJSON(validSubmitBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Submit(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var res appUsecase.TransitionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.StatusAfter != appDomain.StatusPendingWithSSE {
		t.Fatalf("status_after = %s", res.StatusAfter)
	}
	if res.Application == nil || res.Application.AssignedSSEID != 11 {
		t.Fatalf("application: %+v", res.Application)
	}
}

func TestSubmitApplication_ValidationDetails(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(nil)

	body := validSubmitBody()
	body["period_from"] = "01-09-2026" // wrong layout
	delete(body, "supervisors")

	req := httptest.NewRequest(stdhttp.MethodPost, "/applications", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Submit(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if len(er.Details) == 0 {
		t.Fatalf("want field details, got %+v", er)
	}
}

func TestSubmitApplication_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/applications", strings.NewReader(`{"loa_number":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Submit(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func approveContext(e *echo.Echo, body any, userID, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPost, "/applications/7/approve", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderActorID, userID)
	req.Header.Set(HeaderActorRole, role)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	return c, rec
}

func TestApproveApplication_Success(t *testing.T) {
	e := newEchoWithValidator()
	app := &appDomain.Application{ID: 7, LOANumber: "LOA-2026-001", AssignedSSEID: 11, Status: appDomain.StatusPendingWithSSE}
	h := newApplicationHandler(app)

	c, rec := approveContext(e, map[string]any{"remarks": "ok"}, "11", "sse")
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var res appUsecase.TransitionResult
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if res.StatusBefore != appDomain.StatusPendingWithSSE || res.StatusAfter != appDomain.StatusPendingWithSafety {
		t.Fatalf("transition = %s -> %s", res.StatusBefore, res.StatusAfter)
	}
}

func TestApproveApplication_StaleStatusConflict(t *testing.T) {
	e := newEchoWithValidator()
	app := &appDomain.Application{ID: 7, AssignedSSEID: 11, Status: appDomain.StatusPendingWithChos}
	h := newApplicationHandler(app)

	c, rec := approveContext(e, map[string]any{}, "11", "sse")
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	// the expected/actual pair rides along so the client can re-fetch
	if len(er.Details) != 1 || !strings.Contains(er.Details[0].Message, "pending_with_sse") {
		t.Fatalf("details = %+v", er.Details)
	}
}

func TestApproveApplication_MissingActorHeaders(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/applications/7/approve", mustJSON(map[string]any{}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestApproveApplication_WrongRoleForbidden(t *testing.T) {
	e := newEchoWithValidator()
	app := &appDomain.Application{ID: 7, AssignedSSEID: 11, Status: appDomain.StatusPendingWithSSE}
	h := newApplicationHandler(app)

	c, rec := approveContext(e, map[string]any{}, "9", "contractor")
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", rec.Code, rec.Body.String())
	}
}

func TestRejectApplication_RemarksRequired(t *testing.T) {
	e := newEchoWithValidator()
	app := &appDomain.Application{ID: 7, AssignedSSEID: 11, Status: appDomain.StatusPendingWithSSE}
	h := newApplicationHandler(app)

	req := httptest.NewRequest(stdhttp.MethodPost, "/applications/7/reject", mustJSON(map[string]any{}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderActorID, "11")
	req.Header.Set(HeaderActorRole, "sse")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Reject(c); err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestGetApplication_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/applications/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListApplications_ContractorScopedByFirmHeader(t *testing.T) {
	e := newEchoWithValidator()

	var gotFirm uint64
	apps := &appmock.Repo{
		ListByFirmFn: func(ctx context.Context, firmID uint64) ([]appDomain.Application, error) {
			gotFirm = firmID
			return []appDomain.Application{{ID: 1, FirmID: firmID}}, nil
		},
	}
	uc := appUsecase.NewUsecase(&uowmock.UoW{}, apps, &auditmock.Repo{}, handlerDirectory(), &notifymock.Dispatcher{}, &docmock.Renderer{}, zerolog.Nop())
	h := NewApplicationHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/applications", nil)
	req.Header.Set(HeaderActorID, "900")
	req.Header.Set(HeaderActorRole, "contractor")
	req.Header.Set(HeaderFirmID, "9")
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if gotFirm != 9 {
		t.Fatalf("firm scope = %d, want 9", gotFirm)
	}
}

func TestListApplications_ContractorMissingFirmHeader(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/applications", nil)
	req.Header.Set(HeaderActorID, "900")
	req.Header.Set(HeaderActorRole, "contractor")
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
