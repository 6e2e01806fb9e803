package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Idempotency(rdb, ttl, zerolog.Nop()))
	e.POST("/applications", handler)
	e.GET("/applications", handler)
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func validHeaders() map[string]string {
	return map[string]string{
		headerRequestID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		headerRequestAt: time.Now().UTC().Format(time.RFC3339),
		headerActorID:   "11",
	}
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/applications", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	cases := []struct {
		name   string
		mutate func(h map[string]string)
	}{
		{"missing request id", func(h map[string]string) { delete(h, headerRequestID) }},
		{"invalid request id", func(h map[string]string) { h[headerRequestID] = "NOT-VALID" }},
		{"invalid request at", func(h map[string]string) { h[headerRequestAt] = "not-a-time" }},
		{"request at too skewed", func(h map[string]string) {
			h[headerRequestAt] = time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339)
		}},
		{"naive local timestamp", func(h map[string]string) { h[headerRequestAt] = "2026-08-29T10:00:00" }},
		{"missing actor id", func(h map[string]string) { delete(h, headerActorID) }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h := validHeaders()
			tc.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/applications", mkJSONBody(t, map[string]int{"x": 1}), h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	var calls int32
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	h := validHeaders()
	body := map[string]any{"loa_number": "LOA-2026-001"}

	rec := doReq(t, e, http.MethodPost, "/applications", mkJSONBody(t, body), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first call: want 201, got %d", rec.Code)
	}

	// identical retry replays the recorded response without touching the handler
	rec = doReq(t, e, http.MethodPost, "/applications", mkJSONBody(t, body), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("replay: want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("handler ran %d times, want 1", got)
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("replayed body not json: %v", err)
	}
	if out["ok"] != true {
		t.Fatalf("replayed body = %v", out)
	}
}

func Test_SameRequestID_DifferentBody_Conflict(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	h := validHeaders()
	rec := doReq(t, e, http.MethodPost, "/applications", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first call: want 201, got %d", rec.Code)
	}

	rec = doReq(t, e, http.MethodPost, "/applications", mkJSONBody(t, map[string]int{"x": 2}), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("reused id with new body: want 409, got %d", rec.Code)
	}
}

func Test_DifferentActors_DoNotCollide(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	var calls int32
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	body := map[string]int{"x": 1}

	h1 := validHeaders()
	h1[headerActorID] = "11"
	if rec := doReq(t, e, http.MethodPost, "/applications", mkJSONBody(t, body), h1); rec.Code != http.StatusCreated {
		t.Fatalf("actor 11: want 201, got %d", rec.Code)
	}

	// same request id, different actor: a fresh key, handler runs again
	h2 := validHeaders()
	h2[headerActorID] = "21"
	if rec := doReq(t, e, http.MethodPost, "/applications", mkJSONBody(t, body), h2); rec.Code != http.StatusCreated {
		t.Fatalf("actor 21: want 201, got %d", rec.Code)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("handler ran %d times, want 2", got)
	}
}

func Test_RedisDown_Returns503(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)
	mr.Close() // kill the store before the call

	rec := doReq(t, e, http.MethodPost, "/applications", mkJSONBody(t, map[string]int{"x": 1}), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
}
