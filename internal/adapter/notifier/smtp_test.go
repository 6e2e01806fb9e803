package notifier

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"gatepass-backend/internal/domain/notify"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func capturingDispatcher(t *testing.T, sendErr error) (*SMTPDispatcher, *capturedMail) {
	t.Helper()
	d := NewSMTPDispatcher("smtp.internal:25", "gatepass@plant.example", "", "", zerolog.Nop())
	got := &capturedMail{}
	d.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		got.addr, got.from, got.to, got.msg = addr, from, to, string(msg)
		return sendErr
	}
	return d, got
}

func TestSMTPDispatcher_Notify(t *testing.T) {
	d, got := capturingDispatcher(t, nil)

	res, err := d.Notify(context.Background(), "sse@plant.example", notify.TemplateReviewRequested, map[string]any{
		"application_id": 42,
		"status":         "pending_with_sse",
	})
	if err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if !res.Success || res.MessageID == "" {
		t.Fatalf("result = %+v", res)
	}

	if got.addr != "smtp.internal:25" || got.from != "gatepass@plant.example" {
		t.Fatalf("addr/from = %q/%q", got.addr, got.from)
	}
	if len(got.to) != 1 || got.to[0] != "sse@plant.example" {
		t.Fatalf("to = %v", got.to)
	}
	if !strings.Contains(got.msg, "Subject: Gate pass application awaiting your review\r\n") {
		t.Fatalf("subject line missing:\n%s", got.msg)
	}
	if !strings.Contains(got.msg, `"application_id": 42`) {
		t.Fatalf("payload not in body:\n%s", got.msg)
	}
	if strings.Contains(got.msg, "Document:") {
		t.Fatal("plain Notify must not carry an attachment reference")
	}
}

func TestSMTPDispatcher_NotifyWithAttachment(t *testing.T) {
	d, got := capturingDispatcher(t, nil)

	_, err := d.NotifyWithAttachment(context.Background(), "firm@contractor.example",
		notify.TemplateGatePassIssued, map[string]any{"permit_number": "GP-2026-000042"},
		"/var/docs/gatepass-42.html")
	if err != nil {
		t.Fatalf("NotifyWithAttachment error: %v", err)
	}
	if !strings.Contains(got.msg, "Subject: Gate pass issued\r\n") {
		t.Fatalf("subject line missing:\n%s", got.msg)
	}
	if !strings.Contains(got.msg, "Document: /var/docs/gatepass-42.html") {
		t.Fatalf("attachment reference missing:\n%s", got.msg)
	}
}

func TestSMTPDispatcher_UnknownTemplateFallsBackToName(t *testing.T) {
	d, got := capturingDispatcher(t, nil)

	if _, err := d.Notify(context.Background(), "x@y.example", notify.Template("custom_thing"), nil); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if !strings.Contains(got.msg, "Subject: custom_thing\r\n") {
		t.Fatalf("fallback subject missing:\n%s", got.msg)
	}
}

func TestSMTPDispatcher_EmptyRecipient(t *testing.T) {
	d, _ := capturingDispatcher(t, nil)

	if _, err := d.Notify(context.Background(), "   ", notify.TemplateStageApproved, nil); err == nil {
		t.Fatal("expected error for empty recipient")
	}
}

func TestSMTPDispatcher_SendFailure(t *testing.T) {
	sendErr := errors.New("connection refused")
	d, _ := capturingDispatcher(t, sendErr)

	res, err := d.Notify(context.Background(), "sse@plant.example", notify.TemplateStageApproved, nil)
	if !errors.Is(err, sendErr) {
		t.Fatalf("err = %v, want %v", err, sendErr)
	}
	if res.Success {
		t.Fatal("failed send must not report success")
	}
}

func TestSMTPDispatcher_CancelledContext(t *testing.T) {
	d, got := capturingDispatcher(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Notify(ctx, "sse@plant.example", notify.TemplateStageApproved, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got.msg != "" {
		t.Fatal("nothing should be sent on a cancelled context")
	}
}
