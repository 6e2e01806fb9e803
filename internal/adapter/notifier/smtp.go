package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gatepass-backend/internal/domain/notify"
)

// Subject lines per template kind.
var subjects = map[notify.Template]string{
	notify.TemplateApplicationSubmitted: "Gate pass application submitted",
	notify.TemplateStageApproved:        "Gate pass application approved at current stage",
	notify.TemplateReviewRequested:      "Gate pass application awaiting your review",
	notify.TemplateApplicationRejected:  "Gate pass application rejected",
	notify.TemplateGatePassIssued:       "Gate pass issued",
	notify.TemplateTempPassSubmitted:    "Temporary pass request awaiting your review",
	notify.TemplateTempPassIssued:       "Temporary pass issued",
	notify.TemplateTempPassRejected:     "Temporary pass request rejected",
}

// SMTPDispatcher implements the notify port over plain SMTP. Delivery is
// best-effort; the engine only logs the Result.
type SMTPDispatcher struct {
	addr string
	from string
	auth smtp.Auth
	log  zerolog.Logger

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPDispatcher(addr, from, username, password string, log zerolog.Logger) *SMTPDispatcher {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPDispatcher{addr: addr, from: from, auth: auth, log: log, send: smtp.SendMail}
}

func (d *SMTPDispatcher) Notify(ctx context.Context, recipient string, tpl notify.Template, payload map[string]any) (notify.Result, error) {
	return d.deliver(ctx, recipient, tpl, payload, "")
}

func (d *SMTPDispatcher) NotifyWithAttachment(ctx context.Context, recipient string, tpl notify.Template, payload map[string]any, attachmentRef string) (notify.Result, error) {
	return d.deliver(ctx, recipient, tpl, payload, attachmentRef)
}

func (d *SMTPDispatcher) deliver(ctx context.Context, recipient string, tpl notify.Template, payload map[string]any, attachmentRef string) (notify.Result, error) {
	if err := ctx.Err(); err != nil {
		return notify.Result{}, err
	}
	if strings.TrimSpace(recipient) == "" {
		return notify.Result{}, fmt.Errorf("notifier: empty recipient")
	}

	messageID := uuid.NewString()
	subject, ok := subjects[tpl]
	if !ok {
		subject = string(tpl)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", d.from)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Message-ID: <%s@gatepass>\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	body, _ := json.MarshalIndent(payload, "", "  ")
	b.Write(body)
	if attachmentRef != "" {
		fmt.Fprintf(&b, "\r\n\r\nDocument: %s\r\n", attachmentRef)
	}

	if err := d.send(d.addr, d.auth, d.from, []string{recipient}, []byte(b.String())); err != nil {
		d.log.Warn().Err(err).Str("recipient", recipient).Str("template", string(tpl)).Msg("smtp send failed")
		return notify.Result{Success: false}, err
	}
	return notify.Result{Success: true, MessageID: messageID}, nil
}
