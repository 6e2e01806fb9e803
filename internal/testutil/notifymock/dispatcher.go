package notifymock

import (
	"context"
	"sync"

	"gatepass-backend/internal/domain/notify"
)

// Sent captures one dispatched message for assertions.
type Sent struct {
	Recipient  string
	Template   notify.Template
	Payload    map[string]any
	Attachment string
}

// Dispatcher records sends in memory; set Err to simulate delivery failure.
type Dispatcher struct {
	mu   sync.Mutex
	Sent []Sent
	Err  error
}

var _ notify.Dispatcher = (*Dispatcher)(nil)

func (d *Dispatcher) Notify(ctx context.Context, recipient string, tpl notify.Template, payload map[string]any) (notify.Result, error) {
	return d.record(recipient, tpl, payload, "")
}

func (d *Dispatcher) NotifyWithAttachment(ctx context.Context, recipient string, tpl notify.Template, payload map[string]any, attachmentRef string) (notify.Result, error) {
	return d.record(recipient, tpl, payload, attachmentRef)
}

func (d *Dispatcher) record(recipient string, tpl notify.Template, payload map[string]any, attachment string) (notify.Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return notify.Result{Success: false}, d.Err
	}
	d.Sent = append(d.Sent, Sent{Recipient: recipient, Template: tpl, Payload: payload, Attachment: attachment})
	return notify.Result{Success: true, MessageID: "msg-test"}, nil
}

// Recipients lists who got a message, in send order.
func (d *Dispatcher) Recipients() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.Sent))
	for _, s := range d.Sent {
		out = append(out, s.Recipient)
	}
	return out
}
