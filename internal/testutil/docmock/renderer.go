package docmock

import (
	"context"
	"fmt"

	"gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/document"
	"gatepass-backend/internal/domain/temppass"
)

// Renderer returns deterministic artifact paths; set Err to fail renders,
// or override the Fn fields for call-specific behavior.
type Renderer struct {
	Err              error
	RenderGatePassFn func(ctx context.Context, app *application.Application) (string, error)
	RenderTempPassFn func(ctx context.Context, p *temppass.TemporaryPass) (string, error)

	GatePassCalls int
	TempPassCalls int
}

var _ document.Renderer = (*Renderer)(nil)

func (r *Renderer) RenderGatePass(ctx context.Context, app *application.Application) (string, error) {
	r.GatePassCalls++
	if r.RenderGatePassFn != nil {
		return r.RenderGatePassFn(ctx, app)
	}
	if r.Err != nil {
		return "", r.Err
	}
	return fmt.Sprintf("/tmp/docs/gatepass-%d.html", app.ID), nil
}

func (r *Renderer) RenderTemporaryPass(ctx context.Context, p *temppass.TemporaryPass) (string, error) {
	r.TempPassCalls++
	if r.RenderTempPassFn != nil {
		return r.RenderTempPassFn(ctx, p)
	}
	if r.Err != nil {
		return "", r.Err
	}
	return fmt.Sprintf("/tmp/docs/temppass-%d.html", p.ID), nil
}
