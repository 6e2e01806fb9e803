package document

import (
	"context"

	"gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/temppass"
)

// Renderer turns an approved aggregate snapshot into a distributable
// artifact and returns an opaque reference to it. Re-rendering the same
// snapshot must produce an equivalent document (a fresh filename is fine).
type Renderer interface {
	RenderGatePass(ctx context.Context, app *application.Application) (string, error)
	RenderTemporaryPass(ctx context.Context, p *temppass.TemporaryPass) (string, error)
}
