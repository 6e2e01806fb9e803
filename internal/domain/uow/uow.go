package uow

import (
	"context"

	"gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/audit"
	"gatepass-backend/internal/domain/temppass"
)

// Repos bundles the repositories bound to one transaction.
type Repos struct {
	Applications application.Repository
	Audit        audit.Repository
	TempPasses   temppass.Repository
	TempPassLog  temppass.LogRepository
}

// UnitOfWork is the atomic boundary for every workflow transition: the
// status guard, the aggregate mutation and the audit append either all
// commit or nothing persists.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinApplicationTx locks the application row first, then runs fn.
	WithinApplicationTx(ctx context.Context, id uint64, fn func(r Repos, a *application.Application) error) error
	// WithinTempPassTx is the temporary-pass counterpart.
	WithinTempPassTx(ctx context.Context, id uint64, fn func(r Repos, p *temppass.TemporaryPass) error) error
}
