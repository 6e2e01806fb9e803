package uowmock

import (
	"context"
	"errors"

	"gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/temppass"
	"gatepass-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApplicationTxFn func(ctx context.Context, id uint64, fn func(r uow.Repos, a *application.Application) error) error
	WithinTempPassTxFn    func(ctx context.Context, id uint64, fn func(r uow.Repos, p *temppass.TemporaryPass) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinApplicationTx(ctx context.Context, id uint64, fn func(r uow.Repos, a *application.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, id, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinTempPassTx(ctx context.Context, id uint64, fn func(r uow.Repos, p *temppass.TemporaryPass) error) error {
	if m.WithinTempPassTxFn != nil {
		return m.WithinTempPassTxFn(ctx, id, fn)
	}
	return errUnimplemented
}
