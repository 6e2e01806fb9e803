package appmock

import (
	"context"

	domain "gatepass-backend/internal/domain/application"
)

// Repo is a function-backed mock that satisfies application.Repository.
// Only the methods a test fills in do anything; the rest return zero values.
type Repo struct {
	CreateFn                func(ctx context.Context, a *domain.Application) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Application, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.Application, error)
	SaveFn                  func(ctx context.Context, a *domain.Application) error
	ListByStatusForSSEFn    func(ctx context.Context, sseID uint64, status domain.Status) ([]domain.Application, error)
	ListByStatusFn          func(ctx context.Context, status domain.Status) ([]domain.Application, error)
	ListAssignedToOfficerFn func(ctx context.Context, target domain.OfficerTarget, officerID uint64, status domain.Status) ([]domain.Application, error)
	ListByFirmFn            func(ctx context.Context, firmID uint64) ([]domain.Application, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByStatusForSSE(ctx context.Context, sseID uint64, status domain.Status) ([]domain.Application, error) {
	if m.ListByStatusForSSEFn != nil {
		return m.ListByStatusForSSEFn(ctx, sseID, status)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Application, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) ListAssignedToOfficer(ctx context.Context, target domain.OfficerTarget, officerID uint64, status domain.Status) ([]domain.Application, error) {
	if m.ListAssignedToOfficerFn != nil {
		return m.ListAssignedToOfficerFn(ctx, target, officerID, status)
	}
	return nil, nil
}

func (m *Repo) ListByFirm(ctx context.Context, firmID uint64) ([]domain.Application, error) {
	if m.ListByFirmFn != nil {
		return m.ListByFirmFn(ctx, firmID)
	}
	return nil, nil
}
