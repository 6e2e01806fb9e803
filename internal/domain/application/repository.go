package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	// GetByIDForUpdate locks the aggregate row for the duration of the
	// surrounding transaction; every transition goes through it.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Application, error)
	Save(ctx context.Context, a *Application) error

	// Role-scoped queues, filtered server-side by the caller's identity.
	ListByStatusForSSE(ctx context.Context, sseID uint64, status Status) ([]Application, error)
	ListByStatus(ctx context.Context, status Status) ([]Application, error)
	ListAssignedToOfficer(ctx context.Context, target OfficerTarget, officerID uint64, status Status) ([]Application, error)
	ListByFirm(ctx context.Context, firmID uint64) ([]Application, error)
}
