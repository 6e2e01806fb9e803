package temppass

import "context"

type Repository interface {
	Create(ctx context.Context, p *TemporaryPass) error
	GetByID(ctx context.Context, id uint64) (*TemporaryPass, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*TemporaryPass, error)
	Save(ctx context.Context, p *TemporaryPass) error
	ListAssignedToOfficer(ctx context.Context, officerID uint64, status Status) ([]TemporaryPass, error)
	ListByStatus(ctx context.Context, status Status) ([]TemporaryPass, error)
	ListByFirm(ctx context.Context, firmID uint64) ([]TemporaryPass, error)
}

// LogRepository is the temporary-pass counterpart of the audit repository.
type LogRepository interface {
	Append(ctx context.Context, e *LogEntry) error
	ListByTemporaryPassID(ctx context.Context, id uint64) ([]LogEntry, error)
}
