package temppassmock

import (
	"context"
	"sync"

	domain "gatepass-backend/internal/domain/temppass"
)

// Repo is a function-backed mock satisfying temppass.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, p *domain.TemporaryPass) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.TemporaryPass, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.TemporaryPass, error)
	SaveFn                  func(ctx context.Context, p *domain.TemporaryPass) error
	ListAssignedToOfficerFn func(ctx context.Context, officerID uint64, status domain.Status) ([]domain.TemporaryPass, error)
	ListByStatusFn          func(ctx context.Context, status domain.Status) ([]domain.TemporaryPass, error)
	ListByFirmFn            func(ctx context.Context, firmID uint64) ([]domain.TemporaryPass, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.TemporaryPass) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.TemporaryPass, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.TemporaryPass, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.TemporaryPass) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListAssignedToOfficer(ctx context.Context, officerID uint64, status domain.Status) ([]domain.TemporaryPass, error) {
	if m.ListAssignedToOfficerFn != nil {
		return m.ListAssignedToOfficerFn(ctx, officerID, status)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.TemporaryPass, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) ListByFirm(ctx context.Context, firmID uint64) ([]domain.TemporaryPass, error) {
	if m.ListByFirmFn != nil {
		return m.ListByFirmFn(ctx, firmID)
	}
	return nil, nil
}

// LogRepo is the in-memory temporary-pass log sink.
type LogRepo struct {
	mu      sync.Mutex
	Entries []domain.LogEntry

	AppendFn                func(ctx context.Context, e *domain.LogEntry) error
	ListByTemporaryPassIDFn func(ctx context.Context, id uint64) ([]domain.LogEntry, error)
}

var _ domain.LogRepository = (*LogRepo)(nil)

func (m *LogRepo) Append(ctx context.Context, e *domain.LogEntry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uint64(len(m.Entries) + 1)
	m.Entries = append(m.Entries, *e)
	return nil
}

func (m *LogRepo) ListByTemporaryPassID(ctx context.Context, id uint64) ([]domain.LogEntry, error) {
	if m.ListByTemporaryPassIDFn != nil {
		return m.ListByTemporaryPassIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LogEntry
	for _, e := range m.Entries {
		if e.TemporaryPassID == id {
			out = append(out, e)
		}
	}
	return out, nil
}
