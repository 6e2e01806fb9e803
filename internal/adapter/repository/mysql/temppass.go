package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	passDomain "gatepass-backend/internal/domain/temppass"
)

type TempPassRepository struct{ db *gorm.DB }

func NewTempPassRepository(db *gorm.DB) *TempPassRepository { return &TempPassRepository{db: db} }

func (r *TempPassRepository) Create(ctx context.Context, p *passDomain.TemporaryPass) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *TempPassRepository) Save(ctx context.Context, p *passDomain.TemporaryPass) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *TempPassRepository) GetByID(ctx context.Context, passID uint64) (*passDomain.TemporaryPass, error) {
	var out passDomain.TemporaryPass
	res := r.db.WithContext(ctx).First(&out, passID)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *TempPassRepository) GetByIDForUpdate(ctx context.Context, passID uint64) (*passDomain.TemporaryPass, error) {
	var out passDomain.TemporaryPass
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out, passID)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *TempPassRepository) ListAssignedToOfficer(ctx context.Context, officerID uint64, status passDomain.Status) ([]passDomain.TemporaryPass, error) {
	var out []passDomain.TemporaryPass
	res := r.db.WithContext(ctx).
		Where("assigned_officer_id = ? AND status = ?", officerID, status).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *TempPassRepository) ListByStatus(ctx context.Context, status passDomain.Status) ([]passDomain.TemporaryPass, error) {
	var out []passDomain.TemporaryPass
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *TempPassRepository) ListByFirm(ctx context.Context, firmID uint64) ([]passDomain.TemporaryPass, error) {
	var out []passDomain.TemporaryPass
	res := r.db.WithContext(ctx).
		Where("firm_id = ?", firmID).
		Order("submitted_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// TempPassLogRepository is the temporary-pass audit sink, append-only.
type TempPassLogRepository struct{ db *gorm.DB }

func NewTempPassLogRepository(db *gorm.DB) *TempPassLogRepository {
	return &TempPassLogRepository{db: db}
}

func (r *TempPassLogRepository) Append(ctx context.Context, e *passDomain.LogEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *TempPassLogRepository) ListByTemporaryPassID(ctx context.Context, passID uint64) ([]passDomain.LogEntry, error) {
	var out []passDomain.LogEntry
	res := r.db.WithContext(ctx).
		Where("temporary_pass_id = ?", passID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
