package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appDomain "gatepass-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, appID uint64) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Preload("Supervisors").
		Preload("ToolItems").
		First(&out, appID)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// GetByIDForUpdate takes a row-level lock so that two concurrent transitions
// on the same application serialize; the loser sees the advanced status. The
// children ride along so a transition holds the full snapshot (the renderer
// needs the supervisor and tool tables).
func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, appID uint64) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Supervisors").
		Preload("ToolItems").
		First(&out, appID)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *ApplicationRepository) ListByStatusForSSE(ctx context.Context, sseID uint64, status appDomain.Status) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("assigned_sse_id = ? AND status = ?", sseID, status).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListByStatus(ctx context.Context, status appDomain.Status) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListAssignedToOfficer(ctx context.Context, target appDomain.OfficerTarget, officerID uint64, status appDomain.Status) ([]appDomain.Application, error) {
	col := "assigned_officer1_id"
	if target == appDomain.TargetOfficer2 {
		col = "assigned_officer2_id"
	}
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("status = ? AND ("+col+" = ? OR "+col+" IS NULL)", status, officerID).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListByFirm(ctx context.Context, firmID uint64) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("firm_id = ?", firmID).
		Order("submitted_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
