package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/temppass"
	"gatepass-backend/internal/domain/uow"
	"gatepass-backend/internal/domain/workflow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: tx},
		Audit:        &AuditRepository{db: tx},
		TempPasses:   &TempPassRepository{db: tx},
		TempPassLog:  &TempPassLogRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, appID uint64, fn func(r uow.Repos, a *application.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the aggregate row up-front so concurrent transitions serialize
		a, err := r.Applications.GetByIDForUpdate(ctx, appID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return workflow.ErrNotFound
			}
			return err
		}
		return fn(r, a)
	})
}

func (u *GormUoW) WithinTempPassTx(ctx context.Context, passID uint64, fn func(r uow.Repos, p *temppass.TemporaryPass) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		p, err := r.TempPasses.GetByIDForUpdate(ctx, passID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return workflow.ErrNotFound
			}
			return err
		}
		return fn(r, p)
	})
}
