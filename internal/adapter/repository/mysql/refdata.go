package mysql

import (
	"context"

	"gorm.io/gorm"

	"gatepass-backend/internal/domain/refdata"
	"gatepass-backend/internal/domain/workflow"
)

// contractRow/userRow are read-only projections over the reference tables
// owned by the admin CRUD surface; the engine never writes them.
type contractRow struct {
	LOANumber      string `gorm:"column:loa_number"`
	Description    string `gorm:"column:description"`
	FirmID         uint64 `gorm:"column:firm_id"`
	FirmName       string `gorm:"column:firm_name"`
	FirmEmail      string `gorm:"column:firm_email"`
	ExecutingSSEID uint64 `gorm:"column:executing_sse_id"`
	Active         bool   `gorm:"column:active"`
}

func (contractRow) TableName() string { return "contracts" }

type userRow struct {
	ID     uint64 `gorm:"column:id;primaryKey"`
	Name   string `gorm:"column:name"`
	Email  string `gorm:"column:email"`
	Role   string `gorm:"column:role"`
	Active bool   `gorm:"column:active"`
}

func (userRow) TableName() string { return "users" }

// Directory is the gorm-backed refdata.Directory.
type Directory struct{ db *gorm.DB }

func NewDirectory(db *gorm.DB) *Directory { return &Directory{db: db} }

func (d *Directory) GetContractByLOANumber(ctx context.Context, loaNumber string) (*refdata.Contract, error) {
	var row contractRow
	res := d.db.WithContext(ctx).Where("loa_number = ?", loaNumber).First(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	return &refdata.Contract{
		LOANumber:      row.LOANumber,
		Description:    row.Description,
		FirmID:         row.FirmID,
		FirmName:       row.FirmName,
		FirmEmail:      row.FirmEmail,
		ExecutingSSEID: row.ExecutingSSEID,
		Active:         row.Active,
	}, nil
}

func (d *Directory) GetActiveUsersByRole(ctx context.Context, role workflow.Role) ([]refdata.UserSummary, error) {
	var rows []userRow
	res := d.db.WithContext(ctx).
		Where("role = ? AND active = ?", string(role), true).
		Order("id ASC").
		Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make([]refdata.UserSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, toUserSummary(r))
	}
	return out, nil
}

func (d *Directory) GetUserByID(ctx context.Context, userID uint64) (*refdata.UserSummary, error) {
	var row userRow
	res := d.db.WithContext(ctx).First(&row, userID)
	if res.Error != nil {
		return nil, res.Error
	}
	u := toUserSummary(row)
	return &u, nil
}

func toUserSummary(r userRow) refdata.UserSummary {
	return refdata.UserSummary{
		ID:     r.ID,
		Name:   r.Name,
		Email:  r.Email,
		Role:   workflow.Role(r.Role),
		Active: r.Active,
	}
}
