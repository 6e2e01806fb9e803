package refdatamock

import (
	"context"

	"gatepass-backend/internal/domain/refdata"
	"gatepass-backend/internal/domain/workflow"
)

// Directory is a map-backed fake of the reference-data read port.
type Directory struct {
	Contracts map[string]refdata.Contract
	Users     map[uint64]refdata.UserSummary

	GetContractFn func(ctx context.Context, loaNumber string) (*refdata.Contract, error)
	GetUsersFn    func(ctx context.Context, role workflow.Role) ([]refdata.UserSummary, error)
	GetUserFn     func(ctx context.Context, id uint64) (*refdata.UserSummary, error)
}

var _ refdata.Directory = (*Directory)(nil)

func (d *Directory) GetContractByLOANumber(ctx context.Context, loaNumber string) (*refdata.Contract, error) {
	if d.GetContractFn != nil {
		return d.GetContractFn(ctx, loaNumber)
	}
	if c, ok := d.Contracts[loaNumber]; ok {
		return &c, nil
	}
	return nil, workflow.ErrNotFound
}

func (d *Directory) GetActiveUsersByRole(ctx context.Context, role workflow.Role) ([]refdata.UserSummary, error) {
	if d.GetUsersFn != nil {
		return d.GetUsersFn(ctx, role)
	}
	var out []refdata.UserSummary
	for _, u := range d.Users {
		if u.Role == role && u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (d *Directory) GetUserByID(ctx context.Context, id uint64) (*refdata.UserSummary, error) {
	if d.GetUserFn != nil {
		return d.GetUserFn(ctx, id)
	}
	if u, ok := d.Users[id]; ok {
		return &u, nil
	}
	return nil, workflow.ErrNotFound
}
