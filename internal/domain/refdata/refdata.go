package refdata

import (
	"context"

	"gatepass-backend/internal/domain/workflow"
)

// Contract is the read-only projection of an LOA the engine consults at
// submission time.
type Contract struct {
	LOANumber      string `json:"loa_number"`
	Description    string `json:"description"`
	FirmID         uint64 `json:"firm_id"`
	FirmName       string `json:"firm_name"`
	FirmEmail      string `json:"firm_email"`
	ExecutingSSEID uint64 `json:"executing_sse_id"`
	Active         bool   `json:"active"`
}

// UserSummary is the slice of a user the engine needs for assignment checks
// and notification fan-out.
type UserSummary struct {
	ID     uint64        `json:"id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Role   workflow.Role `json:"role"`
	Active bool          `json:"active"`
}

// Directory is the injected read port over reference data (contracts, users).
// The engine never writes through it.
type Directory interface {
	GetContractByLOANumber(ctx context.Context, loaNumber string) (*Contract, error)
	GetActiveUsersByRole(ctx context.Context, role workflow.Role) ([]UserSummary, error)
	GetUserByID(ctx context.Context, id uint64) (*UserSummary, error)
}
