package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GatePermitNumber formats the permit stamped on the final document,
// e.g. GP-2024-000123 for application 123 approved in 2024. Uniqueness
// follows from the application id.
func GatePermitNumber(year int, applicationID uint64) string {
	return fmt.Sprintf("GP-%d-%06d", year, applicationID)
}

// TempPermitNumber is the temporary-pass counterpart, own prefix.
func TempPermitNumber(year int, passID uint64) string {
	return fmt.Sprintf("TP-%d-%06d", year, passID)
}

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
