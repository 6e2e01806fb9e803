package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"gatepass-backend/internal/domain/workflow"
)

func openRefdataTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	if err := db.AutoMigrate(&contractRow{}, &userRow{}); err != nil {
		t.Fatalf("auto-migrate refdata: %v", err)
	}
	return db
}

func TestDirectory_GetContractByLOANumber(t *testing.T) {
	db := openRefdataTestDB(t)
	dir := NewDirectory(db)
	ctx := context.Background()

	if err := db.Create(&contractRow{
		LOANumber: "LOA-2026-001", Description: "substation overhaul",
		FirmID: 9, FirmName: "Acme Electricals", FirmEmail: "firm@example.com",
		ExecutingSSEID: 11, Active: true,
	}).Error; err != nil {
		t.Fatalf("seed contract: %v", err)
	}

	got, err := dir.GetContractByLOANumber(ctx, "LOA-2026-001")
	if err != nil {
		t.Fatalf("GetContractByLOANumber: %v", err)
	}
	if got.FirmID != 9 || got.ExecutingSSEID != 11 || !got.Active {
		t.Errorf("unexpected contract: %+v", got)
	}

	if _, err := dir.GetContractByLOANumber(ctx, "LOA-NOPE"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDirectory_GetActiveUsersByRole(t *testing.T) {
	db := openRefdataTestDB(t)
	dir := NewDirectory(db)
	ctx := context.Background()

	users := []userRow{
		{ID: 21, Name: "A. Rao", Email: "a@example.com", Role: "safety_officer", Active: true},
		{ID: 22, Name: "B. Iyer", Email: "b@example.com", Role: "safety_officer", Active: false},
		{ID: 31, Name: "C. Das", Email: "c@example.com", Role: "officer1", Active: true},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	got, err := dir.GetActiveUsersByRole(ctx, workflow.RoleSafety)
	if err != nil {
		t.Fatalf("GetActiveUsersByRole: %v", err)
	}
	// inactive users never get workflow mail
	if len(got) != 1 || got[0].ID != 21 {
		t.Fatalf("pool = %+v", got)
	}
}

func TestDirectory_GetUserByID(t *testing.T) {
	db := openRefdataTestDB(t)
	dir := NewDirectory(db)
	ctx := context.Background()

	if err := db.Create(&userRow{ID: 51, Name: "D. Roy", Email: "d@example.com", Role: "chos_npb", Active: true}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	got, err := dir.GetUserByID(ctx, 51)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Role != workflow.RoleChos || got.Name != "D. Roy" {
		t.Errorf("unexpected user: %+v", got)
	}

	if _, err := dir.GetUserByID(ctx, 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
