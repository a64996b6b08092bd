package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/model"
	"centrale-operativa/backend/internal/repository"
)

// ── test setup ──

func setupTestPersonnelService() (PersonnelService, *mockOperatorRepo) {
	operatorRepo := newMockOperatorRepo()
	repo := &repository.Repository{
		Shift:        newMockShiftRepo(),
		Operator:     operatorRepo,
		Announcement: newMockAnnouncementRepo(),
		AuthEvent:    newMockAuthEventRepo(),
	}
	svc := NewPersonnelService(repo, zap.NewNop())
	return svc, operatorRepo
}

// ── Create ──

func TestPersonnelService_Create(t *testing.T) {
	svc, _ := setupTestPersonnelService()

	op, err := svc.Create(context.Background(), &dto.UpsertOperatorRequest{
		Matricola:     "M.001",
		Name:          "Mario Rossi",
		Qualification: "🎖️・Sergente",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !op.IsActive {
		t.Error("new operators default to active")
	}
}

func TestPersonnelService_Create_BadMatricola(t *testing.T) {
	svc, _ := setupTestPersonnelService()

	for _, bad := range []string{"", "001", "M001", "M.1", "M.0001", "m.001"} {
		_, err := svc.Create(context.Background(), &dto.UpsertOperatorRequest{
			Matricola:     bad,
			Name:          "Mario Rossi",
			Qualification: "👮・Operatore",
		})
		if !errors.Is(err, ErrOperatorValidation) {
			t.Errorf("matricola %q: expected ErrOperatorValidation, got: %v", bad, err)
		}
	}
}

func TestPersonnelService_Create_DuplicateMatricola(t *testing.T) {
	svc, operatorRepo := setupTestPersonnelService()
	operatorRepo.operators["M.001"] = &model.Operator{Matricola: "M.001", Name: "Esistente"}

	_, err := svc.Create(context.Background(), &dto.UpsertOperatorRequest{
		Matricola:     "M.001",
		Name:          "Mario Rossi",
		Qualification: "👮・Operatore",
	})
	if !errors.Is(err, ErrMatricolaTaken) {
		t.Fatalf("expected ErrMatricolaTaken, got: %v", err)
	}
}

// ── Update ──

func TestPersonnelService_Update(t *testing.T) {
	svc, operatorRepo := setupTestPersonnelService()
	operatorRepo.operators["M.001"] = &model.Operator{
		Matricola: "M.001", Name: "Mario Rossi", Qualification: "👮・Operatore", IsActive: true,
	}

	inactive := false
	op, err := svc.Update(context.Background(), "M.001", &dto.UpsertOperatorRequest{
		Name:          "Mario Rossi",
		Qualification: "🎖️・Sergente",
		IsActive:      &inactive,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if op.Qualification != "🎖️・Sergente" {
		t.Errorf("qualification not updated: %q", op.Qualification)
	}
	if op.IsActive {
		t.Error("is_active not updated")
	}
}

func TestPersonnelService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestPersonnelService()

	_, err := svc.Update(context.Background(), "M.404", &dto.UpsertOperatorRequest{
		Name:          "Nessuno",
		Qualification: "👮・Operatore",
	})
	if !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound, got: %v", err)
	}
}

// ── List / Delete ──

func TestPersonnelService_List_ActiveOnly(t *testing.T) {
	svc, operatorRepo := setupTestPersonnelService()
	operatorRepo.operators["M.001"] = &model.Operator{Matricola: "M.001", Name: "Attivo", IsActive: true}
	operatorRepo.operators["M.002"] = &model.Operator{Matricola: "M.002", Name: "Congedato", IsActive: false}

	list, err := svc.List(context.Background(), &dto.ListPersonnelRequest{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, op := range list {
		if !op.IsActive {
			t.Errorf("inactive operator %s returned with active_only", op.Matricola)
		}
	}
}

func TestPersonnelService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestPersonnelService()

	err := svc.Delete(context.Background(), "M.404")
	if !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound, got: %v", err)
	}
}
