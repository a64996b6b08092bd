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

// recordingNotifier captures notifications instead of delivering them.
type recordingNotifier struct {
	created []*model.Shift
}

func (n *recordingNotifier) ShiftCreated(shift *model.Shift) {
	n.created = append(n.created, shift)
}

func setupTestShiftService() (ShiftService, *mockShiftRepo, *recordingNotifier) {
	shiftRepo := newMockShiftRepo()
	repo := &repository.Repository{
		Shift:        shiftRepo,
		Operator:     newMockOperatorRepo(),
		Announcement: newMockAnnouncementRepo(),
		AuthEvent:    newMockAuthEventRepo(),
	}
	notifier := &recordingNotifier{}
	svc := NewShiftService(repo, notifier, zap.NewNop())
	return svc, shiftRepo, notifier
}

func ref(id, name string) *model.OperatorRef {
	return &model.OperatorRef{ID: id, Name: name}
}

func validPatrolActivation() *dto.CreateShiftRequest {
	return &dto.CreateShiftRequest{
		ModuleType:       model.ModulePatrolActivation,
		ManagedBy:        ref("M.010", "Capopattuglia Bruni"),
		ActivationTime:   "21:30",
		InterventionType: "pattugliamento_cittadino",
		VehicleUsed:      "jeep_cherokee",
		OperatorsOut: []model.OperatorRef{
			{ID: "M.001", Name: "Mario Rossi"},
			{ID: "M.002", Name: "Luca Verdi"},
		},
	}
}

func validHeistActivation() *dto.CreateShiftRequest {
	ops := make([]model.OperatorRef, 0, 6)
	for _, id := range []string{"M.001", "M.002", "M.003", "M.004", "M.005", "M.006"} {
		ops = append(ops, model.OperatorRef{ID: id, Name: "Agente " + id})
	}
	return &dto.CreateShiftRequest{
		ModuleType:        model.ModuleHeistActivation,
		Coordinator:       ref("M.010", "Coordinatore Bruni"),
		Negotiator:        ref("M.011", "Negoziatore Gallo"),
		ActivationTime:    "22:00",
		InterventionType:  "banca_roma",
		OperatorsInvolved: ops,
	}
}

// ── Create: patrol activation ──

func TestShiftService_CreatePatrolActivation(t *testing.T) {
	svc, _, notifier := setupTestShiftService()

	shift, err := svc.Create(context.Background(), validPatrolActivation(), "M.010")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if shift.ModuleType != model.ModulePatrolActivation {
		t.Errorf("wrong module type: %s", shift.ModuleType)
	}
	if !shift.ManagedBy.Valid || shift.ManagedBy.ID != "M.010" {
		t.Errorf("managed_by not stored: %+v", shift.ManagedBy)
	}
	if shift.CreatedBy == nil || *shift.CreatedBy != "M.010" {
		t.Error("created_by not stored")
	}
	if len(notifier.created) != 1 {
		t.Errorf("expected 1 notification, got %d", len(notifier.created))
	}
}

func TestShiftService_CreatePatrolActivation_MissingManager(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := validPatrolActivation()
	req.ManagedBy = nil

	_, err := svc.Create(context.Background(), req, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("expected ErrShiftValidation, got: %v", err)
	}
}

func TestShiftService_CreatePatrolActivation_UnknownVehicle(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := validPatrolActivation()
	req.VehicleUsed = "fiat_panda"

	_, err := svc.Create(context.Background(), req, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("expected ErrShiftValidation, got: %v", err)
	}
}

func TestShiftService_CreatePatrolActivation_UnknownIntervention(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := validPatrolActivation()
	req.InterventionType = "inseguimento"

	_, err := svc.Create(context.Background(), req, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("expected ErrShiftValidation, got: %v", err)
	}
}

func TestShiftService_CreatePatrolActivation_TooManyOperators(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := validPatrolActivation()
	req.OperatorsOut = append(req.OperatorsOut, model.OperatorRef{ID: "M.003", Name: "Terzo"})

	_, err := svc.Create(context.Background(), req, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("a patrol crew is capped at 2, expected ErrShiftValidation, got: %v", err)
	}
}

func TestShiftService_CreatePatrolActivation_BadClock(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := validPatrolActivation()
	req.ActivationTime = "9pm"

	_, err := svc.Create(context.Background(), req, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("expected ErrShiftValidation, got: %v", err)
	}
}

func TestShiftService_CreatePatrolActivation_DuplicateOperator(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := validPatrolActivation()
	req.OperatorsOut = []model.OperatorRef{
		{ID: "M.001", Name: "Mario Rossi"},
		{ID: "M.001", Name: "Mario Rossi"},
	}

	_, err := svc.Create(context.Background(), req, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("expected ErrShiftValidation, got: %v", err)
	}
}

// ── Create: heist ──

func TestShiftService_CreateHeistActivation(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	shift, err := svc.Create(context.Background(), validHeistActivation(), "M.010")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !shift.Coordinator.Valid || !shift.Negotiator.Valid {
		t.Error("coordinator and negotiator must be stored")
	}
	if len(shift.OperatorsInvolved) != 6 {
		t.Errorf("expected 6 operators, got %d", len(shift.OperatorsInvolved))
	}
}

func TestShiftService_CreateHeistActivation_CrewTooSmall(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := validHeistActivation()
	req.OperatorsInvolved = req.OperatorsInvolved[:5]

	_, err := svc.Create(context.Background(), req, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("a heist needs at least 6 operators, expected ErrShiftValidation, got: %v", err)
	}
}

func TestShiftService_CreateHeistActivation_MissingNegotiator(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := validHeistActivation()
	req.Negotiator = nil

	_, err := svc.Create(context.Background(), req, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("expected ErrShiftValidation, got: %v", err)
	}
}

func TestShiftService_CreateHeistDeactivation(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := &dto.CreateShiftRequest{
		ModuleType:       model.ModuleHeistDeactivation,
		DeactivationTime: "02:00",
		OperatorsBack: []model.OperatorRef{
			{ID: "M.001", Name: "Mario Rossi"},
		},
	}

	shift, err := svc.Create(context.Background(), req, "M.010")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if shift.DeactivationTime == nil || *shift.DeactivationTime != "02:00" {
		t.Error("deactivation_time not stored")
	}
}

func TestShiftService_Create_UnknownModuleType(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	_, err := svc.Create(context.Background(), &dto.CreateShiftRequest{ModuleType: "patrol_pause"}, "M.010")
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("expected ErrShiftValidation, got: %v", err)
	}
}

// ── List / Delete ──

func TestShiftService_List_FilterByModuleType(t *testing.T) {
	svc, shiftRepo, _ := setupTestShiftService()

	seedShift(t, shiftRepo, patrolActivation(t, "", "10:00", 0, crew("M.001")))
	seedShift(t, shiftRepo, patrolDeactivation(t, "", "12:00", 0, crew("M.001")))

	req := &dto.ListShiftsRequest{ModuleType: model.ModulePatrolActivation}
	shifts, total, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(shifts) != 1 {
		t.Errorf("expected 1 activation, got total=%d len=%d", total, len(shifts))
	}
}

func TestShiftService_List_InvalidFilter(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	req := &dto.ListShiftsRequest{ModuleType: "patrol_pause"}
	_, _, err := svc.List(context.Background(), req)
	if !errors.Is(err, ErrShiftValidation) {
		t.Fatalf("expected ErrShiftValidation, got: %v", err)
	}
}

func TestShiftService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestShiftService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("expected ErrShiftNotFound, got: %v", err)
	}
}

func TestShiftService_Delete(t *testing.T) {
	svc, shiftRepo, _ := setupTestShiftService()

	seedShift(t, shiftRepo, patrolActivation(t, "shift-del", "10:00", 0, crew("M.001")))

	if err := svc.Delete(context.Background(), "shift-del"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := shiftRepo.GetByID(context.Background(), "shift-del"); err == nil {
		t.Error("record should be gone")
	}
}
