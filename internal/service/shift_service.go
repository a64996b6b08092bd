package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/model"
	"centrale-operativa/backend/internal/repository"
)

// ── shift module business errors ──

var (
	ErrShiftNotFound   = errors.New("shift record not found")
	ErrShiftValidation = errors.New("shift validation failed")
)

// Form limits, matching the dashboard activation forms.
const (
	maxPatrolOperators    = 2
	minHeistOperators     = 6
	maxHeistOperators     = 15
	maxHeistOperatorsBack = 15
)

// patrolInterventionTypes are valid for the patrol activation form.
var patrolInterventionTypes = map[string]bool{
	"pattugliamento_cittadino": true,
}

// heistInterventionTypes are valid for the heist activation form.
var heistInterventionTypes = map[string]bool{
	"gioielleria":              true,
	"banca_credito_capitolina": true,
	"banca_roma":               true,
}

// patrolVehicles are the unit's patrol fleet.
var patrolVehicles = map[string]bool{
	"jeep_cherokee":       true,
	"land_rover_defender": true,
}

// ShiftService handles activation/deactivation record intake and listing.
type ShiftService interface {
	Create(ctx context.Context, req *dto.CreateShiftRequest, createdBy string) (*model.Shift, error)
	List(ctx context.Context, req *dto.ListShiftsRequest) ([]model.Shift, int64, error)
	Delete(ctx context.Context, id string) error
}

type shiftService struct {
	repo     *repository.Repository
	notifier ShiftNotifier
	logger   *zap.Logger
}

// NewShiftService creates the ShiftService.
func NewShiftService(repo *repository.Repository, notifier ShiftNotifier, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, notifier: notifier, logger: logger}
}

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest, createdBy string) (*model.Shift, error) {
	shift, err := shiftFromRequest(req)
	if err != nil {
		return nil, err
	}
	if createdBy != "" {
		shift.CreatedBy = &createdBy
	}

	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		s.logger.Error("creating shift record failed", zap.Error(err))
		return nil, err
	}

	s.notifier.ShiftCreated(shift)

	return shift, nil
}

func (s *shiftService) List(ctx context.Context, req *dto.ListShiftsRequest) ([]model.Shift, int64, error) {
	if req.ModuleType != "" && !model.IsValidModuleType(req.ModuleType) {
		return nil, 0, fmt.Errorf("%w: unknown module type %q", ErrShiftValidation, req.ModuleType)
	}
	return s.repo.Shift.List(ctx, req.ModuleType, req.Offset(), req.GetPageSize())
}

func (s *shiftService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Shift.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		return err
	}
	return nil
}

// shiftFromRequest validates the per-variant form rules and builds the record.
func shiftFromRequest(req *dto.CreateShiftRequest) (*model.Shift, error) {
	if !model.IsValidModuleType(req.ModuleType) {
		return nil, fmt.Errorf("%w: unknown module type %q", ErrShiftValidation, req.ModuleType)
	}

	shift := &model.Shift{
		ModuleType: req.ModuleType,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		return nil, fmt.Errorf("%w: end_time must follow start_time", ErrShiftValidation)
	}

	switch req.ModuleType {
	case model.ModulePatrolActivation:
		if req.ManagedBy == nil {
			return nil, fmt.Errorf("%w: managed_by is required", ErrShiftValidation)
		}
		if err := requireClock(req.ActivationTime, "activation_time"); err != nil {
			return nil, err
		}
		if !patrolInterventionTypes[req.InterventionType] {
			return nil, fmt.Errorf("%w: unknown intervention type %q", ErrShiftValidation, req.InterventionType)
		}
		if !patrolVehicles[req.VehicleUsed] {
			return nil, fmt.Errorf("%w: unknown vehicle %q", ErrShiftValidation, req.VehicleUsed)
		}
		if err := validateCrew(req.OperatorsOut, "operators_out", 1, maxPatrolOperators); err != nil {
			return nil, err
		}
		shift.ManagedBy = model.NewPerson(*req.ManagedBy)
		shift.ActivationTime = &req.ActivationTime
		shift.InterventionType = &req.InterventionType
		shift.VehicleUsed = &req.VehicleUsed
		shift.OperatorsOut = req.OperatorsOut

	case model.ModulePatrolDeactivation:
		if err := requireClock(req.DeactivationTime, "deactivation_time"); err != nil {
			return nil, err
		}
		if err := validateCrew(req.OperatorsBack, "operators_back", 1, maxPatrolOperators); err != nil {
			return nil, err
		}
		shift.DeactivationTime = &req.DeactivationTime
		shift.OperatorsBack = req.OperatorsBack

	case model.ModuleHeistActivation:
		if req.Coordinator == nil {
			return nil, fmt.Errorf("%w: coordinator is required", ErrShiftValidation)
		}
		if req.Negotiator == nil {
			return nil, fmt.Errorf("%w: negotiator is required", ErrShiftValidation)
		}
		if err := requireClock(req.ActivationTime, "activation_time"); err != nil {
			return nil, err
		}
		if !heistInterventionTypes[req.InterventionType] {
			return nil, fmt.Errorf("%w: unknown intervention type %q", ErrShiftValidation, req.InterventionType)
		}
		if err := validateCrew(req.OperatorsInvolved, "operators_involved", minHeistOperators, maxHeistOperators); err != nil {
			return nil, err
		}
		shift.Coordinator = model.NewPerson(*req.Coordinator)
		shift.Negotiator = model.NewPerson(*req.Negotiator)
		shift.ActivationTime = &req.ActivationTime
		shift.InterventionType = &req.InterventionType
		shift.OperatorsInvolved = req.OperatorsInvolved

	case model.ModuleHeistDeactivation:
		if err := requireClock(req.DeactivationTime, "deactivation_time"); err != nil {
			return nil, err
		}
		if err := validateCrew(req.OperatorsBack, "operators_back", 1, maxHeistOperatorsBack); err != nil {
			return nil, err
		}
		shift.DeactivationTime = &req.DeactivationTime
		shift.OperatorsBack = req.OperatorsBack
	}

	return shift, nil
}

// requireClock checks that a required "HH:MM" field is present and parsable.
func requireClock(value, field string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrShiftValidation, field)
	}
	if _, err := clockMinutes(value); err != nil {
		return fmt.Errorf("%w: %s must be HH:MM", ErrShiftValidation, field)
	}
	return nil
}

// validateCrew checks crew size bounds, non-empty matricole and uniqueness.
func validateCrew(ops []model.OperatorRef, field string, min, max int) error {
	if len(ops) < min || len(ops) > max {
		return fmt.Errorf("%w: %s must list between %d and %d operators", ErrShiftValidation, field, min, max)
	}
	seen := make(map[string]bool, len(ops))
	for _, op := range ops {
		if op.ID == "" {
			return fmt.Errorf("%w: %s entries need a matricola", ErrShiftValidation, field)
		}
		if seen[op.ID] {
			return fmt.Errorf("%w: %s lists operator %s twice", ErrShiftValidation, field, op.ID)
		}
		seen[op.ID] = true
	}
	return nil
}
