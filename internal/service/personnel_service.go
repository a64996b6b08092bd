package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/model"
	"centrale-operativa/backend/internal/repository"
)

// ── personnel module business errors ──

var (
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrMatricolaTaken     = errors.New("matricola already assigned")
	ErrOperatorValidation = errors.New("operator validation failed")
)

// matricolaPattern matches the unit's badge format, e.g. "M.007".
var matricolaPattern = regexp.MustCompile(`^M\.[0-9]{3}$`)

// PersonnelService manages the roster, which doubles as the personnel
// directory for the activation statistics.
type PersonnelService interface {
	List(ctx context.Context, req *dto.ListPersonnelRequest) ([]model.Operator, error)
	Create(ctx context.Context, req *dto.UpsertOperatorRequest) (*model.Operator, error)
	Update(ctx context.Context, matricola string, req *dto.UpsertOperatorRequest) (*model.Operator, error)
	Delete(ctx context.Context, matricola string) error
}

type personnelService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPersonnelService creates the PersonnelService.
func NewPersonnelService(repo *repository.Repository, logger *zap.Logger) PersonnelService {
	return &personnelService{repo: repo, logger: logger}
}

func (s *personnelService) List(ctx context.Context, req *dto.ListPersonnelRequest) ([]model.Operator, error) {
	return s.repo.Operator.List(ctx, req.Search, req.Qualification, req.ActiveOnly)
}

func (s *personnelService) Create(ctx context.Context, req *dto.UpsertOperatorRequest) (*model.Operator, error) {
	if !matricolaPattern.MatchString(req.Matricola) {
		return nil, fmt.Errorf("%w: matricola must match M.NNN", ErrOperatorValidation)
	}

	if _, err := s.repo.Operator.GetByMatricola(ctx, req.Matricola); err == nil {
		return nil, ErrMatricolaTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	op := &model.Operator{
		Matricola:     req.Matricola,
		Name:          req.Name,
		Qualification: req.Qualification,
		AvatarURL:     req.AvatarURL,
		DiscordTag:    req.DiscordTag,
		IsActive:      true,
	}
	if req.IsActive != nil {
		op.IsActive = *req.IsActive
	}

	if err := s.repo.Operator.Create(ctx, op); err != nil {
		s.logger.Error("creating operator failed", zap.Error(err))
		return nil, err
	}
	return op, nil
}

func (s *personnelService) Update(ctx context.Context, matricola string, req *dto.UpsertOperatorRequest) (*model.Operator, error) {
	op, err := s.repo.Operator.GetByMatricola(ctx, matricola)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}

	op.Name = req.Name
	op.Qualification = req.Qualification
	op.AvatarURL = req.AvatarURL
	op.DiscordTag = req.DiscordTag
	if req.IsActive != nil {
		op.IsActive = *req.IsActive
	}

	if err := s.repo.Operator.Update(ctx, op); err != nil {
		s.logger.Error("updating operator failed", zap.Error(err))
		return nil, err
	}
	return op, nil
}

func (s *personnelService) Delete(ctx context.Context, matricola string) error {
	if err := s.repo.Operator.Delete(ctx, matricola); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOperatorNotFound
		}
		return err
	}
	return nil
}
