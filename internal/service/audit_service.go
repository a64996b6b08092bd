package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/model"
	"centrale-operativa/backend/internal/repository"
)

// ErrAuditValidation marks an invalid audit event payload.
var ErrAuditValidation = errors.New("audit event validation failed")

// AuditService stores and lists the login/logout trail pushed by the
// external auth collaborator.
type AuditService interface {
	Record(ctx context.Context, req *dto.AuthEventRequest) (*model.AuthEvent, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]model.AuthEvent, int64, error)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService creates the AuditService.
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Record(ctx context.Context, req *dto.AuthEventRequest) (*model.AuthEvent, error) {
	if req.EventType != model.EventLogin && req.EventType != model.EventLogout {
		return nil, fmt.Errorf("%w: event_type must be login or logout", ErrAuditValidation)
	}

	event := &model.AuthEvent{
		DiscordTag: req.DiscordTag,
		EventType:  req.EventType,
		IPAddress:  req.IPAddress,
	}
	if req.Matricola != "" {
		event.Matricola = &req.Matricola
	}

	if err := s.repo.AuthEvent.Create(ctx, event); err != nil {
		s.logger.Error("recording auth event failed", zap.Error(err))
		return nil, err
	}
	return event, nil
}

func (s *auditService) List(ctx context.Context, page *dto.PaginationRequest) ([]model.AuthEvent, int64, error) {
	return s.repo.AuthEvent.List(ctx, page.Offset(), page.GetPageSize())
}
