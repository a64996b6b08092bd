package repository

import (
	"context"

	"gorm.io/gorm"

	"centrale-operativa/backend/internal/model"
)

// AuthEventRepository is the auth audit log data-access interface.
type AuthEventRepository interface {
	Create(ctx context.Context, event *model.AuthEvent) error
	List(ctx context.Context, offset, limit int) ([]model.AuthEvent, int64, error)
}

type authEventRepo struct {
	db *gorm.DB
}

// NewAuthEventRepo creates the GORM-backed AuthEventRepository.
func NewAuthEventRepo(db *gorm.DB) AuthEventRepository {
	return &authEventRepo{db: db}
}

func (r *authEventRepo) Create(ctx context.Context, event *model.AuthEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *authEventRepo) List(ctx context.Context, offset, limit int) ([]model.AuthEvent, int64, error) {
	var events []model.AuthEvent
	var total int64

	db := r.db.WithContext(ctx).Model(&model.AuthEvent{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
