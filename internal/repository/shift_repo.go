package repository

import (
	"context"

	"gorm.io/gorm"

	"centrale-operativa/backend/internal/model"
)

// ShiftRepository is the shift record data-access interface.
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	List(ctx context.Context, moduleType string, offset, limit int) ([]model.Shift, int64, error)
	// ListByModuleTypes returns every record of the given module types,
	// ordered by created_at ascending. Feed of the activation aggregator.
	ListByModuleTypes(ctx context.Context, moduleTypes []string) ([]model.Shift, error)
	Delete(ctx context.Context, id string) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo creates the GORM-backed ShiftRepository.
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) List(ctx context.Context, moduleType string, offset, limit int) ([]model.Shift, int64, error) {
	var shifts []model.Shift
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Shift{})
	if moduleType != "" {
		db = db.Where("module_type = ?", moduleType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&shifts).Error; err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

func (r *shiftRepo) ListByModuleTypes(ctx context.Context, moduleTypes []string) ([]model.Shift, error) {
	// Always non-nil: an empty table is a valid, empty ledger, not a
	// structural error for the aggregator.
	shifts := make([]model.Shift, 0)
	err := r.db.WithContext(ctx).
		Where("module_type IN ?", moduleTypes).
		Order("created_at ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("shift_id = ?", id).
		Delete(&model.Shift{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
