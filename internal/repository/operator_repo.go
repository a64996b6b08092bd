package repository

import (
	"context"

	"gorm.io/gorm"

	"centrale-operativa/backend/internal/model"
)

// OperatorRepository is the personnel roster data-access interface.
type OperatorRepository interface {
	Create(ctx context.Context, op *model.Operator) error
	GetByMatricola(ctx context.Context, matricola string) (*model.Operator, error)
	List(ctx context.Context, search, qualification string, activeOnly bool) ([]model.Operator, error)
	ListAll(ctx context.Context) ([]model.Operator, error)
	Update(ctx context.Context, op *model.Operator) error
	Delete(ctx context.Context, matricola string) error
}

type operatorRepo struct {
	db *gorm.DB
}

// NewOperatorRepo creates the GORM-backed OperatorRepository.
func NewOperatorRepo(db *gorm.DB) OperatorRepository {
	return &operatorRepo{db: db}
}

func (r *operatorRepo) Create(ctx context.Context, op *model.Operator) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *operatorRepo) GetByMatricola(ctx context.Context, matricola string) (*model.Operator, error) {
	var op model.Operator
	err := r.db.WithContext(ctx).
		Where("matricola = ?", matricola).
		First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *operatorRepo) List(ctx context.Context, search, qualification string, activeOnly bool) ([]model.Operator, error) {
	db := r.db.WithContext(ctx).Model(&model.Operator{})

	if search != "" {
		like := "%" + search + "%"
		db = db.Where("name ILIKE ? OR matricola ILIKE ?", like, like)
	}
	if qualification != "" {
		db = db.Where("qualification = ?", qualification)
	}
	if activeOnly {
		db = db.Where("is_active = TRUE")
	}

	var ops []model.Operator
	if err := db.Order("matricola ASC").Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *operatorRepo) ListAll(ctx context.Context) ([]model.Operator, error) {
	var ops []model.Operator
	if err := r.db.WithContext(ctx).Order("matricola ASC").Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *operatorRepo) Update(ctx context.Context, op *model.Operator) error {
	return r.db.WithContext(ctx).Save(op).Error
}

func (r *operatorRepo) Delete(ctx context.Context, matricola string) error {
	res := r.db.WithContext(ctx).
		Where("matricola = ?", matricola).
		Delete(&model.Operator{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
