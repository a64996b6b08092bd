package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"centrale-operativa/backend/internal/model"
)

// AnnouncementRepository is the announcements data-access interface.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	List(ctx context.Context, offset, limit int) ([]model.Announcement, int64, error)
	Delete(ctx context.Context, id string) error

	Ack(ctx context.Context, ack *model.AnnouncementAck) error
	CountAcks(ctx context.Context, announcementID string) (int64, error)
	HasAcked(ctx context.Context, announcementID, matricola string) (bool, error)

	UpsertVote(ctx context.Context, vote *model.AttendanceVote) error
	ListVotes(ctx context.Context, announcementID string) ([]model.AttendanceVote, error)
}

type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo creates the GORM-backed AnnouncementRepository.
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	err := r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepo) List(ctx context.Context, offset, limit int) ([]model.Announcement, int64, error) {
	var list []model.Announcement
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Announcement{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		Delete(&model.Announcement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Ack inserts a read acknowledgement; repeats are no-ops.
func (r *announcementRepo) Ack(ctx context.Context, ack *model.AnnouncementAck) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ack).Error
}

func (r *announcementRepo) CountAcks(ctx context.Context, announcementID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AnnouncementAck{}).
		Where("announcement_id = ?", announcementID).
		Count(&count).Error
	return count, err
}

func (r *announcementRepo) HasAcked(ctx context.Context, announcementID, matricola string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AnnouncementAck{}).
		Where("announcement_id = ? AND matricola = ?", announcementID, matricola).
		Count(&count).Error
	return count > 0, err
}

// UpsertVote stores the vote, overwriting a previous choice by the same operator.
func (r *announcementRepo) UpsertVote(ctx context.Context, vote *model.AttendanceVote) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "announcement_id"}, {Name: "matricola"}},
			DoUpdates: clause.AssignmentColumns([]string{"vote", "voted_at"}),
		}).
		Create(vote).Error
}

func (r *announcementRepo) ListVotes(ctx context.Context, announcementID string) ([]model.AttendanceVote, error) {
	var votes []model.AttendanceVote
	err := r.db.WithContext(ctx).
		Where("announcement_id = ?", announcementID).
		Order("voted_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}
