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

// ── announcements module business errors ──

var (
	ErrAnnouncementNotFound   = errors.New("announcement not found")
	ErrAnnouncementValidation = errors.New("announcement validation failed")
	ErrVoteNotAllowed         = errors.New("attendance voting is only open on training announcements")
)

const (
	maxAnnouncementTags   = 5
	maxAnnouncementTagLen = 30
)

// AnnouncementService manages communications, read acknowledgements and
// training-attendance votes.
type AnnouncementService interface {
	Create(ctx context.Context, req *dto.CreateAnnouncementRequest, author, createdBy string) (*model.Announcement, error)
	List(ctx context.Context, page *dto.PaginationRequest, viewer string) ([]dto.AnnouncementView, int64, error)
	Delete(ctx context.Context, id string) error
	Acknowledge(ctx context.Context, id, matricola string) error
	Vote(ctx context.Context, id, matricola, vote string) error
	Votes(ctx context.Context, id string) (*dto.VoteSummary, error)
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService creates the AnnouncementService.
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

func (s *announcementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest, author, createdBy string) (*model.Announcement, error) {
	if !model.IsValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrAnnouncementValidation, req.Category)
	}
	if len(req.Tags) > maxAnnouncementTags {
		return nil, fmt.Errorf("%w: at most %d tags", ErrAnnouncementValidation, maxAnnouncementTags)
	}
	for _, tag := range req.Tags {
		if tag == "" || len(tag) > maxAnnouncementTagLen {
			return nil, fmt.Errorf("%w: tags must be 1-%d characters", ErrAnnouncementValidation, maxAnnouncementTagLen)
		}
	}

	a := &model.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Author:   author,
		Category: req.Category,
		Tags:     req.Tags,
	}
	if createdBy != "" {
		a.CreatedBy = &createdBy
	}

	if err := s.repo.Announcement.Create(ctx, a); err != nil {
		s.logger.Error("creating announcement failed", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *announcementService) List(ctx context.Context, page *dto.PaginationRequest, viewer string) ([]dto.AnnouncementView, int64, error) {
	list, total, err := s.repo.Announcement.List(ctx, page.Offset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	views := make([]dto.AnnouncementView, 0, len(list))
	for _, a := range list {
		view := dto.AnnouncementView{Announcement: a}

		if view.AckCount, err = s.repo.Announcement.CountAcks(ctx, a.AnnouncementID); err != nil {
			return nil, 0, err
		}
		if viewer != "" {
			if view.Acknowledged, err = s.repo.Announcement.HasAcked(ctx, a.AnnouncementID, viewer); err != nil {
				return nil, 0, err
			}
		}
		views = append(views, view)
	}

	return views, total, nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return nil
}

// Acknowledge records a read confirmation. Repeat confirmations are no-ops.
func (s *announcementService) Acknowledge(ctx context.Context, id, matricola string) error {
	if _, err := s.getAnnouncement(ctx, id); err != nil {
		return err
	}
	return s.repo.Announcement.Ack(ctx, &model.AnnouncementAck{
		AnnouncementID: id,
		Matricola:      matricola,
	})
}

// Vote records or replaces a training-attendance vote.
func (s *announcementService) Vote(ctx context.Context, id, matricola, vote string) error {
	if vote != model.VotePresent && vote != model.VoteAbsent {
		return fmt.Errorf("%w: vote must be present or absent", ErrAnnouncementValidation)
	}

	a, err := s.getAnnouncement(ctx, id)
	if err != nil {
		return err
	}
	if a.Category != model.CategoryTraining {
		return ErrVoteNotAllowed
	}

	return s.repo.Announcement.UpsertVote(ctx, &model.AttendanceVote{
		AnnouncementID: id,
		Matricola:      matricola,
		Vote:           vote,
	})
}

func (s *announcementService) Votes(ctx context.Context, id string) (*dto.VoteSummary, error) {
	if _, err := s.getAnnouncement(ctx, id); err != nil {
		return nil, err
	}

	votes, err := s.repo.Announcement.ListVotes(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &dto.VoteSummary{AnnouncementID: id, Votes: votes}
	for _, v := range votes {
		switch v.Vote {
		case model.VotePresent:
			summary.Present++
		case model.VoteAbsent:
			summary.Absent++
		}
	}
	return summary, nil
}

func (s *announcementService) getAnnouncement(ctx context.Context, id string) (*model.Announcement, error) {
	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return a, nil
}
