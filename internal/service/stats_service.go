package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"centrale-operativa/backend/config"
	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/model"
	"centrale-operativa/backend/internal/repository"
	"centrale-operativa/backend/pkg/redis"
)

// ErrInvalidShiftFeed is returned when the record source hands back a
// structurally unusable feed. Business anomalies (bad clocks, unmatched
// records) never surface as errors.
var ErrInvalidShiftFeed = errors.New("invalid shift record feed")

const statsCacheKey = "stats:activations"

// StatsService computes the ranked activation-hours table for the command view.
type StatsService interface {
	// ActivationStats runs the activation ledger over a fresh snapshot of
	// shift records. With refresh=false a recent cached report may be
	// served instead.
	ActivationStats(ctx context.Context, refresh bool) (*dto.StatsReport, error)
}

type statsService struct {
	repo      *repository.Repository
	rdb       *redis.Client
	rankOrder []string
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewStatsService creates the StatsService. rdb may be nil; the snapshot
// cache is then skipped.
func NewStatsService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) StatsService {
	return &statsService{
		repo:      repo,
		rdb:       rdb,
		rankOrder: cfg.Stats.RankOrder,
		cacheTTL:  cfg.Stats.CacheTTL,
		logger:    logger,
	}
}

func (s *statsService) ActivationStats(ctx context.Context, refresh bool) (*dto.StatsReport, error) {
	if !refresh && s.rdb != nil {
		if payload, ok := s.rdb.GetCached(ctx, statsCacheKey); ok {
			var report dto.StatsReport
			if err := json.Unmarshal([]byte(payload), &report); err == nil {
				return &report, nil
			}
			// A stale or corrupt entry falls through to recompute.
			s.rdb.Invalidate(ctx, statsCacheKey)
		}
	}

	shifts, err := s.repo.Shift.ListByModuleTypes(ctx, model.ModuleTypes)
	if err != nil {
		s.logger.Error("loading shift records failed", zap.Error(err))
		return nil, err
	}

	directory, err := s.repo.Operator.ListAll(ctx)
	if err != nil {
		s.logger.Error("loading personnel directory failed", zap.Error(err))
		return nil, err
	}

	result, err := PairShifts(shifts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShiftFeed, err)
	}

	stats, malformed := AggregateStats(result, directory, s.rankOrder)
	if malformed > 0 {
		s.logger.Debug("pairs with unusable clock values counted at zero duration",
			zap.Int("count", malformed))
	}

	report := &dto.StatsReport{
		Stats:                  stats,
		MatchedPairs:           len(result.Pairs),
		UnmatchedActivations:   len(result.UnmatchedActivations),
		UnmatchedDeactivations: len(result.UnmatchedDeactivations),
		MalformedTimes:         malformed,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(report); err == nil {
			s.rdb.SetCached(ctx, statsCacheKey, string(payload), s.cacheTTL)
		}
	}

	return report, nil
}
