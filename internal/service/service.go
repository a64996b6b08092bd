package service

import (
	"go.uber.org/zap"

	"centrale-operativa/backend/config"
	"centrale-operativa/backend/internal/repository"
	"centrale-operativa/backend/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Shift        ShiftService
	Personnel    PersonnelService
	Announcement AnnouncementService
	Audit        AuditService
	Stats        StatsService
	Export       ExportService
	Calendar     CalendarService
}

// NewService wires the business layer. rdb may be nil when Redis is down or
// unconfigured; the services that use it degrade gracefully.
func NewService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) *Service {
	notifier := NewShiftNotifier(&cfg.Discord, logger)
	stats := NewStatsService(cfg, repo, rdb, logger)

	return &Service{
		Shift:        NewShiftService(repo, notifier, logger),
		Personnel:    NewPersonnelService(repo, logger),
		Announcement: NewAnnouncementService(repo, logger),
		Audit:        NewAuditService(repo, logger),
		Stats:        stats,
		Export:       NewExportService(stats, logger),
		Calendar:     NewCalendarService(repo, logger),
	}
}
