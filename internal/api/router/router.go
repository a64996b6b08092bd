package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"centrale-operativa/backend/config"
	"centrale-operativa/backend/internal/api/handler"
	"centrale-operativa/backend/internal/api/middleware"
	"centrale-operativa/backend/pkg/jwt"
	"centrale-operativa/backend/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(middleware.RateLimit(rdb, cfg.Server.RateLimit, cfg.Server.RateWindow))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Internal intake, authenticated by service key instead of JWT.
		internal := v1.Group("/internal")
		internal.Use(middleware.ServiceKeyAuth(cfg.Auth.ServiceKeyHash))
		{
			internal.POST("/audit/events", h.Audit.RecordEvent)
		}

		// Operator routes, authenticated via the externally issued token.
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			// Shift records
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.ListShifts)
				shifts.POST("", h.Shift.CreateShift)
				shifts.DELETE("/:id", middleware.RoleAuth("admin"), h.Shift.DeleteShift)
			}

			// Roster
			personnel := authorized.Group("/personnel")
			{
				personnel.GET("", h.Personnel.ListPersonnel)
				personnel.POST("", middleware.RoleAuth("admin"), h.Personnel.CreateOperator)
				personnel.PUT("/:matricola", middleware.RoleAuth("admin"), h.Personnel.UpdateOperator)
				personnel.DELETE("/:matricola", middleware.RoleAuth("admin"), h.Personnel.DeleteOperator)
			}

			// Communications
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.ListAnnouncements)
				announcements.POST("", middleware.RoleAuth("admin"), h.Announcement.CreateAnnouncement)
				announcements.DELETE("/:id", middleware.RoleAuth("admin"), h.Announcement.DeleteAnnouncement)
				announcements.POST("/:id/ack", h.Announcement.Acknowledge)
				announcements.POST("/:id/vote", h.Announcement.Vote)
				announcements.GET("/:id/votes", middleware.RoleAuth("admin"), h.Announcement.ListVotes)
			}

			// Command view
			command := authorized.Group("/command")
			command.Use(middleware.RoleAuth("admin"))
			{
				command.GET("/stats", h.Command.GetStats)
				command.GET("/stats/export", h.Command.ExportStats)
				command.GET("/calendar.ics", h.Command.GetCalendar)
				command.GET("/audit-logs", h.Command.ListAuditLogs)
			}
		}
	}

	return r
}
