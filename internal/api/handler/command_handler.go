package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/service"
	"centrale-operativa/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CommandHandler serves the command view: activation statistics, exports,
// the calendar feed and the audit trail.
type CommandHandler struct {
	statsSvc    service.StatsService
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
	auditSvc    service.AuditService
}

// NewCommandHandler creates the CommandHandler.
func NewCommandHandler(statsSvc service.StatsService, exportSvc service.ExportService, calendarSvc service.CalendarService, auditSvc service.AuditService) *CommandHandler {
	return &CommandHandler{
		statsSvc:    statsSvc,
		exportSvc:   exportSvc,
		calendarSvc: calendarSvc,
		auditSvc:    auditSvc,
	}
}

// GetStats returns the ranked activation-hours report.
// GET /api/v1/command/stats?refresh=true
func (h *CommandHandler) GetStats(c *gin.Context) {
	refresh := c.Query("refresh") == "true"

	report, err := h.statsSvc.ActivationStats(c.Request.Context(), refresh)
	if err != nil {
		h.handleCommandError(c, err)
		return
	}

	response.OK(c, report)
}

// ExportStats downloads the activation statistics as a spreadsheet.
// GET /api/v1/command/stats/export
func (h *CommandHandler) ExportStats(c *gin.Context) {
	data, filename, err := h.exportSvc.StatsWorkbook(c.Request.Context())
	if err != nil {
		h.handleCommandError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GetCalendar serves the matched activations as an iCalendar feed.
// GET /api/v1/command/calendar.ics
func (h *CommandHandler) GetCalendar(c *gin.Context) {
	feed, err := h.calendarSvc.ActivationCalendar(c.Request.Context())
	if err != nil {
		h.handleCommandError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="attivazioni.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// ListAuditLogs pages through the login/logout trail.
// GET /api/v1/command/audit-logs
func (h *CommandHandler) ListAuditLogs(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	events, total, err := h.auditSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, events, total, req.GetPage(), req.GetPageSize())
}

func (h *CommandHandler) handleCommandError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidShiftFeed) {
		response.UnprocessableEntity(c, 15001, "shift ledger contains unusable records")
		return
	}
	response.InternalError(c)
}
