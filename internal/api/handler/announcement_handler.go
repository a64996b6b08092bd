package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/service"
	"centrale-operativa/backend/pkg/response"
)

// AnnouncementHandler serves the communications endpoints.
type AnnouncementHandler struct {
	annSvc service.AnnouncementService
}

// NewAnnouncementHandler creates the AnnouncementHandler.
func NewAnnouncementHandler(annSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{annSvc: annSvc}
}

// CreateAnnouncement publishes a new announcement.
// POST /api/v1/announcements
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	operatorID, ok := MustGetOperatorID(c)
	if !ok {
		return
	}
	name, ok := MustGetOperatorName(c)
	if !ok {
		return
	}
	if name == "" {
		name = operatorID
	}

	a, err := h.annSvc.Create(c.Request.Context(), &req, name, operatorID)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.Created(c, a)
}

// ListAnnouncements lists announcements with the caller's read state.
// GET /api/v1/announcements
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	operatorID, ok := MustGetOperatorID(c)
	if !ok {
		return
	}

	views, total, err := h.annSvc.List(c.Request.Context(), &req, operatorID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, views, total, req.GetPage(), req.GetPageSize())
}

// DeleteAnnouncement removes an announcement.
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id must not be empty")
		return
	}

	if err := h.annSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, nil)
}

// Acknowledge records that the caller has read an announcement.
// POST /api/v1/announcements/:id/ack
func (h *AnnouncementHandler) Acknowledge(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id must not be empty")
		return
	}

	operatorID, ok := MustGetOperatorID(c)
	if !ok {
		return
	}

	if err := h.annSvc.Acknowledge(c.Request.Context(), id, operatorID); err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, nil)
}

// Vote records the caller's training-attendance vote.
// POST /api/v1/announcements/:id/vote
func (h *AnnouncementHandler) Vote(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id must not be empty")
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	operatorID, ok := MustGetOperatorID(c)
	if !ok {
		return
	}

	if err := h.annSvc.Vote(c.Request.Context(), id, operatorID, req.Vote); err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListVotes returns the attendance tally of one announcement.
// GET /api/v1/announcements/:id/votes
func (h *AnnouncementHandler) ListVotes(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id must not be empty")
		return
	}

	summary, err := h.annSvc.Votes(c.Request.Context(), id)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, summary)
}

func (h *AnnouncementHandler) handleAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAnnouncementNotFound):
		response.NotFound(c, 13001, "announcement not found")
	case errors.Is(err, service.ErrAnnouncementValidation):
		response.UnprocessableEntity(c, 13002, err.Error())
	case errors.Is(err, service.ErrVoteNotAllowed):
		response.BadRequest(c, 13003, "attendance voting is only open on training announcements")
	default:
		response.InternalError(c)
	}
}
