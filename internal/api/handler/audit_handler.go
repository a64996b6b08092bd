package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/service"
	"centrale-operativa/backend/pkg/response"
)

// AuditHandler serves the internal audit intake endpoint.
type AuditHandler struct {
	auditSvc service.AuditService
}

// NewAuditHandler creates the AuditHandler.
func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// RecordEvent stores a login/logout event pushed by the auth collaborator.
// POST /api/v1/internal/audit/events
func (h *AuditHandler) RecordEvent(c *gin.Context) {
	var req dto.AuthEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	// The collaborator may omit the source address; fall back to the
	// connection's.
	if req.IPAddress == "" {
		req.IPAddress = c.ClientIP()
	}

	event, err := h.auditSvc.Record(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAuditValidation) {
			response.UnprocessableEntity(c, 14001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, event)
}
