package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/service"
	"centrale-operativa/backend/pkg/response"
)

// PersonnelHandler serves the roster endpoints.
type PersonnelHandler struct {
	personnelSvc service.PersonnelService
}

// NewPersonnelHandler creates the PersonnelHandler.
func NewPersonnelHandler(personnelSvc service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{personnelSvc: personnelSvc}
}

// ListPersonnel lists the roster.
// GET /api/v1/personnel
func (h *PersonnelHandler) ListPersonnel(c *gin.Context) {
	var req dto.ListPersonnelRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	operators, err := h.personnelSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": operators})
}

// CreateOperator enrolls a new operator.
// POST /api/v1/personnel
func (h *PersonnelHandler) CreateOperator(c *gin.Context) {
	var req dto.UpsertOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	op, err := h.personnelSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePersonnelError(c, err)
		return
	}

	response.Created(c, op)
}

// UpdateOperator updates a roster entry.
// PUT /api/v1/personnel/:matricola
func (h *PersonnelHandler) UpdateOperator(c *gin.Context) {
	matricola := c.Param("matricola")
	if matricola == "" {
		response.BadRequest(c, 10001, "matricola must not be empty")
		return
	}

	var req dto.UpsertOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	op, err := h.personnelSvc.Update(c.Request.Context(), matricola, &req)
	if err != nil {
		h.handlePersonnelError(c, err)
		return
	}

	response.OK(c, op)
}

// DeleteOperator removes a roster entry.
// DELETE /api/v1/personnel/:matricola
func (h *PersonnelHandler) DeleteOperator(c *gin.Context) {
	matricola := c.Param("matricola")
	if matricola == "" {
		response.BadRequest(c, 10001, "matricola must not be empty")
		return
	}

	if err := h.personnelSvc.Delete(c.Request.Context(), matricola); err != nil {
		h.handlePersonnelError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *PersonnelHandler) handlePersonnelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOperatorNotFound):
		response.NotFound(c, 12001, "operator not found")
	case errors.Is(err, service.ErrMatricolaTaken):
		response.Conflict(c, 12002, "matricola already assigned")
	case errors.Is(err, service.ErrOperatorValidation):
		response.UnprocessableEntity(c, 12003, err.Error())
	default:
		response.InternalError(c)
	}
}
