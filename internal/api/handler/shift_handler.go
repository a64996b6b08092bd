package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/service"
	"centrale-operativa/backend/pkg/response"
)

// ShiftHandler serves the activation/deactivation record endpoints.
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler creates the ShiftHandler.
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// CreateShift registers a new activation or deactivation record.
// POST /api/v1/shifts
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	operatorID, ok := MustGetOperatorID(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.Create(c.Request.Context(), &req, operatorID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, shift)
}

// ListShifts lists records, newest first, optionally filtered by module type.
// GET /api/v1/shifts
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	var req dto.ListShiftsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	shifts, total, err := h.shiftSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OKPage(c, shifts, total, req.GetPage(), req.GetPageSize())
}

// DeleteShift removes a record from the ledger.
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "shift id must not be empty")
		return
	}

	if err := h.shiftSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 11001, "shift record not found")
	case errors.Is(err, service.ErrShiftValidation):
		response.UnprocessableEntity(c, 11002, err.Error())
	default:
		response.InternalError(c)
	}
}
