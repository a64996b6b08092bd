package dto

import (
	"time"

	"centrale-operativa/backend/internal/model"
)

// CreateShiftRequest is the payload of POST /shifts.
// Which fields are required depends on module_type; the shift service
// validates per variant.
type CreateShiftRequest struct {
	ModuleType        string              `json:"module_type" binding:"required"`
	ActivationTime    string              `json:"activation_time"`
	DeactivationTime  string              `json:"deactivation_time"`
	StartTime         *time.Time          `json:"start_time"`
	EndTime           *time.Time          `json:"end_time"`
	ManagedBy         *model.OperatorRef  `json:"managed_by"`
	Coordinator       *model.OperatorRef  `json:"coordinator"`
	Negotiator        *model.OperatorRef  `json:"negotiator"`
	InterventionType  string              `json:"intervention_type"`
	VehicleUsed       string              `json:"vehicle_used"`
	OperatorsOut      []model.OperatorRef `json:"operators_out"`
	OperatorsBack     []model.OperatorRef `json:"operators_back"`
	OperatorsInvolved []model.OperatorRef `json:"operators_involved"`
}

// ListShiftsRequest carries the shift list filters.
type ListShiftsRequest struct {
	PaginationRequest
	ModuleType string `form:"module_type"`
}
