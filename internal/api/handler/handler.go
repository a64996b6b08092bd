package handler

import "centrale-operativa/backend/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Shift        *ShiftHandler
	Personnel    *PersonnelHandler
	Announcement *AnnouncementHandler
	Audit        *AuditHandler
	Command      *CommandHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Shift:        NewShiftHandler(svc.Shift),
		Personnel:    NewPersonnelHandler(svc.Personnel),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Audit:        NewAuditHandler(svc.Audit),
		Command:      NewCommandHandler(svc.Stats, svc.Export, svc.Calendar, svc.Audit),
	}
}
