package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	Shift        ShiftRepository
	Operator     OperatorRepository
	Announcement AnnouncementRepository
	AuthEvent    AuthEventRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Shift:        NewShiftRepo(db),
		Operator:     NewOperatorRepo(db),
		Announcement: NewAnnouncementRepo(db),
		AuthEvent:    NewAuthEventRepo(db),
	}
}
