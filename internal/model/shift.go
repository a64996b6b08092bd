package model

import "time"

// Module types. The four values form two families (patrol, heist), each with
// an activation and a deactivation side.
const (
	ModulePatrolActivation   = "patrol_activation"
	ModulePatrolDeactivation = "patrol_deactivation"
	ModuleHeistActivation    = "heist_activation"
	ModuleHeistDeactivation  = "heist_deactivation"
)

// Module families.
const (
	FamilyPatrol = "patrol"
	FamilyHeist  = "heist"
)

// ModuleTypes lists every valid module type.
var ModuleTypes = []string{
	ModulePatrolActivation,
	ModulePatrolDeactivation,
	ModuleHeistActivation,
	ModuleHeistDeactivation,
}

// Shift is one activation or deactivation record.
//
// The row is a union over module_type: which operator list and which clock
// field apply depends on the variant, resolved through the accessor methods
// below rather than by probing fields at call sites.
type Shift struct {
	ShiftID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	ModuleType        string     `gorm:"type:varchar(30);not null"                      json:"module_type"`
	ActivationTime    *string    `gorm:"type:varchar(5)"                                json:"activation_time,omitempty"`
	DeactivationTime  *string    `gorm:"type:varchar(5)"                                json:"deactivation_time,omitempty"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	ManagedBy         Person     `gorm:"type:jsonb" json:"managed_by"`
	Coordinator       Person     `gorm:"type:jsonb" json:"coordinator"`
	Negotiator        Person     `gorm:"type:jsonb" json:"negotiator"`
	InterventionType  *string    `gorm:"type:varchar(50)" json:"intervention_type,omitempty"`
	VehicleUsed       *string    `gorm:"type:varchar(50)" json:"vehicle_used,omitempty"`
	OperatorsOut      PersonList `gorm:"type:jsonb" json:"operators_out,omitempty"`
	OperatorsBack     PersonList `gorm:"type:jsonb" json:"operators_back,omitempty"`
	OperatorsInvolved PersonList `gorm:"type:jsonb" json:"operators_involved,omitempty"`
	CreatedBy         *string    `gorm:"type:varchar(20)" json:"created_by,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Shift) TableName() string { return "shifts" }

// IsValidModuleType reports whether t is one of the four module types.
func IsValidModuleType(t string) bool {
	for _, mt := range ModuleTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// Family returns "patrol" or "heist", or "" for an unknown module type.
func (s *Shift) Family() string {
	switch s.ModuleType {
	case ModulePatrolActivation, ModulePatrolDeactivation:
		return FamilyPatrol
	case ModuleHeistActivation, ModuleHeistDeactivation:
		return FamilyHeist
	default:
		return ""
	}
}

// IsActivation reports whether the record is activation-kind.
func (s *Shift) IsActivation() bool {
	return s.ModuleType == ModulePatrolActivation || s.ModuleType == ModuleHeistActivation
}

// IsDeactivation reports whether the record is deactivation-kind.
func (s *Shift) IsDeactivation() bool {
	return s.ModuleType == ModulePatrolDeactivation || s.ModuleType == ModuleHeistDeactivation
}

// PairingOperators returns the operator list relevant for pairing:
// operators_out for patrol activations, operators_involved for heist
// activations, operators_back for every deactivation.
func (s *Shift) PairingOperators() PersonList {
	switch s.ModuleType {
	case ModulePatrolActivation:
		return s.OperatorsOut
	case ModuleHeistActivation:
		return s.OperatorsInvolved
	case ModulePatrolDeactivation, ModuleHeistDeactivation:
		return s.OperatorsBack
	default:
		return nil
	}
}

// ClockTime returns the variant's wall-clock "HH:MM" field, or nil.
func (s *Shift) ClockTime() *string {
	if s.IsActivation() {
		return s.ActivationTime
	}
	if s.IsDeactivation() {
		return s.DeactivationTime
	}
	return nil
}
