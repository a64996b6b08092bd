package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OperatorRef is the embedded operator reference stored inside shift records.
// ID is the roster matricola and the canonical matching key; Name and Role
// are display snapshots taken at submission time.
type OperatorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PersonList maps a JSONB array of operator references, implementing the
// GORM Scanner/Valuer pair.
type PersonList []OperatorRef

// Scan decodes a JSONB array into the list.
func (l *PersonList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("PersonList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, l)
}

// Value encodes the list as a JSONB array; nil stays NULL.
func (l PersonList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// IDs returns the matricola of every entry, in input order.
func (l PersonList) IDs() []string {
	ids := make([]string, len(l))
	for i, op := range l {
		ids[i] = op.ID
	}
	return ids
}

// Person maps a single nullable JSONB operator reference.
type Person struct {
	OperatorRef
	Valid bool
}

// NewPerson wraps an OperatorRef into a valid Person.
func NewPerson(ref OperatorRef) Person {
	return Person{OperatorRef: ref, Valid: true}
}

// Scan decodes a JSONB object; NULL yields an invalid Person.
func (p *Person) Scan(src interface{}) error {
	if src == nil {
		*p = Person{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Person.Scan: unsupported type %T", src)
	}
	if err := json.Unmarshal(data, &p.OperatorRef); err != nil {
		return err
	}
	p.Valid = true
	return nil
}

// Value encodes the reference as JSONB; an invalid Person stays NULL.
func (p Person) Value() (driver.Value, error) {
	if !p.Valid {
		return nil, nil
	}
	return json.Marshal(p.OperatorRef)
}

// MarshalJSON renders an invalid Person as JSON null.
func (p Person) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.OperatorRef)
}

// UnmarshalJSON accepts either null or an operator reference object.
func (p *Person) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Person{}
		return nil
	}
	if err := json.Unmarshal(data, &p.OperatorRef); err != nil {
		return err
	}
	p.Valid = true
	return nil
}

// Operator is a personnel roster row.
// The roster doubles as the directory that resolves qualification and avatar
// for the activation statistics.
type Operator struct {
	Matricola     string `gorm:"type:varchar(20);primaryKey"    json:"matricola"`
	Name          string `gorm:"type:varchar(100);not null"     json:"name"`
	Qualification string `gorm:"type:varchar(100);not null"     json:"qualification"`
	AvatarURL     string `gorm:"type:text;not null;default:''"  json:"avatar_url"`
	DiscordTag    string `gorm:"type:varchar(100);not null;default:''" json:"discord_tag"`
	IsActive      bool   `gorm:"not null;default:true"          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (Operator) TableName() string { return "operators" }
