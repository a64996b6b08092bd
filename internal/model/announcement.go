package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Announcement categories.
const (
	CategoryInfo       = "info"
	CategoryUpdate     = "update"
	CategoryRegulation = "regulation"
	CategoryTraining   = "training"
	CategoryPromotion  = "promotion"
	CategorySanction   = "sanction"
	CategoryUrgent     = "urgent"
)

// AnnouncementCategories lists every valid category.
var AnnouncementCategories = []string{
	CategoryInfo,
	CategoryUpdate,
	CategoryRegulation,
	CategoryTraining,
	CategoryPromotion,
	CategorySanction,
	CategoryUrgent,
}

// IsValidCategory reports whether c is a known announcement category.
func IsValidCategory(c string) bool {
	for _, cat := range AnnouncementCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// StringList maps a JSONB array of strings.
type StringList []string

// Scan decodes a JSONB array.
func (l *StringList) Scan(src interface{}) error {
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
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, l)
}

// Value encodes the list as JSONB; nil becomes an empty array.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Announcement is one dashboard communication.
type Announcement struct {
	AnnouncementID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string     `gorm:"type:varchar(200);not null" json:"title"`
	Content        string     `gorm:"type:text;not null"         json:"content"`
	Author         string     `gorm:"type:varchar(100);not null" json:"author"`
	Category       string     `gorm:"type:varchar(20);not null"  json:"category"`
	Tags           StringList `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	CreatedBy      *string    `gorm:"type:varchar(20)" json:"created_by,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Announcement) TableName() string { return "announcements" }

// AnnouncementAck records that an operator confirmed reading an announcement.
type AnnouncementAck struct {
	AnnouncementID string    `gorm:"type:uuid;primaryKey"       json:"announcement_id"`
	Matricola      string    `gorm:"type:varchar(20);primaryKey" json:"matricola"`
	AckedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"acked_at"`
}

// TableName sets the table name.
func (AnnouncementAck) TableName() string { return "announcement_acks" }

// Attendance vote values.
const (
	VotePresent = "present"
	VoteAbsent  = "absent"
)

// AttendanceVote records a training-attendance vote on an announcement.
type AttendanceVote struct {
	AnnouncementID string    `gorm:"type:uuid;primaryKey"        json:"announcement_id"`
	Matricola      string    `gorm:"type:varchar(20);primaryKey" json:"matricola"`
	Vote           string    `gorm:"type:varchar(10);not null"   json:"vote"`
	VotedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"voted_at"`
}

// TableName sets the table name.
func (AttendanceVote) TableName() string { return "attendance_votes" }
