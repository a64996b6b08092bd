package model

import "time"

// Auth event types.
const (
	EventLogin  = "login"
	EventLogout = "logout"
)

// AuthEvent is one login/logout audit row pushed by the auth collaborator.
type AuthEvent struct {
	EventID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Matricola  *string   `gorm:"type:varchar(20)"                 json:"matricola,omitempty"`
	DiscordTag string    `gorm:"type:varchar(100);not null;default:''" json:"discord_tag"`
	EventType  string    `gorm:"type:varchar(10);not null"        json:"event_type"`
	IPAddress  string    `gorm:"type:varchar(45);not null;default:''" json:"ip_address"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the table name.
func (AuthEvent) TableName() string { return "auth_events" }
