package dto

// AuthEventRequest is the payload the auth collaborator pushes to
// POST /internal/audit/events.
type AuthEventRequest struct {
	Matricola  string `json:"matricola"`
	DiscordTag string `json:"discord_tag"`
	EventType  string `json:"event_type" binding:"required"` // login | logout
	IPAddress  string `json:"ip_address"`
}
