package dto

// UpsertOperatorRequest is the payload of POST /personnel and PUT /personnel/:matricola.
type UpsertOperatorRequest struct {
	Matricola     string `json:"matricola"`
	Name          string `json:"name" binding:"required"`
	Qualification string `json:"qualification" binding:"required"`
	AvatarURL     string `json:"avatar_url"`
	DiscordTag    string `json:"discord_tag"`
	IsActive      *bool  `json:"is_active"`
}

// ListPersonnelRequest carries roster filters.
type ListPersonnelRequest struct {
	Search        string `form:"search"`
	Qualification string `form:"qualification"`
	ActiveOnly    bool   `form:"active_only"`
}
