package dto

import "centrale-operativa/backend/internal/model"

// CreateAnnouncementRequest is the payload of POST /announcements.
type CreateAnnouncementRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
}

// VoteRequest is the payload of POST /announcements/:id/vote.
type VoteRequest struct {
	Vote string `json:"vote" binding:"required"` // present | absent
}

// AnnouncementView decorates an announcement with read state for the caller.
type AnnouncementView struct {
	model.Announcement
	AckCount     int64 `json:"ack_count"`
	Acknowledged bool  `json:"acknowledged"`
}

// VoteSummary aggregates the attendance votes on one announcement.
type VoteSummary struct {
	AnnouncementID string                 `json:"announcement_id"`
	Present        int                    `json:"present"`
	Absent         int                    `json:"absent"`
	Votes          []model.AttendanceVote `json:"votes"`
}
