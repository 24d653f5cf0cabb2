package domain

import "time"

// Summary is a cached AI-generated digest of a profile's recent entries.
// Rows are keyed by (profileId, periodKey) and created lazily on the first
// request per window-day. They are never invalidated early; stale rows are
// simply never looked up again once the day rolls over.
type Summary struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profileId"`
	PeriodKey string    `json:"periodKey"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
