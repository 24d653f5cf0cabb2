package domain

import "time"

// MoodEntry is one journal record: an optional free-text note, the owning
// profile, a server-assigned creation time, and zero or more tags.
// Entries are deleted directly; there is no soft-delete.
type MoodEntry struct {
	ID        string         `json:"id"`
	Note      string         `json:"note,omitempty"`
	ProfileID string         `json:"profileId"`
	CreatedAt time.Time      `json:"createdAt"`
	Tags      []*Tag         `json:"tags"`
	Profile   *PublicProfile `json:"profile,omitempty"` // populated on the public feed only
}
