package domain

import "time"

// TagType classifies a tag as an emotion or an activity label.
type TagType string

const (
	// TagTypeEmotion labels how the user felt.
	TagTypeEmotion TagType = "EMOTION"
	// TagTypeActivity labels what the user was doing.
	TagTypeActivity TagType = "ACTIVITY"
)

// Valid reports whether the tag type is one of the known values.
func (t TagType) Valid() bool {
	return t == TagTypeEmotion || t == TagTypeActivity
}

// Tag is a label attachable to mood entries.
// System tags have no owning profile and are visible to everyone.
// Custom tags are owned by exactly one profile and visible only to it.
// Tags are append-only once created.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji,omitempty"`
	Type      TagType   `json:"type"`
	ProfileID string    `json:"profileId,omitempty"` // empty for system tags
	CreatedAt time.Time `json:"createdAt"`
}

// IsSystem reports whether the tag is a system tag (no owning profile).
func (t *Tag) IsSystem() bool {
	return t.ProfileID == ""
}
