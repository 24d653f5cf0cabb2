// Package domain contains the core types for the Aura mood-journaling server.
package domain

import "time"

// Profile is an anonymous or identity-linked user record.
// It is the unit of ownership for mood entries and custom tags.
// A profile is created on first anonymous contact or first external login;
// profiles are never merged, only linked to new identities.
type Profile struct {
	ID            string    `json:"id"`
	AnonymousName string    `json:"anonymousName"`
	AvatarID      string    `json:"avatarId"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`  // set after an avatar upload
	AvatarHash    string    `json:"avatarHash,omitempty"` // BlurHash placeholder for the uploaded avatar
	CreatedAt     time.Time `json:"createdAt"`
}

// PublicProfile is the subset of profile fields exposed on the public feed.
type PublicProfile struct {
	AnonymousName string `json:"anonymousName"`
	AvatarID      string `json:"avatarId"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
}

// Public returns the publicly visible fields of the profile.
func (p *Profile) Public() *PublicProfile {
	return &PublicProfile{
		AnonymousName: p.AnonymousName,
		AvatarID:      p.AvatarID,
		AvatarURL:     p.AvatarURL,
	}
}
