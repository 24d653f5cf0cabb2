package domain

import "time"

// Identity binds an external authentication provider's user id to a profile.
// The (provider, providerId) pair maps to at most one profile; lookups are
// keyed by this composite. Identities are created at first successful
// external login and never deleted in normal flow.
type Identity struct {
	ID         string    `json:"id"`
	Provider   string    `json:"provider"`
	ProviderID string    `json:"providerId"`
	ProfileID  string    `json:"profileId"`
	CreatedAt  time.Time `json:"createdAt"`
}
