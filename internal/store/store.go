// Package store defines the persistence interface for the Aura server.
package store

import (
	"context"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
)

// OwnerScope selects whose entries an insight query aggregates over.
type OwnerScope string

const (
	// ScopeSelf restricts aggregation to a single profile's entries.
	ScopeSelf OwnerScope = "self"
	// ScopeAll aggregates across every entry in the system.
	ScopeAll OwnerScope = "all"
)

// InsightFilter is the typed filter for tag-count aggregation queries.
// ProfileID is required when Scope is ScopeSelf and ignored otherwise.
type InsightFilter struct {
	Scope     OwnerScope
	ProfileID string
	TagType   domain.TagType
}

// EntryPage is one page of a profile's entries plus pagination metadata.
type EntryPage struct {
	Items    []*domain.MoodEntry
	Total    int
	Page     int
	Limit    int
	LastPage int
}

// Store defines the interface for all persistence operations.
type Store interface {
	Close() error

	// Profiles
	CreateProfile(ctx context.Context, p *domain.Profile) error
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, p *domain.Profile) error

	// Identities
	GetIdentity(ctx context.Context, provider, providerID string) (*domain.Identity, error)
	CreateIdentity(ctx context.Context, ident *domain.Identity) error
	// CreateProfileWithIdentity persists a new profile and its identity in a
	// single transaction; the identity must never exist without its profile.
	CreateProfileWithIdentity(ctx context.Context, p *domain.Profile, ident *domain.Identity) error

	// Tags
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error)
	ListSystemTags(ctx context.Context) ([]*domain.Tag, error)
	ListProfileTags(ctx context.Context, profileID string) ([]*domain.Tag, error)
	// SeedSystemTags inserts system tags that are not already present,
	// matching on (name, type). Safe to call on every startup.
	SeedSystemTags(ctx context.Context, tags []*domain.Tag) error

	// Mood entries
	// CreateEntry persists the entry and attaches the subset of tagIDs that
	// resolve to existing tags; unknown ids are dropped, not rejected.
	CreateEntry(ctx context.Context, e *domain.MoodEntry, tagIDs []string) error
	GetEntry(ctx context.Context, id string) (*domain.MoodEntry, error)
	ListFeed(ctx context.Context) ([]*domain.MoodEntry, error)
	ListProfileEntries(ctx context.Context, profileID string, page, limit int) (*EntryPage, error)
	// ListEntriesSince returns a profile's entries created at or after since,
	// oldest first, with tags attached.
	ListEntriesSince(ctx context.Context, profileID string, since time.Time) ([]*domain.MoodEntry, error)
	DeleteEntry(ctx context.Context, id string) error

	// Insights
	CountTags(ctx context.Context, filter InsightFilter) ([]*domain.TagCount, error)
	EntryTrend(ctx context.Context, days int) ([]*domain.TrendPoint, error)

	// Summaries
	GetSummary(ctx context.Context, profileID, periodKey string) (*domain.Summary, error)
	// CreateSummary returns ErrAlreadyExists when a row for the same
	// (profileID, periodKey) was persisted concurrently.
	CreateSummary(ctx context.Context, s *domain.Summary) error
}
