package service

import (
	"context"
	"errors"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/id"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

// Pagination bounds for the personal history endpoint.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// EntryService manages mood entries: creation, the public feed, personal
// history, and owner-checked deletion.
type EntryService struct {
	store  store.Store
	logger *logger.Logger
}

// NewEntryService creates a new entry service.
func NewEntryService(s store.Store, log *logger.Logger) *EntryService {
	return &EntryService{
		store:  s,
		logger: log,
	}
}

// CreateEntry records a new mood entry for the profile. Tag ids that don't
// resolve to existing tags are dropped silently rather than rejected, so a
// client holding a stale catalog can still post.
func (s *EntryService) CreateEntry(ctx context.Context, profileID, note string, tagIDs []string) (*domain.MoodEntry, error) {
	if _, err := s.store.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}

	entryID, err := id.Generate("entry")
	if err != nil {
		return nil, err
	}

	entry := &domain.MoodEntry{
		ID:        entryID,
		Note:      note,
		ProfileID: profileID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateEntry(ctx, entry, tagIDs); err != nil {
		return nil, err
	}

	s.logger.Info("created mood entry",
		"entry_id", entry.ID,
		"profile_id", profileID,
		"tags", len(entry.Tags),
	)
	return entry, nil
}

// ListFeed returns the public feed: every entry, newest first, each with its
// author's public profile fields attached.
func (s *EntryService) ListFeed(ctx context.Context) ([]*domain.MoodEntry, error) {
	return s.store.ListFeed(ctx)
}

// ListMine returns one page of the profile's own entries, newest first.
// Page and limit are clamped to sane bounds.
func (s *EntryService) ListMine(ctx context.Context, profileID string, page, limit int) (*store.EntryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return s.store.ListProfileEntries(ctx, profileID, page, limit)
}

// DeleteEntry removes an entry after verifying ownership. Deleting someone
// else's entry is forbidden; deleting a missing entry is not found.
func (s *EntryService) DeleteEntry(ctx context.Context, profileID, entryID string) error {
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound.WithMessage("mood entry not found")
		}
		return err
	}

	if entry.ProfileID != profileID {
		return store.ErrForbidden.WithMessage("you do not have permission to delete this entry")
	}

	if err := s.store.DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	s.logger.Info("deleted mood entry", "entry_id", entryID, "profile_id", profileID)
	return nil
}
