package service

import (
	"context"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/id"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

// TagService manages system and custom tags.
// Tags are append-only: there is no update or delete.
type TagService struct {
	store  store.Store
	logger *logger.Logger
}

// NewTagService creates a new tag service.
func NewTagService(s store.Store, log *logger.Logger) *TagService {
	return &TagService{
		store:  s,
		logger: log,
	}
}

// CreateCustomTag creates a custom tag owned by the given profile.
func (s *TagService) CreateCustomTag(ctx context.Context, profileID, name, emoji string, tagType domain.TagType) (*domain.Tag, error) {
	if !tagType.Valid() {
		return nil, store.ErrInvalidInput.WithMessage("tag type must be EMOTION or ACTIVITY")
	}

	// The owning profile must exist; a custom tag without an owner would
	// leak into everyone's catalog.
	if _, err := s.store.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, err
	}

	tag := &domain.Tag{
		ID:        tagID,
		Name:      name,
		Emoji:     emoji,
		Type:      tagType,
		ProfileID: profileID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("created custom tag",
		"tag_id", tag.ID,
		"profile_id", profileID,
		"type", tagType,
	)
	return tag, nil
}

// ListSystemTags returns every system tag.
func (s *TagService) ListSystemTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListSystemTags(ctx)
}

// ListCustomTags returns the custom tags owned by the given profile.
func (s *TagService) ListCustomTags(ctx context.Context, profileID string) ([]*domain.Tag, error) {
	return s.store.ListProfileTags(ctx, profileID)
}
