package service

import (
	"context"
	"fmt"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/id"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

// systemTags is the built-in catalog every installation starts with.
var systemTags = []struct {
	name  string
	emoji string
	typ   domain.TagType
}{
	{"Happy", "😄", domain.TagTypeEmotion},
	{"Calm", "😌", domain.TagTypeEmotion},
	{"Sad", "😢", domain.TagTypeEmotion},
	{"Excited", "🤩", domain.TagTypeEmotion},
	{"Anxious", "😟", domain.TagTypeEmotion},
	{"Tired", "😴", domain.TagTypeEmotion},
	{"Work", "💼", domain.TagTypeActivity},
	{"Study", "📚", domain.TagTypeActivity},
	{"Exercise", "🏋️", domain.TagTypeActivity},
	{"Hobby", "🎨", domain.TagTypeActivity},
	{"Social", "🎉", domain.TagTypeActivity},
	{"Rest", "🛌", domain.TagTypeActivity},
}

// SeedSystemTags inserts the built-in tags that are missing. Idempotent, so
// it runs on every startup and in cmd/seed.
func SeedSystemTags(ctx context.Context, s store.Store, log *logger.Logger) error {
	now := time.Now().UTC()
	tags := make([]*domain.Tag, 0, len(systemTags))
	for _, st := range systemTags {
		tagID, err := id.Generate("tag")
		if err != nil {
			return fmt.Errorf("generate tag id: %w", err)
		}
		tags = append(tags, &domain.Tag{
			ID:        tagID,
			Name:      st.name,
			Emoji:     st.emoji,
			Type:      st.typ,
			CreatedAt: now,
		})
	}

	if err := s.SeedSystemTags(ctx, tags); err != nil {
		return fmt.Errorf("seed system tags: %w", err)
	}

	log.Info("seeded system tags", "count", len(tags))
	return nil
}
