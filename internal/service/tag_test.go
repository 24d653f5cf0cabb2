package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/store"
)

func TestTagService_CreateCustomTag(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, newTestLogger())
	ctx := context.Background()

	profile := createTestProfile(t, s, "profile-t1")

	tag, err := svc.CreateCustomTag(ctx, profile.ID, "Meditating", "🧘", domain.TagTypeActivity)
	require.NoError(t, err)

	assert.NotEmpty(t, tag.ID)
	assert.Equal(t, "Meditating", tag.Name)
	assert.Equal(t, profile.ID, tag.ProfileID)
	assert.False(t, tag.IsSystem())
	assert.False(t, tag.CreatedAt.IsZero())
}

func TestTagService_CreateCustomTag_UnknownProfile(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, newTestLogger())

	_, err := svc.CreateCustomTag(context.Background(), "profile-ghost", "X", "", domain.TagTypeEmotion)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestTagService_CreateCustomTag_InvalidType(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, newTestLogger())

	profile := createTestProfile(t, s, "profile-t2")

	_, err := svc.CreateCustomTag(context.Background(), profile.ID, "X", "", domain.TagType("MOOD"))
	assert.True(t, errors.Is(err, store.ErrInvalidInput))
}

func TestTagService_CustomTagsScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, newTestLogger())
	ctx := context.Background()

	alice := createTestProfile(t, s, "profile-alice")
	bob := createTestProfile(t, s, "profile-bob")

	_, err := svc.CreateCustomTag(ctx, alice.ID, "Gardening", "🌱", domain.TagTypeActivity)
	require.NoError(t, err)

	aliceTags, err := svc.ListCustomTags(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, aliceTags, 1)

	bobTags, err := svc.ListCustomTags(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobTags)
}

func TestSeedSystemTags_Idempotent(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, newTestLogger())
	ctx := context.Background()

	require.NoError(t, SeedSystemTags(ctx, s, newTestLogger()))
	require.NoError(t, SeedSystemTags(ctx, s, newTestLogger()))

	tags, err := svc.ListSystemTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 12)

	var emotions, activities int
	for _, tag := range tags {
		assert.True(t, tag.IsSystem())
		switch tag.Type {
		case domain.TagTypeEmotion:
			emotions++
		case domain.TagTypeActivity:
			activities++
		}
	}
	assert.Equal(t, 6, emotions)
	assert.Equal(t, 6, activities)
}
