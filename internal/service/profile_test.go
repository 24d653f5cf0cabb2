package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auraapp/aura-server/internal/store"
)

// stubUploader records uploads and returns a fixed hosted URL.
type stubUploader struct {
	uploads int
	fail    bool
}

func (u *stubUploader) Upload(_ context.Context, _ string, _ []byte) (string, error) {
	u.uploads++
	if u.fail {
		return "", store.ErrUpstream.WithMessage("host down")
	}
	return "https://img.example/hosted.png", nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProfileService_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	svc := NewProfileService(s, &stubUploader{}, newTestLogger())
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, "Moonlit Fox", "avatar-3")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Moonlit Fox", got.AnonymousName)
	assert.Equal(t, "avatar-3", got.AvatarID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestProfileService_UpdateName(t *testing.T) {
	s := newTestStore(t)
	svc := NewProfileService(s, &stubUploader{}, newTestLogger())
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, "Old Name", "avatar-0")
	require.NoError(t, err)

	updated, err := svc.UpdateName(ctx, created.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.AnonymousName)

	_, err = svc.UpdateName(ctx, "profile-ghost", "X")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestProfileService_UpdateAvatar(t *testing.T) {
	s := newTestStore(t)
	uploader := &stubUploader{}
	svc := NewProfileService(s, uploader, newTestLogger())
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, "Tester", "avatar-1")
	require.NoError(t, err)

	updated, err := svc.UpdateAvatar(ctx, created.ID, "me.png", pngBytes(t))
	require.NoError(t, err)

	assert.Equal(t, "https://img.example/hosted.png", updated.AvatarURL)
	assert.NotEmpty(t, updated.AvatarHash)
	assert.Equal(t, 1, uploader.uploads)
}

func TestProfileService_UpdateAvatar_RejectsBadInput(t *testing.T) {
	s := newTestStore(t)
	uploader := &stubUploader{}
	svc := NewProfileService(s, uploader, newTestLogger())
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, "Tester", "avatar-1")
	require.NoError(t, err)

	// Empty body.
	_, err = svc.UpdateAvatar(ctx, created.ID, "me.png", nil)
	assert.True(t, errors.Is(err, store.ErrInvalidInput))

	// Oversized body.
	_, err = svc.UpdateAvatar(ctx, created.ID, "me.png", make([]byte, maxAvatarBytes+1))
	assert.True(t, errors.Is(err, store.ErrInvalidInput))

	// Not an image. The host must never be called for rejected input.
	_, err = svc.UpdateAvatar(ctx, created.ID, "me.txt", []byte("plain text"))
	assert.True(t, errors.Is(err, store.ErrInvalidInput))
	assert.Zero(t, uploader.uploads)
}

func TestProfileService_UpdateAvatar_HostFailure(t *testing.T) {
	s := newTestStore(t)
	svc := NewProfileService(s, &stubUploader{fail: true}, newTestLogger())
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, "Tester", "avatar-1")
	require.NoError(t, err)

	_, err = svc.UpdateAvatar(ctx, created.ID, "me.png", pngBytes(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUpstream))

	// Profile unchanged after the failed upload.
	got, err := svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AvatarURL)
}
