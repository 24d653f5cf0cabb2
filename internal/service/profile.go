package service

import (
	"context"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/id"
	"github.com/auraapp/aura-server/internal/images"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

// maxAvatarBytes caps avatar uploads at 5MB.
const maxAvatarBytes = 5 << 20

// ProfileService manages profile lifecycle and avatar uploads.
type ProfileService struct {
	store    store.Store
	uploader images.Uploader
	logger   *logger.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(s store.Store, uploader images.Uploader, log *logger.Logger) *ProfileService {
	return &ProfileService{
		store:    s,
		uploader: uploader,
		logger:   log,
	}
}

// CreateProfile creates a new anonymous profile.
func (s *ProfileService) CreateProfile(ctx context.Context, anonymousName, avatarID string) (*domain.Profile, error) {
	profileID, err := id.Generate("profile")
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:            profileID,
		AnonymousName: anonymousName,
		AvatarID:      avatarID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("created anonymous profile", "profile_id", profile.ID)
	return profile, nil
}

// GetProfile returns the profile with the given id.
func (s *ProfileService) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	return s.store.GetProfile(ctx, profileID)
}

// UpdateName changes the profile's display name.
func (s *ProfileService) UpdateName(ctx context.Context, profileID, anonymousName string) (*domain.Profile, error) {
	profile, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	profile.AnonymousName = anonymousName
	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("updated profile name", "profile_id", profileID)
	return profile, nil
}

// UpdateAvatar uploads a new avatar image and stores its hosted URL plus a
// BlurHash placeholder on the profile.
func (s *ProfileService) UpdateAvatar(ctx context.Context, profileID, filename string, data []byte) (*domain.Profile, error) {
	if len(data) == 0 {
		return nil, store.ErrInvalidInput.WithMessage("empty avatar upload")
	}
	if len(data) > maxAvatarBytes {
		return nil, store.ErrInvalidInput.WithMessage("avatar exceeds 5MB limit")
	}

	profile, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	// Reject files that don't decode as images before paying for the upload.
	hash, err := images.ComputeBlurHash(data)
	if err != nil {
		return nil, store.ErrInvalidInput.WithMessage("unsupported image format").WithCause(err)
	}

	url, err := s.uploader.Upload(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = url
	profile.AvatarHash = hash
	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("updated profile avatar",
		"profile_id", profileID,
		"size", len(data),
	)
	return profile, nil
}
