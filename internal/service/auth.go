// Package service contains the application services that sit between the
// HTTP layer and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/auraapp/aura-server/internal/auth"
	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/id"
	"github.com/auraapp/aura-server/internal/identity"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

// identityProvider is the single external provider currently supported.
const identityProvider = "firebase"

// AuthService handles external login and identity-to-profile linking.
type AuthService struct {
	store    store.Store
	tokens   *auth.TokenService
	verifier identity.Verifier
	logger   *logger.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(s store.Store, tokens *auth.TokenService, verifier identity.Verifier, log *logger.Logger) *AuthService {
	return &AuthService{
		store:    s,
		tokens:   tokens,
		verifier: verifier,
		logger:   log,
	}
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	AccessToken string          `json:"accessToken"`
	Profile     *domain.Profile `json:"profile"`
}

// Login exchanges a provider id token for an access token and profile.
//
// If the identity is already linked, the linked profile wins regardless of
// any anonymous profile the client supplies. Otherwise the identity is
// linked to the supplied anonymous profile when it still exists, or to a
// freshly created profile. Profiles are never merged.
func (s *AuthService) Login(ctx context.Context, idToken, anonymousProfileID string) (*LoginResult, error) {
	// 1. Verify the provider token.
	ident, err := s.verifier.Verify(ctx, identityProvider, idToken)
	if err != nil {
		// Upstream verifier trouble still means the caller is not
		// authenticated; don't leak a 502 for a bad token.
		if errors.Is(err, store.ErrUnauthorized) || errors.Is(err, store.ErrUpstream) {
			return nil, store.ErrUnauthorized.WithMessage("invalid identity token")
		}
		return nil, err
	}

	// 2. Returning user: identity already linked.
	existing, err := s.store.GetIdentity(ctx, identityProvider, ident.SubjectID)
	if err == nil {
		profile, err := s.store.GetProfile(ctx, existing.ProfileID)
		if err != nil {
			return nil, err
		}
		s.logger.Info("returning user login", "provider_id", ident.SubjectID, "profile_id", profile.ID)
		return s.issueToken(profile)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// 3. New identity: adopt the anonymous profile when it still exists.
	if anonymousProfileID != "" {
		profile, err := s.store.GetProfile(ctx, anonymousProfileID)
		switch {
		case err == nil:
			if err := s.linkIdentity(ctx, ident.SubjectID, profile.ID); err != nil {
				return nil, err
			}
			s.logger.Info("linked identity to anonymous profile",
				"provider_id", ident.SubjectID, "profile_id", profile.ID)
			return s.issueToken(profile)
		case errors.Is(err, store.ErrNotFound):
			// Stale anonymous id, fall through to a fresh profile.
		default:
			return nil, err
		}
	}

	// 4. Create profile and identity together.
	profile, err := s.createLinkedProfile(ctx, ident)
	if err != nil {
		// A concurrent login for the same subject may have linked first;
		// the winner's profile is the right answer.
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.loginExisting(ctx, ident.SubjectID)
		}
		return nil, err
	}

	s.logger.Info("created profile for new identity",
		"provider_id", ident.SubjectID, "profile_id", profile.ID)
	return s.issueToken(profile)
}

// linkIdentity attaches the provider subject to an existing profile.
func (s *AuthService) linkIdentity(ctx context.Context, subjectID, profileID string) error {
	identityID, err := id.Generate("identity")
	if err != nil {
		return err
	}

	err = s.store.CreateIdentity(ctx, &domain.Identity{
		ID:         identityID,
		Provider:   identityProvider,
		ProviderID: subjectID,
		ProfileID:  profileID,
		CreatedAt:  time.Now().UTC(),
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race against another login; the linked profile stands.
		return nil
	}
	return err
}

// createLinkedProfile creates a new profile and its identity atomically.
func (s *AuthService) createLinkedProfile(ctx context.Context, ident *identity.Identity) (*domain.Profile, error) {
	profileID, err := id.Generate("profile")
	if err != nil {
		return nil, err
	}
	identityID, err := id.Generate("identity")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:            profileID,
		AnonymousName: placeholderName(ident),
		AvatarID:      fmt.Sprintf("avatar-%d", rand.IntN(10)),
		CreatedAt:     now,
	}

	err = s.store.CreateProfileWithIdentity(ctx, profile, &domain.Identity{
		ID:         identityID,
		Provider:   identityProvider,
		ProviderID: ident.SubjectID,
		ProfileID:  profileID,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// loginExisting resolves a login through an identity that already exists.
func (s *AuthService) loginExisting(ctx context.Context, subjectID string) (*LoginResult, error) {
	existing, err := s.store.GetIdentity(ctx, identityProvider, subjectID)
	if err != nil {
		return nil, err
	}
	profile, err := s.store.GetProfile(ctx, existing.ProfileID)
	if err != nil {
		return nil, err
	}
	return s.issueToken(profile)
}

func (s *AuthService) issueToken(profile *domain.Profile) (*LoginResult, error) {
	token, err := s.tokens.GenerateAccessToken(profile)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &LoginResult{AccessToken: token, Profile: profile}, nil
}

// placeholderName derives a display name for a brand-new profile. Falls back
// to a fragment of the provider subject when the provider gave no name.
func placeholderName(ident *identity.Identity) string {
	if ident.DisplayName != "" {
		return ident.DisplayName
	}
	subject := ident.SubjectID
	if len(subject) > 5 {
		subject = subject[:5]
	}
	return "User #" + subject
}
