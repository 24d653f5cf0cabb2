package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/store"
)

func TestCreateAndGetIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-1")

	ident := &domain.Identity{
		ID:         "identity-1",
		Provider:   "firebase",
		ProviderID: "uid-123",
		ProfileID:  "profile-1",
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.CreateIdentity(ctx, ident); err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	got, err := s.GetIdentity(ctx, "firebase", "uid-123")
	if err != nil {
		t.Fatalf("GetIdentity: %v", err)
	}
	if got.ID != ident.ID {
		t.Errorf("ID: got %q, want %q", got.ID, ident.ID)
	}
	if got.ProfileID != "profile-1" {
		t.Errorf("ProfileID: got %q, want %q", got.ProfileID, "profile-1")
	}
}

func TestGetIdentity_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetIdentity(context.Background(), "firebase", "uid-unknown")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetIdentity_KeyedByProviderPair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-1")
	insertTestProfile(t, s, "profile-2")

	now := time.Now().UTC()
	idents := []*domain.Identity{
		{ID: "identity-1", Provider: "firebase", ProviderID: "uid-1", ProfileID: "profile-1", CreatedAt: now},
		{ID: "identity-2", Provider: "other", ProviderID: "uid-1", ProfileID: "profile-2", CreatedAt: now},
	}
	for _, ident := range idents {
		if err := s.CreateIdentity(ctx, ident); err != nil {
			t.Fatalf("CreateIdentity %s: %v", ident.ID, err)
		}
	}

	// The same subject id under a different provider resolves independently.
	got, err := s.GetIdentity(ctx, "other", "uid-1")
	if err != nil {
		t.Fatalf("GetIdentity: %v", err)
	}
	if got.ProfileID != "profile-2" {
		t.Errorf("ProfileID: got %q, want %q", got.ProfileID, "profile-2")
	}
}

func TestCreateIdentity_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-1")
	insertTestProfile(t, s, "profile-2")

	now := time.Now().UTC()
	err := s.CreateIdentity(ctx, &domain.Identity{
		ID: "identity-1", Provider: "firebase", ProviderID: "uid-1", ProfileID: "profile-1", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	err = s.CreateIdentity(ctx, &domain.Identity{
		ID: "identity-2", Provider: "firebase", ProviderID: "uid-1", ProfileID: "profile-2", CreatedAt: now,
	})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// The original link is untouched.
	got, err := s.GetIdentity(ctx, "firebase", "uid-1")
	if err != nil {
		t.Fatalf("GetIdentity: %v", err)
	}
	if got.ProfileID != "profile-1" {
		t.Errorf("ProfileID: got %q, want %q", got.ProfileID, "profile-1")
	}
}

func TestCreateProfileWithIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	p := &domain.Profile{
		ID:            "profile-1",
		AnonymousName: "User #uid-1",
		AvatarID:      "avatar-4",
		CreatedAt:     now,
	}
	ident := &domain.Identity{
		ID:         "identity-1",
		Provider:   "firebase",
		ProviderID: "uid-1",
		ProfileID:  "profile-1",
		CreatedAt:  now,
	}

	if err := s.CreateProfileWithIdentity(ctx, p, ident); err != nil {
		t.Fatalf("CreateProfileWithIdentity: %v", err)
	}

	if _, err := s.GetProfile(ctx, "profile-1"); err != nil {
		t.Errorf("GetProfile: %v", err)
	}
	if _, err := s.GetIdentity(ctx, "firebase", "uid-1"); err != nil {
		t.Errorf("GetIdentity: %v", err)
	}
}

func TestCreateProfileWithIdentity_RollsBackOnConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-existing")

	now := time.Now().UTC()
	err := s.CreateIdentity(ctx, &domain.Identity{
		ID: "identity-1", Provider: "firebase", ProviderID: "uid-1", ProfileID: "profile-existing", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	// Racing creation for the same subject must fail and leave no
	// orphaned profile behind.
	p := &domain.Profile{ID: "profile-loser", AnonymousName: "Loser", AvatarID: "avatar-0", CreatedAt: now}
	ident := &domain.Identity{ID: "identity-2", Provider: "firebase", ProviderID: "uid-1", ProfileID: "profile-loser", CreatedAt: now}

	err = s.CreateProfileWithIdentity(ctx, p, ident)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if _, err := s.GetProfile(ctx, "profile-loser"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("orphaned profile survived the rollback: %v", err)
	}
}
