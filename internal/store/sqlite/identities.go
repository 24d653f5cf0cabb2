package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/store"
)

const identityColumns = `id, provider, provider_id, profile_id, created_at`

func scanIdentity(scanner interface{ Scan(dest ...any) error }) (*domain.Identity, error) {
	var ident domain.Identity

	var createdAt string

	err := scanner.Scan(
		&ident.ID,
		&ident.Provider,
		&ident.ProviderID,
		&ident.ProfileID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	ident.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &ident, nil
}

// GetIdentity looks up an identity by its (provider, providerId) composite.
// Returns store.ErrNotFound if no identity exists for the pair.
func (s *Store) GetIdentity(ctx context.Context, provider, providerID string) (*domain.Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM identities WHERE provider = ? AND provider_id = ?`,
		provider, providerID)

	ident, err := scanIdentity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ident, nil
}

// CreateIdentity inserts a new identity bound to an existing profile.
// Returns store.ErrAlreadyExists if the (provider, providerId) pair is taken.
func (s *Store) CreateIdentity(ctx context.Context, ident *domain.Identity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identities (id, provider, provider_id, profile_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		ident.ID,
		ident.Provider,
		ident.ProviderID,
		ident.ProfileID,
		formatTime(ident.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// CreateProfileWithIdentity persists a new profile and its identity in one
// transaction. The identity must never be observable without its profile.
func (s *Store) CreateProfileWithIdentity(ctx context.Context, p *domain.Profile, ident *domain.Identity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (id, anonymous_name, avatar_id, avatar_url, avatar_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.AnonymousName,
		p.AvatarID,
		p.AvatarURL,
		p.AvatarHash,
		formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO identities (id, provider, provider_id, profile_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		ident.ID,
		ident.Provider,
		ident.ProviderID,
		ident.ProfileID,
		formatTime(ident.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert identity: %w", err)
	}

	return tx.Commit()
}
