package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/store"
)

// profileColumns is the ordered list of columns selected in profile queries.
// Must match the scan order in scanProfile.
const profileColumns = `id, anonymous_name, avatar_id, avatar_url, avatar_hash, created_at`

// scanProfile scans a sql.Row (or sql.Rows via its Scan method) into a domain.Profile.
func scanProfile(scanner interface{ Scan(dest ...any) error }) (*domain.Profile, error) {
	var p domain.Profile

	var createdAt string

	err := scanner.Scan(
		&p.ID,
		&p.AnonymousName,
		&p.AvatarID,
		&p.AvatarURL,
		&p.AvatarHash,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreateProfile inserts a new profile.
func (s *Store) CreateProfile(ctx context.Context, p *domain.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, anonymous_name, avatar_id, avatar_url, avatar_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.AnonymousName,
		p.AvatarID,
		p.AvatarURL,
		p.AvatarHash,
		formatTime(p.CreatedAt),
	)
	return err
}

// GetProfile retrieves a profile by ID.
// Returns store.ErrNotFound if the profile does not exist.
func (s *Store) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfile updates a profile's mutable fields.
// Returns store.ErrNotFound if the profile does not exist.
func (s *Store) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET anonymous_name = ?, avatar_id = ?, avatar_url = ?, avatar_hash = ?
		WHERE id = ?`,
		p.AnonymousName,
		p.AvatarID,
		p.AvatarURL,
		p.AvatarHash,
		p.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
