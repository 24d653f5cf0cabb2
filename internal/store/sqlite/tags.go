package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/auraapp/aura-server/internal/domain"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, emoji, type, profile_id, created_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		tagType   string
		profileID sql.NullString
		createdAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Emoji,
		&tagType,
		&profileID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.Type = domain.TagType(tagType)
	t.ProfileID = profileID.String

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// nullableProfileID maps an empty profile id to NULL (system tag).
func nullableProfileID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// CreateTag inserts a new tag.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, emoji, type, profile_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.Emoji,
		string(t.Type),
		nullableProfileID(t.ProfileID),
		formatTime(t.CreatedAt),
	)
	return err
}

// GetTagsByIDs returns the tags whose ids exist, in no particular order.
// Unknown ids are simply absent from the result.
func (s *Store) GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTags(rows)
}

// ListSystemTags returns all tags with no owning profile, ordered by name.
func (s *Store) ListSystemTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE profile_id IS NULL ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTags(rows)
}

// ListProfileTags returns all custom tags owned by a profile, ordered by name.
func (s *Store) ListProfileTags(ctx context.Context, profileID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE profile_id = ? ORDER BY name ASC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTags(rows)
}

// SeedSystemTags inserts system tags that are not already present, matching
// on (name, type). Name uniqueness is only enforced here, at seed time.
func (s *Store) SeedSystemTags(ctx context.Context, tags []*domain.Tag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, t := range tags {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM tags WHERE profile_id IS NULL AND name = ? AND type = ?`,
			t.Name, string(t.Type)).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			continue
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO tags (id, name, emoji, type, profile_id, created_at)
			VALUES (?, ?, ?, ?, NULL, ?)`,
			t.ID,
			t.Name,
			t.Emoji,
			string(t.Type),
			formatTime(t.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("seed tag %q: %w", t.Name, err)
		}
	}

	return tx.Commit()
}

func collectTags(rows *sql.Rows) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}
