package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/store"
)

const entryColumns = `id, note, profile_id, created_at`

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*domain.MoodEntry, error) {
	var e domain.MoodEntry

	var createdAt string

	err := scanner.Scan(
		&e.ID,
		&e.Note,
		&e.ProfileID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// CreateEntry persists a mood entry and attaches the subset of tagIDs that
// resolve to existing tags. Unknown tag ids are dropped silently; this is
// connect-by-id semantics, not a validation error.
func (s *Store) CreateEntry(ctx context.Context, e *domain.MoodEntry, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mood_entries (id, note, profile_id, created_at)
		VALUES (?, ?, ?, ?)`,
		e.ID,
		e.Note,
		e.ProfileID,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	if len(tagIDs) > 0 {
		placeholders := strings.Repeat("?,", len(tagIDs)-1) + "?"
		args := make([]any, 0, len(tagIDs)+1)
		args = append(args, e.ID)
		for _, id := range tagIDs {
			args = append(args, id)
		}

		// The SELECT filters the association down to tags that exist.
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO entry_tags (entry_id, tag_id)
			SELECT ?, id FROM tags WHERE id IN (`+placeholders+`)`, args...)
		if err != nil {
			return fmt.Errorf("attach tags: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// Hydrate the attached tag set so callers see what was stored.
	entries := []*domain.MoodEntry{e}
	return s.attachTags(ctx, entries)
}

// GetEntry retrieves a mood entry by ID with its tags attached.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) GetEntry(ctx context.Context, id string) (*domain.MoodEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM mood_entries WHERE id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, []*domain.MoodEntry{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// ListFeed returns every entry in the system, newest first, each annotated
// with the owning profile's public display fields and its full tag set.
// The public feed is intentionally unpaginated.
func (s *Store) ListFeed(ctx context.Context) ([]*domain.MoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.note, e.profile_id, e.created_at,
		       p.anonymous_name, p.avatar_id, p.avatar_url
		FROM mood_entries e
		JOIN profiles p ON p.id = e.profile_id
		ORDER BY e.created_at DESC, e.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.MoodEntry
	for rows.Next() {
		var e domain.MoodEntry
		var author domain.PublicProfile
		var createdAt string

		err := rows.Scan(
			&e.ID,
			&e.Note,
			&e.ProfileID,
			&createdAt,
			&author.AnonymousName,
			&author.AvatarID,
			&author.AvatarURL,
		)
		if err != nil {
			return nil, err
		}

		e.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		e.Profile = &author
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []*domain.MoodEntry{}
	}

	if err := s.attachTags(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListProfileEntries returns one page of a profile's entries, newest first.
func (s *Store) ListProfileEntries(ctx context.Context, profileID string, page, limit int) (*store.EntryPage, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM mood_entries WHERE profile_id = ?`, profileID).Scan(&total)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM mood_entries
		 WHERE profile_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.MoodEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []*domain.MoodEntry{}
	}

	if err := s.attachTags(ctx, entries); err != nil {
		return nil, err
	}

	lastPage := (total + limit - 1) / limit

	return &store.EntryPage{
		Items:    entries,
		Total:    total,
		Page:     page,
		Limit:    limit,
		LastPage: lastPage,
	}, nil
}

// ListEntriesSince returns a profile's entries created at or after since,
// oldest first, with tags attached. Used by summary generation.
func (s *Store) ListEntriesSince(ctx context.Context, profileID string, since time.Time) ([]*domain.MoodEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM mood_entries
		 WHERE profile_id = ? AND created_at >= ?
		 ORDER BY created_at ASC, id ASC`,
		profileID, formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.MoodEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []*domain.MoodEntry{}
	}

	if err := s.attachTags(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteEntry removes an entry and its tag associations.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mood_entries WHERE id = ?`, id)
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

// attachTags loads the tag sets for a batch of entries in one query.
func (s *Store) attachTags(ctx context.Context, entries []*domain.MoodEntry) error {
	if len(entries) == 0 {
		return nil
	}

	byID := make(map[string]*domain.MoodEntry, len(entries))
	placeholders := strings.Repeat("?,", len(entries)-1) + "?"
	args := make([]any, len(entries))
	for i, e := range entries {
		e.Tags = []*domain.Tag{}
		byID[e.ID] = e
		args[i] = e.ID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT et.entry_id, t.id, t.name, t.emoji, t.type, t.profile_id, t.created_at
		FROM entry_tags et
		JOIN tags t ON t.id = et.tag_id
		WHERE et.entry_id IN (`+placeholders+`)
		ORDER BY t.name ASC`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entryID string
		var t domain.Tag
		var (
			tagType   string
			profileID sql.NullString
			createdAt string
		)

		err := rows.Scan(&entryID, &t.ID, &t.Name, &t.Emoji, &tagType, &profileID, &createdAt)
		if err != nil {
			return err
		}

		t.Type = domain.TagType(tagType)
		t.ProfileID = profileID.String
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return err
		}

		if e, ok := byID[entryID]; ok {
			e.Tags = append(e.Tags, &t)
		}
	}
	return rows.Err()
}
