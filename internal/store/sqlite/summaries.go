package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/store"
)

const summaryColumns = `id, profile_id, period_key, content, created_at`

func scanSummary(scanner interface{ Scan(dest ...any) error }) (*domain.Summary, error) {
	var sum domain.Summary

	var createdAt string

	err := scanner.Scan(
		&sum.ID,
		&sum.ProfileID,
		&sum.PeriodKey,
		&sum.Content,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	sum.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &sum, nil
}

// GetSummary retrieves a cached summary by (profileId, periodKey).
// Returns store.ErrNotFound on a cache miss.
func (s *Store) GetSummary(ctx context.Context, profileID, periodKey string) (*domain.Summary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+summaryColumns+` FROM ai_summaries WHERE profile_id = ? AND period_key = ?`,
		profileID, periodKey)

	sum, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// CreateSummary inserts a new summary cache row.
// The (profile_id, period_key) uniqueness constraint makes concurrent
// generators race safely: the loser gets store.ErrAlreadyExists and should
// re-read the winning row.
func (s *Store) CreateSummary(ctx context.Context, sum *domain.Summary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_summaries (id, profile_id, period_key, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		sum.ID,
		sum.ProfileID,
		sum.PeriodKey,
		sum.Content,
		formatTime(sum.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}
