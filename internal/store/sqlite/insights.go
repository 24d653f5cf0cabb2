package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/store"
)

// CountTags aggregates tag occurrences across entries matching the filter,
// grouped by tag name. Results are sorted by count descending with name
// ascending as the deterministic tie-break.
func (s *Store) CountTags(ctx context.Context, filter store.InsightFilter) ([]*domain.TagCount, error) {
	query := `
		SELECT t.name, COUNT(1) AS cnt
		FROM entry_tags et
		JOIN tags t ON t.id = et.tag_id
		JOIN mood_entries e ON e.id = et.entry_id
		WHERE t.type = ?`
	args := []any{string(filter.TagType)}

	switch filter.Scope {
	case store.ScopeSelf:
		if filter.ProfileID == "" {
			return nil, fmt.Errorf("insight filter: scope self requires a profile id")
		}
		query += ` AND e.profile_id = ?`
		args = append(args, filter.ProfileID)
	case store.ScopeAll:
		// no profile restriction
	default:
		return nil, fmt.Errorf("insight filter: unknown scope %q", filter.Scope)
	}

	query += `
		GROUP BY t.name
		ORDER BY cnt DESC, t.name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*domain.TagCount
	for rows.Next() {
		var c domain.TagCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if counts == nil {
		counts = []*domain.TagCount{}
	}

	return counts, nil
}

// EntryTrend counts entries created on each UTC calendar day over the last
// N days, ascending by date. Days with no entries are absent from the
// result; there is no zero-fill.
func (s *Store) EntryTrend(ctx context.Context, days int) ([]*domain.TrendPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	// created_at is stored in UTC, so sqlite's date() buckets by UTC
	// calendar day.
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(created_at) AS day, COUNT(1) AS cnt
		FROM mood_entries
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day ASC`,
		formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []*domain.TrendPoint
	for rows.Next() {
		var p domain.TrendPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, err
		}
		points = append(points, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if points == nil {
		points = []*domain.TrendPoint{}
	}

	return points, nil
}
