package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/store"
)

func TestCountTags_OrderAndTieBreak(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-1")
	insertTestTag(t, s, "tag-happy", "Happy", domain.TagTypeEmotion, "")
	insertTestTag(t, s, "tag-calm", "Calm", domain.TagTypeEmotion, "")
	insertTestTag(t, s, "tag-anxious", "Anxious", domain.TagTypeEmotion, "")

	now := time.Now().UTC()
	insertTestEntry(t, s, "entry-1", "profile-1", now, "tag-happy", "tag-calm")
	insertTestEntry(t, s, "entry-2", "profile-1", now, "tag-happy", "tag-anxious")
	insertTestEntry(t, s, "entry-3", "profile-1", now, "tag-happy")
	insertTestEntry(t, s, "entry-4", "profile-1", now, "tag-calm")

	counts, err := s.CountTags(ctx, store.InsightFilter{
		Scope:     store.ScopeSelf,
		ProfileID: "profile-1",
		TagType:   domain.TagTypeEmotion,
	})
	if err != nil {
		t.Fatalf("CountTags: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("got %d counts, want 3", len(counts))
	}

	// Descending by count.
	want := []struct {
		name  string
		count int
	}{
		{"Happy", 3},
		{"Calm", 2},
		{"Anxious", 1},
	}
	for i, w := range want {
		if counts[i].Name != w.name || counts[i].Count != w.count {
			t.Errorf("counts[%d]: got %s=%d, want %s=%d",
				i, counts[i].Name, counts[i].Count, w.name, w.count)
		}
	}
}

func TestCountTags_AlphabeticalTieBreak(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-1")
	insertTestTag(t, s, "tag-z", "Zoning out", domain.TagTypeActivity, "")
	insertTestTag(t, s, "tag-a", "Baking", domain.TagTypeActivity, "")

	now := time.Now().UTC()
	insertTestEntry(t, s, "entry-1", "profile-1", now, "tag-z", "tag-a")

	counts, err := s.CountTags(ctx, store.InsightFilter{
		Scope:   store.ScopeAll,
		TagType: domain.TagTypeActivity,
	})
	if err != nil {
		t.Fatalf("CountTags: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("got %d counts, want 2", len(counts))
	}
	if counts[0].Name != "Baking" || counts[1].Name != "Zoning out" {
		t.Errorf("tie-break order: got [%q, %q], want alphabetical", counts[0].Name, counts[1].Name)
	}
}

func TestCountTags_ScopeSeparation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-1")
	insertTestProfile(t, s, "profile-2")
	insertTestTag(t, s, "tag-happy", "Happy", domain.TagTypeEmotion, "")

	now := time.Now().UTC()
	insertTestEntry(t, s, "entry-1", "profile-1", now, "tag-happy")
	insertTestEntry(t, s, "entry-2", "profile-2", now, "tag-happy")
	insertTestEntry(t, s, "entry-3", "profile-2", now, "tag-happy")

	mine, err := s.CountTags(ctx, store.InsightFilter{
		Scope:     store.ScopeSelf,
		ProfileID: "profile-1",
		TagType:   domain.TagTypeEmotion,
	})
	if err != nil {
		t.Fatalf("CountTags self: %v", err)
	}
	if len(mine) != 1 || mine[0].Count != 1 {
		t.Errorf("self scope: got %+v, want Happy=1", mine)
	}

	all, err := s.CountTags(ctx, store.InsightFilter{
		Scope:   store.ScopeAll,
		TagType: domain.TagTypeEmotion,
	})
	if err != nil {
		t.Fatalf("CountTags all: %v", err)
	}
	if len(all) != 1 || all[0].Count != 3 {
		t.Errorf("all scope: got %+v, want Happy=3", all)
	}
}

func TestCountTags_SelfRequiresProfile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CountTags(context.Background(), store.InsightFilter{
		Scope:   store.ScopeSelf,
		TagType: domain.TagTypeEmotion,
	})
	if err == nil {
		t.Fatal("expected error for self scope without profile id")
	}
}

func TestCountTags_FiltersByType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-1")
	insertTestTag(t, s, "tag-happy", "Happy", domain.TagTypeEmotion, "")
	insertTestTag(t, s, "tag-reading", "Reading", domain.TagTypeActivity, "")

	insertTestEntry(t, s, "entry-1", "profile-1", time.Now().UTC(), "tag-happy", "tag-reading")

	counts, err := s.CountTags(ctx, store.InsightFilter{
		Scope:   store.ScopeAll,
		TagType: domain.TagTypeEmotion,
	})
	if err != nil {
		t.Fatalf("CountTags: %v", err)
	}
	if len(counts) != 1 || counts[0].Name != "Happy" {
		t.Errorf("got %+v, want only Happy", counts)
	}
}

func TestEntryTrend_BucketsAndGaps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestProfile(t, s, "profile-1")

	// Midday keeps same-day offsets inside one UTC bucket.
	now := time.Now().UTC()
	now = time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	today := now.Format("2006-01-02")
	twoDaysAgo := now.AddDate(0, 0, -2).Format("2006-01-02")

	insertTestEntry(t, s, "entry-1", "profile-1", now)
	insertTestEntry(t, s, "entry-2", "profile-1", now.Add(-time.Minute))
	insertTestEntry(t, s, "entry-3", "profile-1", now.AddDate(0, 0, -2))
	// Outside the window.
	insertTestEntry(t, s, "entry-4", "profile-1", now.AddDate(0, 0, -30))

	points, err := s.EntryTrend(ctx, 7)
	if err != nil {
		t.Fatalf("EntryTrend: %v", err)
	}

	// Empty days are absent, not zero-filled.
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2: %+v", len(points), points)
	}
	if points[0].Date != twoDaysAgo || points[0].Count != 1 {
		t.Errorf("points[0]: got %s=%d, want %s=1", points[0].Date, points[0].Count, twoDaysAgo)
	}
	if points[1].Date != today || points[1].Count != 2 {
		t.Errorf("points[1]: got %s=%d, want %s=2", points[1].Date, points[1].Count, today)
	}
}

func TestEntryTrend_Empty(t *testing.T) {
	s := newTestStore(t)

	points, err := s.EntryTrend(context.Background(), 7)
	if err != nil {
		t.Fatalf("EntryTrend: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("got %d points, want 0", len(points))
	}
}
