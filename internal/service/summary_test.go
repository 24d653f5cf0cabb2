package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auraapp/aura-server/internal/ai"
	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/ratelimit"
	"github.com/auraapp/aura-server/internal/store"
)

// stubGenerator counts upstream calls and can be switched to fail.
type stubGenerator struct {
	calls int
	fail  bool
	text  string
}

func (g *stubGenerator) GenerateSummary(_ context.Context, _ []*domain.MoodEntry) (string, error) {
	g.calls++
	if g.fail {
		return "", store.ErrUpstream.WithMessage("model down")
	}
	return g.text, nil
}

func setupSummaryTest(t *testing.T, gen *stubGenerator) (*SummaryService, store.Store) {
	t.Helper()

	s := newTestStore(t)
	limiter := ratelimit.New(100, 100)
	t.Cleanup(limiter.Stop)

	return NewSummaryService(s, gen, limiter, newTestLogger()), s
}

// seedEntries creates n entries for the profile dated within the window.
func seedEntries(t *testing.T, s store.Store, profileID string, n int) {
	t.Helper()

	ctx := context.Background()
	for i := 0; i < n; i++ {
		entry := &domain.MoodEntry{
			ID:        profileID + "-entry-" + string(rune('a'+i)),
			Note:      "note",
			ProfileID: profileID,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, s.CreateEntry(ctx, entry, nil))
	}
}

func TestSummaryService_TooFewEntries_NotCached(t *testing.T) {
	gen := &stubGenerator{text: "real summary"}
	svc, s := setupSummaryTest(t, gen)
	ctx := context.Background()

	profile := createTestProfile(t, s, "profile-s1")
	seedEntries(t, s, profile.ID, 2)

	res, err := svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.NoError(t, err)

	assert.Equal(t, ai.DefaultSummary, res.Summary)
	assert.False(t, res.Cached)
	assert.Zero(t, gen.calls, "model must not be called for short history")

	// Nothing was cached for the period key.
	_, err = s.GetSummary(ctx, profile.ID, domain.PeriodWeek.Key(time.Now()))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSummaryService_GeneratesAndCaches(t *testing.T) {
	gen := &stubGenerator{text: "you had a calm week"}
	svc, s := setupSummaryTest(t, gen)
	ctx := context.Background()

	profile := createTestProfile(t, s, "profile-s2")
	seedEntries(t, s, profile.ID, 3)

	first, err := svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, "you had a calm week", first.Summary)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, gen.calls)

	// Second request within the same day serves the cache.
	second, err := svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, "you had a calm week", second.Summary)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, gen.calls, "cache hit must not call the model again")
}

func TestSummaryService_UpstreamFailure_FallbackNotCached(t *testing.T) {
	gen := &stubGenerator{fail: true}
	svc, s := setupSummaryTest(t, gen)
	ctx := context.Background()

	profile := createTestProfile(t, s, "profile-s3")
	seedEntries(t, s, profile.ID, 4)

	res, err := svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, ai.FallbackSummary, res.Summary)
	assert.False(t, res.Cached)

	// The failure was not cached, so recovery is visible immediately.
	gen.fail = false
	gen.text = "all better now"

	res, err = svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, "all better now", res.Summary)
	assert.Equal(t, 2, gen.calls)
}

func TestSummaryService_PeriodsCacheIndependently(t *testing.T) {
	gen := &stubGenerator{text: "summary"}
	svc, s := setupSummaryTest(t, gen)
	ctx := context.Background()

	profile := createTestProfile(t, s, "profile-s4")
	seedEntries(t, s, profile.ID, 3)

	_, err := svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.NoError(t, err)

	// A different period misses the cache and calls the model again.
	_, err = svc.Generate(ctx, profile.ID, domain.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
}

func TestSummaryService_RateLimited(t *testing.T) {
	gen := &stubGenerator{fail: true}

	s := newTestStore(t)
	limiter := ratelimit.New(0.01, 1)
	t.Cleanup(limiter.Stop)
	svc := NewSummaryService(s, gen, limiter, newTestLogger())
	ctx := context.Background()

	profile := createTestProfile(t, s, "profile-s5")
	seedEntries(t, s, profile.ID, 3)

	// First miss consumes the only token (and fails upstream, so nothing
	// is cached); the next miss is rejected by the limiter.
	_, err := svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.NoError(t, err)

	_, err = svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrRateLimited)
}

// racingStore reports a cache miss on the first GetSummary call even though
// a winner row exists, reproducing a lookup that ran before a concurrent
// writer committed.
type racingStore struct {
	store.Store
	lookups int
}

func (r *racingStore) GetSummary(ctx context.Context, profileID, periodKey string) (*domain.Summary, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, store.ErrNotFound
	}
	return r.Store.GetSummary(ctx, profileID, periodKey)
}

func TestSummaryService_ConcurrentWrite_WinnerRowServed(t *testing.T) {
	gen := &stubGenerator{text: "loser text"}

	s := newTestStore(t)
	racing := &racingStore{Store: s}
	limiter := ratelimit.New(100, 100)
	t.Cleanup(limiter.Stop)
	svc := NewSummaryService(racing, gen, limiter, newTestLogger())
	ctx := context.Background()

	profile := createTestProfile(t, s, "profile-s6")
	seedEntries(t, s, profile.ID, 3)

	// The concurrent winner's row is already on disk.
	key := domain.PeriodWeek.Key(time.Now())
	require.NoError(t, s.CreateSummary(ctx, &domain.Summary{
		ID:        "summary-winner",
		ProfileID: profile.ID,
		PeriodKey: key,
		Content:   "winner text",
		CreatedAt: time.Now(),
	}))

	// Our writer generates, hits the UNIQUE constraint, and serves the
	// winner's row instead of its own text.
	res, err := svc.Generate(ctx, profile.ID, domain.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, "winner text", res.Summary)
	assert.True(t, res.Cached)
	assert.Equal(t, 1, gen.calls)
}
