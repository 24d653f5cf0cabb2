package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/auraapp/aura-server/internal/ai"
	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/ratelimit"
	"github.com/auraapp/aura-server/internal/store"
)

// SummaryService produces AI period summaries with a per-day cache.
//
// Cache policy: only real model output is cached. The short-history default
// and the upstream-failure fallback are returned uncached so a later request
// can try again within the same day.
type SummaryService struct {
	store     store.Store
	generator ai.Generator
	limiter   *ratelimit.KeyedRateLimiter
	logger    *logger.Logger
	now       func() time.Time
}

// NewSummaryService creates a new summary service.
func NewSummaryService(s store.Store, generator ai.Generator, limiter *ratelimit.KeyedRateLimiter, log *logger.Logger) *SummaryService {
	return &SummaryService{
		store:     s,
		generator: generator,
		limiter:   limiter,
		logger:    log,
		now:       time.Now,
	}
}

// SummaryResult is what the insights summary endpoint returns.
type SummaryResult struct {
	Summary string    `json:"summary"`
	Period  string    `json:"period"`
	Cached  bool      `json:"cached"`
	Date    time.Time `json:"date"`
}

// Generate returns the summary for the profile over the given period,
// serving the cached row when one exists for today's period key.
func (s *SummaryService) Generate(ctx context.Context, profileID string, period domain.Period) (*SummaryResult, error) {
	now := s.now()
	key := period.Key(now)

	// 1. Cache hit ends the request without touching the model.
	if cached, err := s.store.GetSummary(ctx, profileID, key); err == nil {
		return &SummaryResult{
			Summary: cached.Content,
			Period:  string(period),
			Cached:  true,
			Date:    cached.CreatedAt,
		}, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// 2. Cache misses hit the model, so they are rate limited per profile.
	if !s.limiter.Allow(profileID) {
		return nil, store.ErrRateLimited.WithMessage("summary generation limit reached, try again shortly")
	}

	// 3. Load the window's entries, oldest first.
	entries, err := s.store.ListEntriesSince(ctx, profileID, period.WindowStart(now))
	if err != nil {
		return nil, err
	}

	// 4. Too little history: fixed default, not cached.
	if len(entries) < ai.MinEntriesForSummary {
		s.logger.Debug("too few entries for summary",
			"profile_id", profileID, "entries", len(entries))
		return &SummaryResult{
			Summary: ai.DefaultSummary,
			Period:  string(period),
			Date:    now,
		}, nil
	}

	// 5. Ask the model. Failures degrade to the fallback text, not cached,
	// so the next request can retry.
	content, err := s.generator.GenerateSummary(ctx, entries)
	if err != nil {
		s.logger.Warn("summary generation failed",
			"profile_id", profileID, "error", err)
		return &SummaryResult{
			Summary: ai.FallbackSummary,
			Period:  string(period),
			Date:    now,
		}, nil
	}

	// 6. Persist. On a concurrent write the UNIQUE constraint fires and the
	// winner's row is served instead of ours.
	summary := &domain.Summary{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		PeriodKey: key,
		Content:   content,
		CreatedAt: now,
	}
	if err := s.store.CreateSummary(ctx, summary); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			winner, err := s.store.GetSummary(ctx, profileID, key)
			if err != nil {
				return nil, err
			}
			return &SummaryResult{
				Summary: winner.Content,
				Period:  string(period),
				Cached:  true,
				Date:    winner.CreatedAt,
			}, nil
		}
		return nil, err
	}

	s.logger.Info("generated summary",
		"profile_id", profileID,
		"period", period,
		"entries", len(entries),
	)
	return &SummaryResult{
		Summary: content,
		Period:  string(period),
		Date:    now,
	}, nil
}
