package service

import (
	"context"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

// trendDays is the community trend lookback window.
const trendDays = 7

// InsightService aggregates tag distributions and posting trends.
type InsightService struct {
	store  store.Store
	logger *logger.Logger
}

// NewInsightService creates a new insight service.
func NewInsightService(s store.Store, log *logger.Logger) *InsightService {
	return &InsightService{
		store:  s,
		logger: log,
	}
}

// PersonalInsights is the per-profile tag distribution report.
type PersonalInsights struct {
	EmotionCounts  []*domain.TagCount `json:"emotionCounts"`
	ActivityCounts []*domain.TagCount `json:"activityCounts"`
}

// PublicInsights is the community-wide report: distributions plus the
// posting trend for the last week.
type PublicInsights struct {
	EmotionCounts  []*domain.TagCount   `json:"emotionCounts"`
	ActivityCounts []*domain.TagCount   `json:"activityCounts"`
	Trend          []*domain.TrendPoint `json:"trend"`
}

// Personal returns the tag distributions for one profile's entries.
func (s *InsightService) Personal(ctx context.Context, profileID string) (*PersonalInsights, error) {
	emotions, err := s.store.CountTags(ctx, store.InsightFilter{
		Scope:     store.ScopeSelf,
		ProfileID: profileID,
		TagType:   domain.TagTypeEmotion,
	})
	if err != nil {
		return nil, err
	}

	activities, err := s.store.CountTags(ctx, store.InsightFilter{
		Scope:     store.ScopeSelf,
		ProfileID: profileID,
		TagType:   domain.TagTypeActivity,
	})
	if err != nil {
		return nil, err
	}

	return &PersonalInsights{
		EmotionCounts:  emotions,
		ActivityCounts: activities,
	}, nil
}

// Public returns the community-wide tag distributions and the 7-day trend.
func (s *InsightService) Public(ctx context.Context) (*PublicInsights, error) {
	emotions, err := s.store.CountTags(ctx, store.InsightFilter{
		Scope:   store.ScopeAll,
		TagType: domain.TagTypeEmotion,
	})
	if err != nil {
		return nil, err
	}

	activities, err := s.store.CountTags(ctx, store.InsightFilter{
		Scope:   store.ScopeAll,
		TagType: domain.TagTypeActivity,
	})
	if err != nil {
		return nil, err
	}

	trend, err := s.store.EntryTrend(ctx, trendDays)
	if err != nil {
		return nil, err
	}

	return &PublicInsights{
		EmotionCounts:  emotions,
		ActivityCounts: activities,
		Trend:          trend,
	}, nil
}
