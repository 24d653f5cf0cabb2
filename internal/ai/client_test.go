package ai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

func testEntries() []*domain.MoodEntry {
	created := time.Date(2025, 9, 7, 10, 0, 0, 0, time.UTC)
	return []*domain.MoodEntry{
		{
			Note:      "Went for a morning run.",
			CreatedAt: created,
			Tags: []*domain.Tag{
				{Name: "Happy", Emoji: "😄", Type: domain.TagTypeEmotion},
				{Name: "Exercise", Emoji: "🏋️", Type: domain.TagTypeActivity},
			},
		},
		{
			CreatedAt: created.AddDate(0, 0, 1),
			Tags: []*domain.Tag{
				{Name: "Tired", Emoji: "😴", Type: domain.TagTypeEmotion},
			},
		},
	}
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()

	log := logger.New(logger.Config{Level: slog.LevelError, Environment: "development"})

	return NewClient(Config{
		Endpoint: endpoint,
		APIKey:   "test-key",
		Model:    "deepseek-chat",
		Timeout:  5 * time.Second,
	}, log)
}

func TestFormatEntry(t *testing.T) {
	entries := testEntries()

	line := formatEntry(entries[0])
	assert.Equal(t, `- On Sun Sep 07 2025, mood/activity was [😄Happy, 🏋️Exercise]. Note: "Went for a morning run."`, line)

	// No note suffix when the note is empty.
	line = formatEntry(entries[1])
	assert.Equal(t, "- On Mon Sep 08 2025, mood/activity was [😴Tired].", line)
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt(testEntries())

	assert.Contains(t, prompt, "REAL USER DATA:")
	assert.Contains(t, prompt, "😄Happy")
	// Few-shot examples come before the real data.
	assert.Less(t, strings.Index(prompt, "EXAMPLE 1"), strings.Index(prompt, "😄Happy"))
}

func TestClient_GenerateSummary(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  You had a calm week.  "}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	summary, err := c.GenerateSummary(context.Background(), testEntries())
	require.NoError(t, err)
	assert.Equal(t, "You had a calm week.", summary)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestClient_GenerateSummary_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GenerateSummary(context.Background(), testEntries())
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUpstream))
}

func TestClient_GenerateSummary_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GenerateSummary(context.Background(), testEntries())
	assert.Error(t, err)
}
