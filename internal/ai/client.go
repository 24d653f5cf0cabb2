// Package ai generates mood summaries through an OpenAI-compatible chat
// completions endpoint.
package ai

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

const (
	// DefaultSummary is returned when the user has too few entries for a
	// meaningful digest. It is never cached.
	DefaultSummary = "Keep recording your moments to unlock personalized insights. I'm here to listen whenever you're ready."

	// FallbackSummary is returned when the upstream model call fails.
	// It is never cached either, so a later request can retry.
	FallbackSummary = "I'm having a little trouble summarizing your thoughts right now, but I'm here for you. Keep recording your moments!"

	// MinEntriesForSummary is the smallest entry count worth summarizing.
	MinEntriesForSummary = 3

	summaryTemperature = 0.7
	summaryMaxTokens   = 200
)

// Generator produces a summary text for a set of mood entries.
type Generator interface {
	GenerateSummary(ctx context.Context, entries []*domain.MoodEntry) (string, error)
}

// Client calls a chat completions API to generate summaries.
type Client struct {
	client *resty.Client
	model  string
	log    *logger.Logger
}

// Config holds the settings for the chat completions endpoint.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// NewClient creates a summary generator against the configured endpoint.
func NewClient(cfg Config, log *logger.Logger) *Client {
	c := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &Client{client: c, model: cfg.Model, log: log}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateSummary asks the model for a 2-4 sentence digest of the entries.
// Callers are expected to handle the short-history case themselves; this
// method always performs the upstream call.
func (c *Client) GenerateSummary(ctx context.Context, entries []*domain.MoodEntry) (string, error) {
	c.log.Debug("generating mood summary", "entries", len(entries))

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(entries)},
		},
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("")
	if err != nil {
		return "", store.ErrUpstream.WithMessage("summary model unreachable").WithCause(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", store.ErrUpstream.WithMessage(fmt.Sprintf("summary model status %d", resp.StatusCode()))
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", store.ErrUpstream.WithMessage("decode summary model response").WithCause(err)
	}
	if len(cr.Choices) == 0 {
		return "", store.ErrUpstream.WithMessage("summary model returned no choices")
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
