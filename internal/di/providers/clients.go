package providers

import (
	"github.com/samber/do/v2"

	"github.com/auraapp/aura-server/internal/ai"
	"github.com/auraapp/aura-server/internal/config"
	"github.com/auraapp/aura-server/internal/images"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/ratelimit"
)

// Per-profile limit on summary generation. Cache hits do not consume
// tokens, so this only bounds calls that reach the model.
const (
	summaryRPS   = 1.0
	summaryBurst = 3
)

// ProvideSummaryGenerator provides the chat completions client used for
// mood summaries.
func ProvideSummaryGenerator(i do.Injector) (ai.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return ai.NewClient(ai.Config{
		Endpoint: cfg.AI.Endpoint,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
	}, log), nil
}

// ProvideImageUploader provides the avatar image host client.
func ProvideImageUploader(i do.Injector) (images.Uploader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewHTTPUploader(images.Config{
		UploadURL: cfg.Images.UploadURL,
		APIKey:    cfg.Images.APIKey,
		Timeout:   cfg.Images.Timeout,
	}, log), nil
}

// SummaryLimiterHandle wraps the keyed limiter with Shutdownable.
type SummaryLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *SummaryLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideSummaryLimiter provides the per-profile summary rate limiter.
func ProvideSummaryLimiter(i do.Injector) (*SummaryLimiterHandle, error) {
	return &SummaryLimiterHandle{
		KeyedRateLimiter: ratelimit.New(summaryRPS, summaryBurst),
	}, nil
}
