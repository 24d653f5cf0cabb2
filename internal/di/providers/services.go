package providers

import (
	"github.com/samber/do/v2"

	"github.com/auraapp/aura-server/internal/ai"
	"github.com/auraapp/aura-server/internal/auth"
	"github.com/auraapp/aura-server/internal/identity"
	"github.com/auraapp/aura-server/internal/images"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/service"
)

// ProvideAuthService provides the login and identity-linking service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	verifier := do.MustInvoke[identity.Verifier](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle, tokens, verifier, log), nil
}

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	uploader := do.MustInvoke[images.Uploader](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle, uploader, log), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle, log), nil
}

// ProvideEntryService provides the mood entry service.
func ProvideEntryService(i do.Injector) (*service.EntryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEntryService(storeHandle, log), nil
}

// ProvideInsightService provides the insight aggregation service.
func ProvideInsightService(i do.Injector) (*service.InsightService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInsightService(storeHandle, log), nil
}

// ProvideSummaryService provides the AI summary service.
func ProvideSummaryService(i do.Injector) (*service.SummaryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	generator := do.MustInvoke[ai.Generator](i)
	limiter := do.MustInvoke[*SummaryLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSummaryService(storeHandle, generator, limiter.KeyedRateLimiter, log), nil
}
