// Package di provides dependency injection configuration for the Aura server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/auraapp/aura-server/internal/api"
	"github.com/auraapp/aura-server/internal/auth"
	"github.com/auraapp/aura-server/internal/config"
	"github.com/auraapp/aura-server/internal/di/providers"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSeeder)

	// Outbound clients
	do.Provide(injector, providers.ProvideIdentityVerifier)
	do.Provide(injector, providers.ProvideSummaryGenerator)
	do.Provide(injector, providers.ProvideImageUploader)
	do.Provide(injector, providers.ProvideSummaryLimiter)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideEntryService)
	do.Provide(injector, providers.ProvideInsightService)
	do.Provide(injector, providers.ProvideSummaryService)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.Seeder](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.EntryService](injector)
	_ = do.MustInvoke[*service.InsightService](injector)
	_ = do.MustInvoke[*service.SummaryService](injector)

	// Server
	_ = do.MustInvoke[*api.Server](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
