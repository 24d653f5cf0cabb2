package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/auraapp/aura-server/internal/api"
	"github.com/auraapp/aura-server/internal/auth"
	"github.com/auraapp/aura-server/internal/config"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/service"
)

// ProvideAPIServer provides the HTTP handler with all routes configured.
func ProvideAPIServer(i do.Injector) (*api.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tokens := do.MustInvoke[*auth.TokenService](i)

	// Seeding runs before the first request is served.
	_ = do.MustInvoke[*Seeder](i)

	authService := do.MustInvoke[*service.AuthService](i)
	profileService := do.MustInvoke[*service.ProfileService](i)
	tagService := do.MustInvoke[*service.TagService](i)
	entryService := do.MustInvoke[*service.EntryService](i)
	insightService := do.MustInvoke[*service.InsightService](i)
	summaryService := do.MustInvoke[*service.SummaryService](i)

	return api.NewServer(
		authService,
		profileService,
		tagService,
		entryService,
		insightService,
		summaryService,
		tokens,
		cfg.Server.CORSOrigins,
		log,
	), nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	handler := do.MustInvoke[*api.Server](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
