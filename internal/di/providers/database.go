package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/auraapp/aura-server/internal/config"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/service"
	"github.com/auraapp/aura-server/internal/store"
	"github.com/auraapp/aura-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := cfg.DatabasePath()
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// Seeder marks that the system tag catalog has been written.
type Seeder struct{}

// ProvideSeeder inserts the built-in emotion and activity tags, skipping
// any that already exist.
func ProvideSeeder(i do.Injector) (*Seeder, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := service.SeedSystemTags(context.Background(), storeHandle, log); err != nil {
		return nil, err
	}

	return &Seeder{}, nil
}
