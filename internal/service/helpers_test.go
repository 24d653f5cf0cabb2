package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
	"github.com/auraapp/aura-server/internal/store/sqlite"
)

// newTestStore opens a sqlite store in a temp dir, cleaned up with the test.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: slog.LevelError, Environment: "development"})
}

// createTestProfile persists a minimal profile for use in tests.
func createTestProfile(t *testing.T, s store.Store, id string) *domain.Profile {
	t.Helper()

	p := &domain.Profile{
		ID:            id,
		AnonymousName: "Tester",
		AvatarID:      "avatar-1",
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, s.CreateProfile(context.Background(), p))
	return p
}
