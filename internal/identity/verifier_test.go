package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auraapp/aura-server/internal/store"
)

func TestHTTPVerifier_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"subjectId":"google-12345","displayName":"Ada"}`))
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, 5*time.Second)

	ident, err := v.Verify(context.Background(), "google", "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, "google-12345", ident.SubjectID)
	assert.Equal(t, "Ada", ident.DisplayName)
}

func TestHTTPVerifier_RejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, 5*time.Second)

	_, err := v.Verify(context.Background(), "google", "bad-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUnauthorized))
}

func TestHTTPVerifier_ProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, 5*time.Second)

	_, err := v.Verify(context.Background(), "google", "token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUpstream))
}

func TestHTTPVerifier_EmptySubject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"subjectId":""}`))
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, 5*time.Second)

	_, err := v.Verify(context.Background(), "google", "token")
	assert.Error(t, err)
}

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{}

	ident, err := v.Verify(context.Background(), "google", "subject-42")
	require.NoError(t, err)
	assert.Equal(t, "subject-42", ident.SubjectID)

	_, err = v.Verify(context.Background(), "google", "")
	assert.Error(t, err)
}
