// Package identity verifies third-party login tokens against an external
// identity provider and resolves them to stable (provider, subject) pairs.
package identity

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/auraapp/aura-server/internal/store"
)

// Identity is the verified result of a provider token check.
type Identity struct {
	// SubjectID is the provider's stable identifier for the account.
	SubjectID string
	// DisplayName is the provider-reported name, may be empty.
	DisplayName string
}

// Verifier checks a provider-issued token and returns the identity it proves.
type Verifier interface {
	Verify(ctx context.Context, provider, idToken string) (*Identity, error)
}

// HTTPVerifier verifies tokens by calling the identity provider's
// verification endpoint.
type HTTPVerifier struct {
	client *resty.Client
}

// NewHTTPVerifier creates a verifier against the given endpoint.
func NewHTTPVerifier(endpoint string, timeout time.Duration) *HTTPVerifier {
	c := resty.New().
		SetBaseURL(endpoint).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &HTTPVerifier{client: c}
}

type verifyRequest struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
}

type verifyResponse struct {
	SubjectID   string `json:"subjectId"`
	DisplayName string `json:"displayName"`
}

// Verify calls the provider endpoint with the raw token. A rejected token
// maps to an unauthorized error so handlers return 401, not 502.
func (v *HTTPVerifier) Verify(ctx context.Context, provider, idToken string) (*Identity, error) {
	reqBody := verifyRequest{Provider: provider, Token: idToken}

	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("")
	if err != nil {
		return nil, store.ErrUpstream.WithMessage("identity provider unreachable").WithCause(err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
		// fall through to decode
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, store.ErrUnauthorized.WithMessage("identity token rejected")
	default:
		return nil, store.ErrUpstream.WithMessage(fmt.Sprintf("identity provider status %d", resp.StatusCode()))
	}

	var vr verifyResponse
	if err := json.Unmarshal(resp.Body(), &vr); err != nil {
		return nil, store.ErrUpstream.WithMessage("decode identity provider response").WithCause(err)
	}
	if vr.SubjectID == "" {
		return nil, store.ErrUpstream.WithMessage("identity provider returned empty subject")
	}

	return &Identity{SubjectID: vr.SubjectID, DisplayName: vr.DisplayName}, nil
}

// StaticVerifier trusts the token as the subject id itself. Used in
// development when no provider endpoint is configured, and in tests.
type StaticVerifier struct{}

// Verify returns the token as the subject id without any remote call.
func (StaticVerifier) Verify(_ context.Context, _, idToken string) (*Identity, error) {
	if idToken == "" {
		return nil, store.ErrUnauthorized.WithMessage("empty identity token")
	}
	return &Identity{SubjectID: idToken}, nil
}
