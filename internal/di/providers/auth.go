package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/auraapp/aura-server/internal/auth"
	"github.com/auraapp/aura-server/internal/config"
	"github.com/auraapp/aura-server/internal/identity"
	"github.com/auraapp/aura-server/internal/logger"
)

// identityTimeout bounds calls to the identity provider's verify endpoint.
const identityTimeout = 10 * time.Second

// AuthKey wraps the authentication key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the authentication key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	// Update config with the loaded key
	cfg.Auth.AccessTokenKey = key

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(authKey), cfg.Auth.AccessTokenDuration)
}

// ProvideIdentityVerifier provides the identity token verifier. Without a
// configured provider URL the server falls back to the static verifier,
// which trusts the raw token as the subject id. That mode is for local
// development only.
func ProvideIdentityVerifier(i do.Injector) (identity.Verifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.IdentityProviderURL == "" {
		log.Warn("No identity provider configured, using static verifier")
		return identity.StaticVerifier{}, nil
	}

	log.Info("Identity provider configured", "url", cfg.Auth.IdentityProviderURL)
	return identity.NewHTTPVerifier(cfg.Auth.IdentityProviderURL, identityTimeout), nil
}
