package api

import (
	"net/http"

	"github.com/auraapp/aura-server/internal/http/response"
)

// loginRequest is the body for POST /api/v1/auth/login.
type loginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
	// AnonymousProfileID lets a client that journaled anonymously keep its
	// history when it first logs in. Optional.
	AnonymousProfileID string `json:"anonymousProfileId" validate:"omitempty"`
}

// handleLogin exchanges a provider id token for an access token and profile.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.authService.Login(r.Context(), req.IDToken, req.AnonymousProfileID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, result, s.logger.Logger)
}
