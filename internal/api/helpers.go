package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/auraapp/aura-server/internal/http/response"
)

// decodeBody decodes a JSON request body into dst and runs validation.
// Returns false after writing the error response when the body is bad.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		s.logger.Debug("invalid request body", "error", err)
		response.BadRequest(w, "Invalid JSON body", s.logger.Logger)
		return false
	}

	if err := s.validator.Validate(dst); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return false
	}

	return true
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
