package api

import (
	"net/http"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/http/response"
)

type createTagRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Type  string `json:"type" validate:"required,oneof=EMOTION ACTIVITY"`
	Emoji string `json:"emoji" validate:"omitempty,max=8"`
}

// handleCreateTag creates a custom tag owned by the caller.
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	var req createTagRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	tag, err := s.tagService.CreateCustomTag(r.Context(), actor.ProfileID, req.Name, req.Emoji, domain.TagType(req.Type))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, tag, s.logger.Logger)
}

// handleListSystemTags returns the built-in tag catalog.
func (s *Server) handleListSystemTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tagService.ListSystemTags(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, tags, s.logger.Logger)
}

// handleListMyTags returns the caller's custom tags.
func (s *Server) handleListMyTags(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	tags, err := s.tagService.ListCustomTags(r.Context(), actor.ProfileID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, tags, s.logger.Logger)
}
