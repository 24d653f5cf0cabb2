package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/auraapp/aura-server/internal/http/response"
)

type createEntryRequest struct {
	Note   string   `json:"note" validate:"omitempty,max=500"`
	TagIDs []string `json:"tagIds" validate:"omitempty,dive,required"`
}

// paginationMeta is the pagination block of the response envelope.
type paginationMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	Limit    int `json:"limit"`
	LastPage int `json:"lastPage"`
}

// handleCreateEntry records a new mood entry for the caller.
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	var req createEntryRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	entry, err := s.entryService.CreateEntry(r.Context(), actor.ProfileID, req.Note, req.TagIDs)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, entry, s.logger.Logger)
}

// handleListFeed returns the public feed, newest first.
func (s *Server) handleListFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.entryService.ListFeed(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, feed, s.logger.Logger)
}

// handleListMyEntries returns one page of the caller's entries.
func (s *Server) handleListMyEntries(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := s.entryService.ListMine(r.Context(), actor.ProfileID, page, limit)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.SuccessWithMeta(w, result.Items, paginationMeta{
		Total:    result.Total,
		Page:     result.Page,
		Limit:    result.Limit,
		LastPage: result.LastPage,
	}, s.logger.Logger)
}

// handleDeleteEntry deletes one of the caller's entries.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		response.BadRequest(w, "Entry ID is required", s.logger.Logger)
		return
	}

	if err := s.entryService.DeleteEntry(r.Context(), actor.ProfileID, entryID); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.NoContent(w)
}
