package api

import (
	"net/http"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/http/response"
)

// handlePersonalInsights returns the caller's tag distributions.
func (s *Server) handlePersonalInsights(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	insights, err := s.insightService.Personal(r.Context(), actor.ProfileID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, insights, s.logger.Logger)
}

// handlePublicInsights returns community-wide distributions and the 7-day
// posting trend.
func (s *Server) handlePublicInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.insightService.Public(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, insights, s.logger.Logger)
}

// handlePersonalSummary returns the caller's AI period summary. The period
// query parameter accepts 3days|week|2weeks|month and defaults to week.
func (s *Server) handlePersonalSummary(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	period, err := domain.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		response.BadRequest(w, "Invalid period: must be one of 3days, week, 2weeks, month", s.logger.Logger)
		return
	}

	result, err := s.summaryService.Generate(r.Context(), actor.ProfileID, period)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, result, s.logger.Logger)
}
