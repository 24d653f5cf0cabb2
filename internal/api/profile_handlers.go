package api

import (
	"io"
	"net/http"

	"github.com/auraapp/aura-server/internal/http/response"
)

// maxAvatarUpload bounds the multipart form memory for avatar uploads (5MB
// plus a little slack for the multipart framing).
const maxAvatarUpload = (5 << 20) + (64 << 10)

type createProfileRequest struct {
	AnonymousName string `json:"anonymousName" validate:"required,max=50"`
	AvatarID      string `json:"avatarId" validate:"required,max=50"`
}

type updateProfileRequest struct {
	AnonymousName string `json:"anonymousName" validate:"required,max=50"`
}

// handleCreateProfile creates a new anonymous profile.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	profile, err := s.profileService.CreateProfile(r.Context(), req.AnonymousName, req.AvatarID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, profile, s.logger.Logger)
}

// handleGetMyProfile returns the caller's profile.
func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	profile, err := s.profileService.GetProfile(r.Context(), actor.ProfileID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, profile, s.logger.Logger)
}

// handleUpdateMyProfile updates the caller's display name.
func (s *Server) handleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	var req updateProfileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	profile, err := s.profileService.UpdateName(r.Context(), actor.ProfileID, req.AnonymousName)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, profile, s.logger.Logger)
}

// handleUploadAvatar accepts a multipart upload (field "file", ≤5MB) and
// replaces the caller's avatar.
func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUpload)
	if err := r.ParseMultipartForm(maxAvatarUpload); err != nil {
		response.BadRequest(w, "Invalid multipart upload (5MB limit)", s.logger.Logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field", s.logger.Logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "Failed to read upload", s.logger.Logger)
		return
	}

	profile, err := s.profileService.UpdateAvatar(r.Context(), actor.ProfileID, header.Filename, data)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, profile, s.logger.Logger)
}
