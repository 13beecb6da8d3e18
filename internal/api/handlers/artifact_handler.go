package handlers

import (
	"net/http"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

// ArtifactHandler reports which model artifacts were loaded at startup
type ArtifactHandler struct {
	artifacts *entities.ModelArtifacts
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(artifacts *entities.ModelArtifacts) *ArtifactHandler {
	return &ArtifactHandler{artifacts: artifacts}
}

// GetArtifacts handles GET /api/artifacts
func (h *ArtifactHandler) GetArtifacts(w http.ResponseWriter, r *http.Request) {
	if h.artifacts == nil {
		respondWithError(w, http.StatusNotFound, "no model artifacts loaded")
		return
	}
	respondWithJSON(w, http.StatusOK, h.artifacts)
}
