package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	apperrors "github.com/zatekoja/chefmate/backend/pkg/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, errorResponse{Error: message})
}

// respondWithAppError maps an error to its HTTP status. Internal details are
// logged, not returned.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Unhandled error")
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: string(apperrors.ErrorTypeInternal)})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeNotFound, apperrors.ErrorTypeLocationUnavailable:
		status = http.StatusNotFound
	case apperrors.ErrorTypeExternal:
		status = http.StatusBadGateway
	case apperrors.ErrorTypeSchema:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Dataset schema error")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		respondWithJSON(w, status, errorResponse{Error: "internal server error", Code: string(appErr.Type)})
		return
	}

	respondWithJSON(w, status, errorResponse{Error: appErr.Message, Code: string(appErr.Type)})
}
