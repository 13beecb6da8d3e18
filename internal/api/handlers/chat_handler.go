package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/pkg/validation"
)

// APIKeyHeader carries the caller's Gemini API key
const APIKeyHeader = "X-Gemini-Api-Key"

const maxChatBodyBytes = 16 << 10

// ChatService defines the chat operations used by the handler
type ChatService interface {
	Ask(ctx context.Context, question, apiKey string) entities.ChatResult
}

// ChatHandler serves the chatbot page
type ChatHandler struct {
	service ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type chatRequest struct {
	Question string `json:"question" validate:"max=2000"`
	APIKey   string `json:"api_key"`
}

// Ask handles POST /api/chat. The key is read from the X-Gemini-Api-Key
// header, falling back to the api_key body field.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := validation.Struct(&payload); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	apiKey := strings.TrimSpace(r.Header.Get(APIKeyHeader))
	if apiKey == "" {
		apiKey = strings.TrimSpace(payload.APIKey)
	}

	result := h.service.Ask(r.Context(), payload.Question, apiKey)
	respondWithJSON(w, chatStatusCode(result.Status), result)
}

func chatStatusCode(status entities.ChatStatus) int {
	switch status {
	case entities.ChatStatusReplied, entities.ChatStatusNoAnswer:
		return http.StatusOK
	case entities.ChatStatusMissingKey:
		return http.StatusBadRequest
	case entities.ChatStatusOffTopic:
		return http.StatusUnprocessableEntity
	case entities.ChatStatusFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
