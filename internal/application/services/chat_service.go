package services

import (
	"context"
	"strings"
	"time"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/domain/providers"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/observability"
)

// Chat messages shown to the user
const (
	MissingKeyMessage = "Please enter your API key to use the chatbot."
	OffTopicMessage   = "Please ask a cooking-related question."
	NoAnswerMessage   = "I'm sorry, but I couldn't find an answer to your question. Please try asking something else related to cooking."
	FailedMessage     = "An error occurred while getting the response: "
	RepliedMessage    = "Chatbot Response:"
)

// cookingKeywords gate which questions reach the model
var cookingKeywords = []string{
	"recipe", "cook", "cooking", "ingredient", "bake", "fry", "grill",
	"boil", "sauté", "meal", "dish", "food", "prepare",
}

// IsCookingQuestion reports whether question mentions any cooking keyword
func IsCookingQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, kw := range cookingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ChatService answers cooking questions through a chat provider
type ChatService struct {
	provider providers.ChatProvider
	metrics  *observability.Metrics
}

// NewChatService creates a new chat service. metrics may be nil.
func NewChatService(provider providers.ChatProvider, metrics *observability.Metrics) *ChatService {
	return &ChatService{provider: provider, metrics: metrics}
}

// Ask runs one question through the key check, the relevance check and the
// provider. It never returns an error: every outcome is a ChatResult.
func (s *ChatService) Ask(ctx context.Context, question, apiKey string) entities.ChatResult {
	start := time.Now()
	result := s.ask(ctx, question, apiKey)

	observability.RecordChatOutcome(ctx, s.metrics, string(result.Status))
	observability.LoggerFromContext(ctx).Info().
		Str("status", string(result.Status)).
		Int("question_length", len(question)).
		Dur("duration", time.Since(start)).
		Msg("Chat question handled")
	return result
}

func (s *ChatService) ask(ctx context.Context, question, apiKey string) entities.ChatResult {
	if strings.TrimSpace(apiKey) == "" {
		return entities.ChatResult{Status: entities.ChatStatusMissingKey, Message: MissingKeyMessage}
	}
	if !IsCookingQuestion(question) {
		return entities.ChatResult{Status: entities.ChatStatusOffTopic, Message: OffTopicMessage}
	}

	ctx, span := observability.StartSpan(ctx, "chat.ask")
	defer span.End()

	reply, err := s.provider.Ask(ctx, apiKey, question)
	if err != nil {
		span.RecordError(err)
		return entities.ChatResult{Status: entities.ChatStatusFailed, Message: FailedMessage + err.Error()}
	}
	if strings.TrimSpace(reply) == "" {
		return entities.ChatResult{Status: entities.ChatStatusNoAnswer, Message: NoAnswerMessage}
	}
	return entities.ChatResult{Status: entities.ChatStatusReplied, Reply: reply, Message: RepliedMessage}
}
