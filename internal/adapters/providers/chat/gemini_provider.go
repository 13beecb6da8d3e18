package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/zatekoja/chefmate/backend/internal/domain/providers"
	"github.com/zatekoja/chefmate/backend/pkg/config"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-1.5-flash"

	greetingQuestion = "Hello"
	greetingReply    = "Great to meet you. What would you like to know?"
)

// GeminiProvider implements ChatProvider with the Gemini API. Every call opens
// a new conversation seeded with the greeting exchange; nothing carries over
// between calls.
type GeminiProvider struct {
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
}

var _ providers.ChatProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini chat provider
func NewGeminiProvider(cfg *config.GeminiConfig) *GeminiProvider {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	p := &GeminiProvider{
		model:      model,
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}
	p.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Chat provider circuit breaker changed state")
		},
		IsSuccessful: countsAsSuccess,
	})
	return p
}

// Ask sends question in a fresh conversation and returns the reply text
func (p *GeminiProvider) Ask(ctx context.Context, apiKey, question string) (string, error) {
	reply, err := p.breaker.Execute(func() (string, error) {
		return p.ask(ctx, apiKey, question)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", providers.ErrChatUnavailable, err)
	}
	return reply, err
}

func (p *GeminiProvider) ask(ctx context.Context, apiKey, question string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  p.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: p.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	history := []*genai.Content{
		genai.NewContentFromText(greetingQuestion, genai.RoleUser),
		genai.NewContentFromText(greetingReply, genai.RoleModel),
	}
	session, err := client.Chats.Create(ctx, p.model, nil, history)
	if err != nil {
		return "", fmt.Errorf("start chat: %w", err)
	}

	resp, err := session.SendMessage(ctx, genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// countsAsSuccess keeps caller-side failures from tripping the breaker shared
// by every key: a bad key or request, an exhausted per-key quota (429) or a
// cancelled request. Only upstream failures count.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return true
		}
	}
	return false
}
