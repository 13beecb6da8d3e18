package providers

import (
	"context"
	"errors"
)

// ErrChatUnavailable is returned while the chat provider is refusing calls
var ErrChatUnavailable = errors.New("chat provider temporarily unavailable")

// ChatProvider sends one question to a generative-language model in a fresh
// conversation and returns the reply text. The key is used for this call only.
type ChatProvider interface {
	Ask(ctx context.Context, apiKey, question string) (string, error)
}
