package ai

import "context"

// Message roles accepted by the completion upstream.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged turn of a chat conversation.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest describes a single chat-completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// CompletionClient sends chat-completion requests to a remote text-generation
// endpoint and returns the generated text.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
