package llm

import "context"

// Role identifies the sender of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is a single chat turn.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest holds the parameters for one chat completion.
// Classification calls are short: MaxTokens defaults to 512 when zero.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// CompletionResponse is the result of a completion call.
type CompletionResponse struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Provider is a chat-completion backend.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the provider name.
	Name() string
}

const defaultMaxTokens = 512
