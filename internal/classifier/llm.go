package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/ziadkadry99/triagebot/internal/llm"
)

// LLM classifies tickets with a chat-completion call. Transport errors
// surface to the caller; unparseable model output degrades to a
// low-confidence miscellaneous result.
type LLM struct {
	provider     llm.Provider
	systemPrompt string
}

// NewLLM creates an LLM classifier on the given provider, loading the
// system prompt from promptPath (built-in fallback when unreadable).
func NewLLM(provider llm.Provider, promptPath string) (*LLM, error) {
	if provider == nil {
		return nil, errors.New("llm classifier requires a provider")
	}
	return &LLM{
		provider:     provider,
		systemPrompt: loadSystemPrompt(promptPath),
	}, nil
}

func (c *LLM) Name() string { return "llm" }

func (c *LLM) Classify(ctx context.Context, subject, conversation string) (Result, error) {
	user := fmt.Sprintf("Subject: %s\n\n%s", subject, conversation)
	return c.complete(ctx, user)
}

// complete runs the completion with the given user turn and parses the
// model output.
func (c *LLM) complete(ctx context.Context, userContent string) (Result, error) {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: c.systemPrompt},
			{Role: llm.RoleUser, Content: userContent},
		},
		Temperature: 0,
	})
	if err != nil {
		return Result{}, err
	}

	obj, err := extractJSONObject(resp.Content)
	if err != nil {
		return Result{
			Classification: CategoryMiscellaneous,
			Confidence:     60,
			Reasoning:      "LLM output parsing fallback",
		}, nil
	}
	return resultFromObject(obj), nil
}
