package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/triagebot/internal/vectordb"
)

// Retriever is the slice of the vector store the classifier needs.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]vectordb.SearchResult, error)
}

// VectorLLM augments the LLM classifier with taxonomy snippets
// retrieved by semantic search before the completion call.
type VectorLLM struct {
	llm       *LLM
	retriever Retriever
	topK      int
}

// NewVectorLLM creates the vector-augmented classifier.
func NewVectorLLM(llm *LLM, retriever Retriever, topK int) (*VectorLLM, error) {
	if llm == nil {
		return nil, errors.New("vector classifier requires an llm classifier")
	}
	if retriever == nil {
		return nil, errors.New("vector classifier requires a retriever")
	}
	if topK <= 0 {
		topK = 2
	}
	return &VectorLLM{llm: llm, retriever: retriever, topK: topK}, nil
}

func (c *VectorLLM) Name() string { return "vector" }

func (c *VectorLLM) Classify(ctx context.Context, subject, conversation string) (Result, error) {
	query := fmt.Sprintf("Subject: %s\n\n%s", subject, conversation)

	docs, err := c.retriever.Search(ctx, query, c.topK)
	if err != nil {
		return Result{}, err
	}

	user := fmt.Sprintf(
		"You have access to the following relevant knowledge snippets (semantic matches):\n\n"+
			"%s\n\n"+
			"Now classify the incoming ticket based on these snippets and the message below."+
			" Prioritize refund over other intents; if uncertain, reply miscellaneous.\n\n"+
			"TICKET:\n%s",
		formatContext(docs), query)

	return c.llm.complete(ctx, user)
}

// formatContext renders retrieved snippets as a numbered block with
// optional tag markers.
func formatContext(docs []vectordb.SearchResult) string {
	lines := make([]string, 0, len(docs))
	for i, d := range docs {
		tag := ""
		if d.Tag != "" {
			tag = fmt.Sprintf(" (tag: %s)", d.Tag)
		}
		lines = append(lines, fmt.Sprintf("[%d]%s %s", i+1, tag, d.Content))
	}
	return strings.Join(lines, "\n")
}
