package embeddings

import (
	"context"

	chromem "github.com/philippgille/chromem-go"
)

// Embedder generates text embeddings for semantic search.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the embedding model identifier.
	Name() string
}

// ToChromemFunc adapts an Embedder to a chromem.EmbeddingFunc, which
// embeds one text at a time.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vecs, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vecs) == 0 {
			return nil, nil
		}
		return vecs[0], nil
	}
}
