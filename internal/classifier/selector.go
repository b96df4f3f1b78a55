package classifier

import (
	"context"
	"log"
	"os"

	"github.com/ziadkadry99/triagebot/internal/config"
	"github.com/ziadkadry99/triagebot/internal/embeddings"
	"github.com/ziadkadry99/triagebot/internal/llm"
	"github.com/ziadkadry99/triagebot/internal/vectordb"
)

// Choose picks the classification strategy for the given configuration,
// first viable wins: vector-augmented LLM, plain LLM, rule-based.
// Construction failures of the richer strategies fold into fallback and
// are never surfaced to the webhook caller.
func Choose(cfg *config.Config) Classifier {
	if cfg.Vector.Dir != "" && os.Getenv("OPENAI_API_KEY") != "" {
		c, err := NewVectorLLMFromConfig(cfg)
		if err == nil {
			return c
		}
		if cfg.Debug {
			log.Printf("vector classifier unavailable, falling back: %v", err)
		}
	}

	c, err := NewLLMFromConfig(cfg)
	if err == nil {
		return c
	}
	if cfg.Debug {
		log.Printf("llm classifier unavailable, falling back to rules: %v", err)
	}

	return NewRuleBased()
}

// NewLLMFromConfig constructs the plain LLM strategy from configuration.
func NewLLMFromConfig(cfg *config.Config) (*LLM, error) {
	provider, err := llm.NewProvider(string(cfg.LLM.Provider), cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	return NewLLM(provider, cfg.PromptPath)
}

// NewVectorLLMFromConfig constructs the vector-augmented strategy from
// configuration, loading the persisted taxonomy store.
func NewVectorLLMFromConfig(cfg *config.Config) (*VectorLLM, error) {
	base, err := NewLLMFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	embedder := embeddings.NewOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"), cfg.EmbeddingModel)
	store, err := vectordb.NewChromemStore(cfg.Vector.Collection, embedder)
	if err != nil {
		return nil, err
	}
	if err := store.Load(context.Background(), cfg.Vector.Dir); err != nil {
		return nil, err
	}

	return NewVectorLLM(base, store, cfg.Vector.TopK)
}
