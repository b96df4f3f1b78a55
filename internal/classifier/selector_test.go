package classifier

import (
	"testing"

	"github.com/ziadkadry99/triagebot/internal/config"
)

func TestChooseFallsBackToRules(t *testing.T) {
	// No API keys in the environment: both richer strategies must
	// fail construction and fold into the rule-based fallback.
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := config.DefaultConfig()
	cls := Choose(cfg)
	if cls.Name() != "rules" {
		t.Errorf("expected rules fallback, got %s", cls.Name())
	}
}

func TestChooseVectorRequiresStore(t *testing.T) {
	// Key present but no persisted store under vector.dir: vector
	// construction fails and selection moves on to the plain LLM.
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg := config.DefaultConfig()
	cfg.Vector.Dir = t.TempDir()
	cls := Choose(cfg)
	if cls.Name() != "llm" {
		t.Errorf("expected llm after vector fallthrough, got %s", cls.Name())
	}
}

func TestChoosePlainLLM(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg := config.DefaultConfig()
	cfg.Vector.Dir = ""
	cls := Choose(cfg)
	if cls.Name() != "llm" {
		t.Errorf("expected llm, got %s", cls.Name())
	}
}

func TestNewLLMFromConfigMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := config.DefaultConfig()
	if _, err := NewLLMFromConfig(cfg); err == nil {
		t.Error("expected construction error without an API key")
	}
}
