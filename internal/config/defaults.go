package config

// DefaultConfig returns a Config with sensible defaults. Zendesk
// credentials have no default and must come from the config file or
// the TRIAGE_* environment.
func DefaultConfig() *Config {
	return &Config{
		Webhook: WebhookConfig{
			Port: 8080,
		},
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
			Model:    "gpt-4o-mini",
		},
		EmbeddingModel: "text-embedding-3-small",
		Vector: VectorConfig{
			Dir:        "data/vectordb",
			Collection: "ticket_taxonomy",
			TopK:       2,
		},
		Idempotency: IdempotencyConfig{
			Policy:        PolicyRecency,
			WindowMinutes: 10,
		},
	}
}
