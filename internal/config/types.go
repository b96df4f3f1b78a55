package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
)

// IdempotencyPolicy selects how the guard decides a ticket was already handled.
type IdempotencyPolicy string

const (
	// PolicyRecency skips a ticket only when a recent internal
	// classification note exists within the trailing window.
	PolicyRecency IdempotencyPolicy = "recency"
	// PolicyAnyInternal skips a ticket as soon as it carries any
	// internal comment at all.
	PolicyAnyInternal IdempotencyPolicy = "any-internal"
)

// ZendeskConfig holds the helpdesk API credentials.
type ZendeskConfig struct {
	Subdomain string `yaml:"subdomain" koanf:"subdomain"`
	Email     string `yaml:"email" koanf:"email"`
	APIToken  string `yaml:"api_token" koanf:"api_token"`
}

// WebhookConfig holds the inbound webhook settings.
type WebhookConfig struct {
	Secret string `yaml:"secret" koanf:"secret"`
	Port   int    `yaml:"port" koanf:"port"`
}

// LLMConfig selects the chat-completion backend. API keys come from the
// conventional environment variables (OPENAI_API_KEY, ANTHROPIC_API_KEY),
// not from the config file.
type LLMConfig struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
}

// VectorConfig holds the taxonomy vector store settings.
type VectorConfig struct {
	Dir        string `yaml:"dir" koanf:"dir"`
	Collection string `yaml:"collection" koanf:"collection"`
	TopK       int    `yaml:"top_k" koanf:"top_k"`
}

// IdempotencyConfig selects the duplicate-processing guard.
type IdempotencyConfig struct {
	Policy        IdempotencyPolicy `yaml:"policy" koanf:"policy"`
	WindowMinutes int               `yaml:"window_minutes" koanf:"window_minutes"`
}

// Config is the top-level triagebot configuration, corresponding to triagebot.yml.
type Config struct {
	Zendesk        ZendeskConfig     `yaml:"zendesk" koanf:"zendesk"`
	Webhook        WebhookConfig     `yaml:"webhook" koanf:"webhook"`
	LLM            LLMConfig         `yaml:"llm" koanf:"llm"`
	EmbeddingModel string            `yaml:"embedding_model" koanf:"embedding_model"`
	Vector         VectorConfig      `yaml:"vector" koanf:"vector"`
	Idempotency    IdempotencyConfig `yaml:"idempotency" koanf:"idempotency"`
	ResponseMap    string            `yaml:"response_map" koanf:"response_map"`
	PromptPath     string            `yaml:"prompt_path" koanf:"prompt_path"`
	StaffIDs       string            `yaml:"staff_ids" koanf:"staff_ids"`
	Debug          bool              `yaml:"debug" koanf:"debug"`
}
