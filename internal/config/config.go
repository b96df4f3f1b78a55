package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. Env keys use a double underscore for
// nesting: TRIAGE_ZENDESK__API_TOKEN -> zendesk.api_token.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("TRIAGE_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "TRIAGE_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderOpenAI:    true,
	ProviderAnthropic: true,
	ProviderOllama:    true,
}

// validPolicies is the set of recognized idempotency policy values.
var validPolicies = map[IdempotencyPolicy]bool{
	PolicyRecency:     true,
	PolicyAnyInternal: true,
}

// Validate checks that the configuration contains valid values. Missing
// Zendesk credentials are a hard error: the service cannot do anything
// without them.
func (c *Config) Validate() error {
	if c.Zendesk.Subdomain == "" || c.Zendesk.Email == "" || c.Zendesk.APIToken == "" {
		return fmt.Errorf("zendesk subdomain, email and api_token are required")
	}

	if c.LLM.Provider != "" && !validProviders[c.LLM.Provider] {
		return fmt.Errorf("invalid llm provider %q: must be one of openai, anthropic, ollama", c.LLM.Provider)
	}

	if c.Idempotency.Policy != "" && !validPolicies[c.Idempotency.Policy] {
		return fmt.Errorf("invalid idempotency policy %q: must be recency or any-internal", c.Idempotency.Policy)
	}

	if c.Idempotency.WindowMinutes < 0 {
		return fmt.Errorf("idempotency window_minutes must be non-negative")
	}

	if c.Vector.TopK < 0 {
		return fmt.Errorf("vector top_k must be non-negative")
	}

	if c.Webhook.Port <= 0 || c.Webhook.Port > 65535 {
		return fmt.Errorf("invalid webhook port %d", c.Webhook.Port)
	}

	return nil
}

// SupportStaffIDs parses the comma-separated staff_ids value into author IDs.
// Malformed entries are dropped rather than failing the whole list.
func (c *Config) SupportStaffIDs() []int64 {
	var ids []int64
	for _, part := range strings.Split(c.StaffIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
