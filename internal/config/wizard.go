package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard walks through the settings interactively and returns the
// resulting Config. Secrets stay out of the file: the wizard reminds
// the operator which environment variables carry them.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to triagebot! Let's configure your helpdesk.")
	fmt.Println()

	cfg := DefaultConfig()

	subdomainPrompt := promptui.Prompt{
		Label: "Zendesk subdomain",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("subdomain is required")
			}
			return nil
		},
	}
	subdomain, err := subdomainPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("subdomain prompt: %w", err)
	}
	cfg.Zendesk.Subdomain = strings.TrimSpace(subdomain)

	emailPrompt := promptui.Prompt{
		Label: "Zendesk agent email",
		Validate: func(s string) error {
			if !strings.Contains(s, "@") {
				return fmt.Errorf("enter a valid email address")
			}
			return nil
		},
	}
	email, err := emailPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("email prompt: %w", err)
	}
	cfg.Zendesk.Email = strings.TrimSpace(email)

	providerPrompt := promptui.Select{
		Label: "LLM provider (API key read from the environment)",
		Items: []string{"openai", "anthropic", "ollama", "none (rule-based only)"},
	}
	i, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	switch i {
	case 0:
		cfg.LLM = LLMConfig{Provider: ProviderOpenAI, Model: "gpt-4o-mini"}
	case 1:
		cfg.LLM = LLMConfig{Provider: ProviderAnthropic, Model: "claude-haiku-4-5-20251001"}
	case 2:
		cfg.LLM = LLMConfig{Provider: ProviderOllama, Model: "llama3"}
	case 3:
		cfg.LLM = LLMConfig{}
	}

	policyPrompt := promptui.Select{
		Label: "Idempotency policy",
		Items: []string{
			"recency      — skip when a classification note exists within the window",
			"any-internal — skip when the ticket has any internal comment",
		},
	}
	i, _, err = policyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("policy selection: %w", err)
	}
	if i == 1 {
		cfg.Idempotency.Policy = PolicyAnyInternal
	}

	staffPrompt := promptui.Prompt{
		Label:   "Support staff user IDs (comma-separated, optional)",
		Default: "",
		Validate: func(s string) error {
			for _, part := range strings.Split(s, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				if _, err := strconv.ParseInt(part, 10, 64); err != nil {
					return fmt.Errorf("%q is not a numeric user ID", part)
				}
			}
			return nil
		},
	}
	staff, err := staffPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("staff prompt: %w", err)
	}
	cfg.StaffIDs = strings.TrimSpace(staff)

	fmt.Println()
	fmt.Println("Set these environment variables before starting:")
	fmt.Println("  TRIAGE_ZENDESK__API_TOKEN  Zendesk API token")
	fmt.Println("  TRIAGE_WEBHOOK__SECRET     webhook shared secret (optional)")
	switch cfg.LLM.Provider {
	case ProviderOpenAI:
		fmt.Println("  OPENAI_API_KEY             OpenAI API key")
	case ProviderAnthropic:
		fmt.Println("  ANTHROPIC_API_KEY          Anthropic API key")
	}

	return cfg, nil
}
