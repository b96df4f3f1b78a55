package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Zendesk = ZendeskConfig{
		Subdomain: "example",
		Email:     "agent@example.com",
		APIToken:  "token",
	}
	return cfg
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Webhook.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Webhook.Port)
	}
	if cfg.Idempotency.Policy != PolicyRecency || cfg.Idempotency.WindowMinutes != 10 {
		t.Errorf("unexpected idempotency defaults: %+v", cfg.Idempotency)
	}
	if cfg.Vector.TopK != 2 {
		t.Errorf("expected default top_k 2, got %d", cfg.Vector.TopK)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triagebot.yml")
	content := `zendesk:
  subdomain: example
  email: agent@example.com
  api_token: file-token
webhook:
  secret: hunter2
  port: 9000
idempotency:
  policy: any-internal
staff_ids: "101, 202"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Zendesk.Subdomain != "example" || cfg.Zendesk.APIToken != "file-token" {
		t.Errorf("unexpected zendesk config: %+v", cfg.Zendesk)
	}
	if cfg.Webhook.Secret != "hunter2" || cfg.Webhook.Port != 9000 {
		t.Errorf("unexpected webhook config: %+v", cfg.Webhook)
	}
	if cfg.Idempotency.Policy != PolicyAnyInternal {
		t.Errorf("unexpected policy: %s", cfg.Idempotency.Policy)
	}
	if got := cfg.SupportStaffIDs(); !reflect.DeepEqual(got, []int64{101, 202}) {
		t.Errorf("unexpected staff ids: %v", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRIAGE_ZENDESK__API_TOKEN", "env-token")
	t.Setenv("TRIAGE_WEBHOOK__SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Zendesk.APIToken != "env-token" {
		t.Errorf("expected env token, got %q", cfg.Zendesk.APIToken)
	}
	if cfg.Webhook.Secret != "env-secret" {
		t.Errorf("expected env secret, got %q", cfg.Webhook.Secret)
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing zendesk credentials")
	}

	cfg = validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad provider", func(c *Config) { c.LLM.Provider = "watson" }},
		{"bad policy", func(c *Config) { c.Idempotency.Policy = "sometimes" }},
		{"negative window", func(c *Config) { c.Idempotency.WindowMinutes = -1 }},
		{"negative top_k", func(c *Config) { c.Vector.TopK = -2 }},
		{"bad port", func(c *Config) { c.Webhook.Port = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSupportStaffIDsParsing(t *testing.T) {
	cfg := validConfig()

	cfg.StaffIDs = ""
	if got := cfg.SupportStaffIDs(); got != nil {
		t.Errorf("expected nil for empty value, got %v", got)
	}

	cfg.StaffIDs = "25419196369051"
	if got := cfg.SupportStaffIDs(); !reflect.DeepEqual(got, []int64{25419196369051}) {
		t.Errorf("unexpected ids: %v", got)
	}

	cfg.StaffIDs = "1, two, 3,"
	if got := cfg.SupportStaffIDs(); !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Errorf("expected malformed entries dropped, got %v", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triagebot.yml")
	cfg := validConfig()
	cfg.Webhook.Port = 9999

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Webhook.Port != 9999 || loaded.Zendesk.Subdomain != "example" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
