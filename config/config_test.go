package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Prefix != "/api/v1" || cfg.App.Port != ":8000" {
		t.Fatalf("unexpected app defaults %+v", cfg.App)
	}
	if cfg.LLM.SummaryLength != 150 || cfg.LLM.DefaultCategory != "General" || cfg.LLM.Temperature != 0.7 {
		t.Fatalf("unexpected llm defaults %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout != 60*time.Second || cfg.Scraper.Timeout != 20*time.Second {
		t.Fatalf("unexpected timeouts %v %v", cfg.LLM.Timeout, cfg.Scraper.Timeout)
	}
	if cfg.Auth.Enabled() {
		t.Fatal("auth must be disabled by default")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
app:
  name: Test API
  port: ":9000"
llm:
  provider: openai
  model: gpt-4o-mini
  summary_length: 80
  timeout: 5s
logging:
  level: debug
`)
	t.Setenv("SUMMARIZER_APP_PORT", ":9100")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/news")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "Test API" {
		t.Fatalf("file value lost: %q", cfg.App.Name)
	}
	if cfg.App.Port != ":9100" {
		t.Fatalf("env override lost: %q", cfg.App.Port)
	}
	if cfg.Database.DSN() != "postgres://u:p@db:5432/news" {
		t.Fatalf("legacy DATABASE_URL ignored: %q", cfg.Database.DSN())
	}
	if cfg.LLM.APIKey != "sk-test" || cfg.LLM.SummaryLength != 80 || cfg.LLM.Timeout != 5*time.Second {
		t.Fatalf("unexpected llm config %+v", cfg.LLM)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging level %q", cfg.Logging.Level)
	}
}

func TestLoadAzureLegacyEnv(t *testing.T) {
	t.Setenv("AZURE_OPENAI_API_KEY", "azure-key")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://res.openai.azure.com")
	t.Setenv("AZURE_OPENAI_MODEL", "deployment-1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "azure-key" || cfg.LLM.Endpoint != "https://res.openai.azure.com" || cfg.LLM.Model != "deployment-1" {
		t.Fatalf("unexpected llm config %+v", cfg.LLM)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "mysql url", mutate: func(c *Config) { c.Database.URL = "mysql://x" }, wantErr: "PostgreSQL"},
		{name: "bad endpoint", mutate: func(c *Config) { c.LLM.Endpoint = "res.openai.azure.com" }, wantErr: "HTTP(S)"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "bard" }, wantErr: "unknown llm provider"},
		{name: "auth without user", mutate: func(c *Config) { c.Auth.JWTSecret = "s" }, wantErr: "auth.username"},
	}

	for _, tt := range tests {
		cfg := &Config{LLM: LLMConfig{Provider: "azure"}}
		tt.mutate(cfg)
		err := cfg.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", Sslmode: "disable", Timezone: "UTC"}
	dsn := d.DSN()
	for _, part := range []string{"host=h", "user=u", "password=p", "dbname=n", "port=5432"} {
		if !strings.Contains(dsn, part) {
			t.Fatalf("dsn %q missing %q", dsn, part)
		}
	}
	d.URL = "postgres://x"
	if d.DSN() != "postgres://x" {
		t.Fatalf("url must win, got %q", d.DSN())
	}
}
