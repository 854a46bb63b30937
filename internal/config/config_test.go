package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_YAMLAndEnvFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
server:
  host: 127.0.0.1
  port: 9090
fetcher:
  userAgent: TestBot/1.0
  timeoutMs: 5000
robots:
  respect: true
ratelimit:
  perMinute: 10
retention:
  enabled: true
  reportDays: 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := Load(path)

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Fetcher.UserAgent != "TestBot/1.0" || cfg.Fetcher.TimeoutMs != 5000 {
		t.Fatalf("unexpected fetcher config: %+v", cfg.Fetcher)
	}
	if !cfg.Robots.Respect {
		t.Fatal("expected robots.respect to be true")
	}
	if cfg.RateLimit.PerMinute != 10 {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if cfg.Retention.ReportDays != 30 {
		t.Fatalf("unexpected retention: %+v", cfg.Retention)
	}

	// Secrets absent from YAML come from the environment.
	if cfg.Database.DSN != "postgres://env/db" {
		t.Fatalf("expected DSN from env, got %q", cfg.Database.DSN)
	}
	if cfg.Insights.OpenAI.APIKey != "sk-env" {
		t.Fatalf("expected OpenAI key from env, got %q", cfg.Insights.OpenAI.APIKey)
	}
}

func TestLoad_YAMLWinsOverEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
database:
  dsn: postgres://yaml/db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg := Load(path)
	if cfg.Database.DSN != "postgres://yaml/db" {
		t.Fatalf("yaml value should win, got %q", cfg.Database.DSN)
	}
}
