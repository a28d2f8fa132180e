package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PROJECT_NAME", "API_V1_STR", "DATABASE_URL", "SECRET_KEY",
		"ACCESS_TOKEN_EXPIRE_MINUTES", "BCRYPT_COST", "CORS_ORIGINS",
		"LOG_FORMAT", "OTEL_EXPORTER_OTLP_ENDPOINT", "BASE_URL",
		"ENABLE_HTTPS", "TOKEN_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.APIPrefix != "/api/v1" {
		t.Fatalf("APIPrefix default expected '/api/v1', got %q", cfg.APIPrefix)
	}
	if cfg.DatabaseDSN != "grocerywise.db" {
		t.Fatalf("DatabaseDSN default expected 'grocerywise.db', got %q", cfg.DatabaseDSN)
	}
	if cfg.TokenTTLMinutes != 30 {
		t.Fatalf("TokenTTLMinutes default expected 30, got %d", cfg.TokenTTLMinutes)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("BcryptCost default expected 10, got %d", cfg.BcryptCost)
	}
	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("BaseURL default expected 'localhost:8081', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Fatalf("ServerURL default expected 'http://localhost:8081', got %q", cfg.ServerURL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://localhost:9002" {
		t.Fatalf("unexpected CORS defaults: %v", cfg.CORSOrigins)
	}
	if cfg.TokenFile == "" || filepath.Base(cfg.TokenFile) != "auth_token" {
		t.Fatalf("client token file default expected, got %q", cfg.TokenFile)
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("SECRET_KEY", "top")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("API_V1_STR", "api/v2/")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/grocery")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected 'https://example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.TokenTTLMinutes != 5 || cfg.BcryptCost != 4 {
		t.Fatalf("ttl/cost from env: %d/%d", cfg.TokenTTLMinutes, cfg.BcryptCost)
	}
	if cfg.APIPrefix != "/api/v2" {
		t.Fatalf("APIPrefix must be normalized, got %q", cfg.APIPrefix)
	}
	if strings.Join(cfg.CORSOrigins, "|") != "https://a.example|https://b.example" {
		t.Fatalf("CORS origins from env: %v", cfg.CORSOrigins)
	}
	if cfg.DatabaseDSN != "postgres://u:p@db:5432/grocery" {
		t.Fatalf("DatabaseDSN from env, got %q", cfg.DatabaseDSN)
	}
}

func TestNewConfig_InvalidValuesFallback(t *testing.T) {
	clearEnv(t)
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8081
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("BCRYPT_COST", "64")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8081', got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://localhost:8081") {
		t.Fatalf("ServerURL must reflect fallback base, got %q", cfg.ServerURL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("out of range bcrypt cost must fallback to 10, got %d", cfg.BcryptCost)
	}
}
