package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/staffhub/staffhub/internal/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		Addr:          ":8080",
		JWTSecret:     "strongsecret",
		APITimeout:    5 * time.Second,
		DatabasePath:  "staffhub.db",
		TokenDuration: 1 * time.Hour,
		Gateway:       config.GatewayConfig{BaseURL: "https://gw.example.com", Model: "m", Timeout: time.Minute},
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	os.Setenv("STAFFHUB_ENV", "production")
	defer os.Unsetenv("STAFFHUB_ENV")

	cfg := baseConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	os.Setenv("STAFFHUB_ENV", "development")
	defer os.Unsetenv("STAFFHUB_ENV")

	cfg := baseConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_MissingGatewayModel(t *testing.T) {
	cfg := baseConfig()
	cfg.Gateway.Model = ""

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for missing gateway model")
	}
}

func TestValidate_MissingDatabasePath(t *testing.T) {
	cfg := baseConfig()
	cfg.DatabasePath = ""

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for missing database path")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.Gateway.Model == "" {
		t.Fatalf("gateway model default missing")
	}
}

func TestLoadConfig_EnvOverridesAndYAML(t *testing.T) {
	os.Setenv("STAFFHUB_ADDR", ":9999")
	os.Setenv("STAFFHUB_AI_API_KEY", "env-key")
	defer os.Unsetenv("STAFFHUB_ADDR")
	defer os.Unsetenv("STAFFHUB_AI_API_KEY")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	// addr appears in both sources; the environment one must win
	yamlBody := "addr: \":7777\"\ndatabase_path: custom.db\ngateway:\n  model: custom-model\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("addr = %q, env should override the file", cfg.Addr)
	}
	if cfg.DatabasePath != "custom.db" {
		t.Fatalf("database_path = %q", cfg.DatabasePath)
	}
	if cfg.Gateway.Model != "custom-model" {
		t.Fatalf("gateway model = %q", cfg.Gateway.Model)
	}
	// the credential only comes from the environment
	if cfg.Gateway.APIKey != "env-key" {
		t.Fatalf("api key = %q", cfg.Gateway.APIKey)
	}
}
