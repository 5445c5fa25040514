package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Gateway       GatewayConfig `yaml:"gateway"`
}

// GatewayConfig describes the upstream chat-completions gateway used by the
// interview engine. The API key is environment-only and never read from YAML.
type GatewayConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"-"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

const insecureDefaultSecret = "supersecretkey"

// LoadConfig builds the configuration from defaults, then the YAML file at
// path, then the STAFFHUB_* environment. Environment values win over the file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          ":8080",
		JWTSecret:     insecureDefaultSecret,
		APITimeout:    15 * time.Second,
		DatabasePath:  "staffhub.db",
		TokenDuration: 8 * time.Hour,
		Gateway: GatewayConfig{
			BaseURL: "https://ai.gateway.lovable.dev",
			Model:   "google/gemini-2.5-flash",
			Timeout: 60 * time.Second,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	cfg.Addr = getEnv("STAFFHUB_ADDR", cfg.Addr)
	cfg.JWTSecret = getEnv("STAFFHUB_JWT_SECRET", cfg.JWTSecret)
	cfg.DatabasePath = getEnv("STAFFHUB_DATABASE_PATH", cfg.DatabasePath)
	cfg.Gateway.BaseURL = getEnv("STAFFHUB_AI_BASE_URL", cfg.Gateway.BaseURL)
	cfg.Gateway.Model = getEnv("STAFFHUB_AI_MODEL", cfg.Gateway.Model)

	// credential is environment-only; absence is surfaced per-request by the
	// gateway client rather than failing startup
	cfg.Gateway.APIKey = os.Getenv("STAFFHUB_AI_API_KEY")

	return cfg, nil
}

// Validate rejects configurations that are unsafe outside development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.Gateway.Model == "" {
		return fmt.Errorf("gateway model is required")
	}
	if c.JWTSecret == insecureDefaultSecret && os.Getenv("STAFFHUB_ENV") != "development" {
		return fmt.Errorf("jwt_secret must be set outside development")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
