// Package config loads the server configuration from a JSON file, a .env
// file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Recipe scanner backends.
const (
	ScannerNone   = ""
	ScannerGemini = "gemini"
	ScannerLocal  = "local"
)

// Config represents the application configuration.
type Config struct {
	Addr           string   `json:"addr"`
	DataDir        string   `json:"data_dir"`
	PublicDir      string   `json:"public_dir"`
	DatabaseDriver string   `json:"database_driver"`
	DatabaseURL    string   `json:"DATABASE_URL"`
	GeminiAPIKey   string   `json:"gemini_api_key"`
	GeminiModel    string   `json:"gemini_model"`
	LocalLLMURL    string   `json:"local_llm_url"`
	LocalLLMModel  string   `json:"local_llm_model"`
	RecipeScanner  string   `json:"recipe_scanner"`
	UserID         string   `json:"user_id"`
	LogLevel       string   `json:"log_level"`
	AllowOrigins   []string `json:"allow_origins"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:           ":8080",
		DataDir:        "data",
		PublicDir:      "public",
		DatabaseDriver: "sqlite",
		DatabaseURL:    "dietapp.db",
		UserID:         "default_user",
		LogLevel:       "info",
		AllowOrigins:   []string{"http://localhost:5173"},
	}
}

var envOverrides = []struct {
	name string
	set  func(*Config, string)
}{
	{"DIETAPP_ADDR", func(c *Config, v string) { c.Addr = v }},
	{"DIETAPP_DATA_DIR", func(c *Config, v string) { c.DataDir = v }},
	{"DIETAPP_PUBLIC_DIR", func(c *Config, v string) { c.PublicDir = v }},
	{"DATABASE_DRIVER", func(c *Config, v string) { c.DatabaseDriver = v }},
	{"DATABASE_URL", func(c *Config, v string) { c.DatabaseURL = v }},
	{"GEMINI_API_KEY", func(c *Config, v string) { c.GeminiAPIKey = v }},
	{"GEMINI_MODEL", func(c *Config, v string) { c.GeminiModel = v }},
	{"LOCAL_LLM_URL", func(c *Config, v string) { c.LocalLLMURL = v }},
	{"LOCAL_LLM_MODEL", func(c *Config, v string) { c.LocalLLMModel = v }},
	{"RECIPE_SCANNER", func(c *Config, v string) { c.RecipeScanner = v }},
	{"DIETAPP_USER", func(c *Config, v string) { c.UserID = v }},
	{"LOG_LEVEL", func(c *Config, v string) { c.LogLevel = v }},
	{"DIETAPP_ALLOW_ORIGINS", func(c *Config, v string) { c.AllowOrigins = splitList(v) }},
}

// Load builds the configuration. Values from a .env file in the working
// directory are exported first, then the JSON file at path is read if it
// exists, and finally environment variables override both.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			o.set(&cfg, v)
		}
	}

	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	cfg.RecipeScanner = strings.ToLower(strings.TrimSpace(cfg.RecipeScanner))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	switch c.RecipeScanner {
	case ScannerNone, ScannerLocal:
	case ScannerGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("gemini recipe scanner needs GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown recipe scanner %q", c.RecipeScanner)
	}
	if c.UserID == "" {
		return errors.New("user id must not be empty")
	}
	if len(c.AllowOrigins) == 0 {
		return errors.New("at least one allowed origin is required")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
