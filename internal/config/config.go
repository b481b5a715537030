// Package config assembles application configuration from defaults, an
// optional YAML file, and environment variables, in that order. The
// environment always wins so deployments can override a checked-in file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mentora/mentora/internal/llm"
)

// DefaultListenAddr is where the HTTP API listens unless overridden.
const DefaultListenAddr = ":8787"

// DefaultUser identifies the learner when no --user flag or
// MENTORA_USER variable is given.
const DefaultUser = "default"

// Config holds all application configuration.
type Config struct {
	// User is the learner identifier for CLI and TUI sessions.
	User string

	// DBPath is the SQLite database location. Empty means the
	// store's platform default.
	DBPath string

	// ListenAddr is the HTTP API bind address.
	ListenAddr string

	// TavilyAPIKey enables the Tavily resource searcher when set.
	TavilyAPIKey string

	// LLM configures the language model provider layer.
	LLM llm.Config
}

// fileConfig is the YAML shape of ~/.config/mentora/config.yaml.
type fileConfig struct {
	User         string `yaml:"user"`
	DB           string `yaml:"db"`
	ListenAddr   string `yaml:"listen_addr"`
	TavilyAPIKey string `yaml:"tavily_api_key"`
	LLM          struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"llm"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "mentora", "config.yaml"), nil
}

// Load builds the configuration. A missing config file is not an
// error; a malformed one is. Pass "" to use the default file location.
func Load(path string) (*Config, error) {
	cfg := &Config{
		User:       DefaultUser,
		ListenAddr: DefaultListenAddr,
		LLM:        llm.DefaultConfig(),
	}

	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.User != "" {
		cfg.User = fc.User
	}
	if fc.DB != "" {
		cfg.DBPath = fc.DB
	}
	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.TavilyAPIKey != "" {
		cfg.TavilyAPIKey = fc.TavilyAPIKey
	}

	if fc.LLM.Provider != "" {
		cfg.LLM.Provider = fc.LLM.Provider
	}
	switch cfg.LLM.Provider {
	case "anthropic":
		if fc.LLM.APIKey != "" {
			cfg.LLM.Anthropic.APIKey = fc.LLM.APIKey
		}
	case "openai":
		if fc.LLM.APIKey != "" {
			cfg.LLM.OpenAI.APIKey = fc.LLM.APIKey
		}
		if fc.LLM.BaseURL != "" {
			cfg.LLM.OpenAI.BaseURL = fc.LLM.BaseURL
		}
	case "gemini":
		if fc.LLM.APIKey != "" {
			cfg.LLM.Gemini.APIKey = fc.LLM.APIKey
		}
	case "openrouter":
		if fc.LLM.APIKey != "" {
			cfg.LLM.OpenRouter.APIKey = fc.LLM.APIKey
		}
		if fc.LLM.BaseURL != "" {
			cfg.LLM.OpenRouter.BaseURL = fc.LLM.BaseURL
		}
	}
	if fc.LLM.Model != "" {
		cfg.LLM.SetModel(fc.LLM.Model)
	}

	return nil
}

func applyEnv(cfg *Config) {
	cfg.User = getEnv("MENTORA_USER", cfg.User)
	cfg.DBPath = getEnv("MENTORA_DB", cfg.DBPath)
	cfg.ListenAddr = getEnv("MENTORA_LISTEN_ADDR", cfg.ListenAddr)
	cfg.TavilyAPIKey = getEnv("TAVILY_API_KEY", cfg.TavilyAPIKey)

	cfg.LLM = llm.ApplyEnv(cfg.LLM)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
