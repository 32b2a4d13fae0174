package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultModel        = "claude-sonnet-4-5-20250929"
	DefaultMaxTokens    = 4096
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 18520
	DefaultBufSize      = 100
	DefaultJurisdiction = "CA"
)

type Config struct {
	Assistant AssistantConfig `json:"assistant"`
	Provider  ProviderConfig  `json:"provider"`
	Channels  ChannelsConfig  `json:"channels"`
	Gateway   GatewayConfig   `json:"gateway"`
	Storage   StorageConfig   `json:"storage"`
}

type AssistantConfig struct {
	Model        string `json:"model"`
	MaxTokens    int    `json:"maxTokens"`
	Jurisdiction string `json:"jurisdiction"`
}

type ProviderConfig struct {
	APIKey  string `json:"apiKey"`
	BaseURL string `json:"baseUrl,omitempty"`
}

type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
	Web      WebConfig      `json:"web"`
}

type TelegramConfig struct {
	Enabled   bool     `json:"enabled"`
	Token     string   `json:"token"`
	AllowFrom []string `json:"allowFrom"`
}

type WebConfig struct {
	Enabled   bool     `json:"enabled"`
	AllowFrom []string `json:"allowFrom"`
}

type GatewayConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type StorageConfig struct {
	Dir    string `json:"dir"`
	DBPath string `json:"dbPath,omitempty"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Assistant: AssistantConfig{
			Model:        DefaultModel,
			MaxTokens:    DefaultMaxTokens,
			Jurisdiction: DefaultJurisdiction,
		},
		Provider: ProviderConfig{},
		Channels: ChannelsConfig{
			Web: WebConfig{Enabled: true},
		},
		Gateway: GatewayConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Storage: StorageConfig{
			Dir: filepath.Join(home, ".lawclerk", "storage"),
		},
	}
}

func ConfigDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".lawclerk")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if key := os.Getenv("LAWCLERK_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = key
	}
	if url := os.Getenv("LAWCLERK_BASE_URL"); url != "" {
		cfg.Provider.BaseURL = url
	}
	if url := os.Getenv("ANTHROPIC_BASE_URL"); url != "" && cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = url
	}
	if model := os.Getenv("LAWCLERK_MODEL"); model != "" {
		cfg.Assistant.Model = model
	}
	if token := os.Getenv("LAWCLERK_TELEGRAM_TOKEN"); token != "" {
		cfg.Channels.Telegram.Token = token
	}
	if dir := os.Getenv("LAWCLERK_STORAGE_DIR"); dir != "" {
		cfg.Storage.Dir = dir
	}
	if dbPath := os.Getenv("LAWCLERK_DB_PATH"); dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if j := os.Getenv("LAWCLERK_JURISDICTION"); j != "" {
		cfg.Assistant.Jurisdiction = j
	}

	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = DefaultConfig().Storage.Dir
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = filepath.Join(ConfigDir(), "data", "casefiles.db")
	}
	if cfg.Assistant.Jurisdiction == "" {
		cfg.Assistant.Jurisdiction = DefaultJurisdiction
	}

	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}
