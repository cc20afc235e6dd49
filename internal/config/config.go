package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	FeedURL       string               `json:"feedUrl"`
	PollMinutes   int                  `json:"pollMinutes"`
	DataDir       string               `json:"dataDir"`
	Server        ServerSettings       `json:"server"`
	Logger        LoggerSettings       `json:"logger"`
	Notifications NotificationSettings `json:"notifications"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type LoggerSettings struct {
	Save         bool   `json:"save"`
	ConsoleLevel string `json:"consoleLevel"`
	FileLevel    string `json:"fileLevel"`
	AutoClear    bool   `json:"autoClear"`
}

type NotificationSettings struct {
	Enabled          bool   `json:"enabled"`
	DiscordBotToken  string `json:"discordBotToken"`
	DiscordChannelID string `json:"discordChannelId"`
	GrowthThreshold  int    `json:"growthThreshold"`
}

func DefaultConfig() Config {
	return Config{
		PollMinutes: 5,
		DataDir:     "data",
		Server: ServerSettings{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Logger: LoggerSettings{
			Save:         true,
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
			AutoClear:    true,
		},
		Notifications: NotificationSettings{
			Enabled:         false,
			GrowthThreshold: 50,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	validateConfig(&cfg)
	return &cfg, nil
}

func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func validateConfig(cfg *Config) {
	if cfg.PollMinutes < 1 {
		cfg.PollMinutes = 1
	} else if cfg.PollMinutes > 60 {
		cfg.PollMinutes = 60
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		cfg.Server.Port = 5000
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if cfg.Notifications.GrowthThreshold <= 0 {
		cfg.Notifications.GrowthThreshold = 50
	}
}
