package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"gemini"`

	Serper struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"serper"`

	Game struct {
		DurationSeconds int `yaml:"durationSeconds"`
		HistoryWindow   int `yaml:"historyWindow"`
		MaxFacts        int `yaml:"maxFacts"`
	} `yaml:"game"`
}

// LoadConfig reads the configuration file and applies environment overrides.
// A missing file is not fatal; the service can run from the environment alone
// (a .env file is honored when present).
func LoadConfig(path string) (*Config, error) {
	godotenv.Load()

	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.ApiKey = key
	}
	if key := os.Getenv("SERPER_API_KEY"); key != "" {
		cfg.Serper.ApiKey = key
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Game.DurationSeconds == 0 {
		cfg.Game.DurationSeconds = 300
	}
	if cfg.Game.HistoryWindow == 0 {
		cfg.Game.HistoryWindow = 6
	}
	if cfg.Game.MaxFacts == 0 {
		cfg.Game.MaxFacts = 3
	}

	return &cfg, nil
}

// SessionDuration returns the configured game length.
func (c *Config) SessionDuration() time.Duration {
	return time.Duration(c.Game.DurationSeconds) * time.Second
}
