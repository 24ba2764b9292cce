package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Insights InsightsConfig `yaml:"insights"`
	Matching MatchingConfig `yaml:"matching"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type InsightsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	TopN      int    `yaml:"top_n"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type MatchingConfig struct {
	DefaultTopN   int               `yaml:"default_top_n"`
	MaxTopN       int               `yaml:"max_top_n"`
	MaxCandidates int               `yaml:"max_candidates"`
	Workers       int               `yaml:"workers"`
	Weights       scoring.WeightSet `yaml:"weights"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) InsightTimeout() time.Duration {
	return time.Duration(c.Insights.TimeoutMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Insights: InsightsConfig{
			Enabled:   true,
			Model:     "gemini-2.5-flash",
			TopN:      5,
			TimeoutMs: 20000,
		},
		Matching: MatchingConfig{
			DefaultTopN:   10,
			MaxTopN:       100,
			MaxCandidates: 5000,
			Workers:       8,
			Weights:       scoring.DefaultWeights(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Matching.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("matching weights: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FITMENT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FITMENT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("FITMENT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("FITMENT_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v, ok := os.LookupEnv("FITMENT_HERMES_URL"); ok {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("FITMENT_INSIGHTS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Insights.Enabled = b
		}
	}
	if v := os.Getenv("FITMENT_INSIGHTS_API_KEY"); v != "" {
		cfg.Insights.APIKey = v
	}
	if v := os.Getenv("FITMENT_INSIGHTS_MODEL"); v != "" {
		cfg.Insights.Model = v
	}
	if v := os.Getenv("FITMENT_MAX_CANDIDATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Matching.MaxCandidates = n
		}
	}
	if v := os.Getenv("FITMENT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Matching.Workers = n
		}
	}
	if v := os.Getenv("FITMENT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FITMENT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
