package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	Nats struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Auth struct {
		TokenSecret   string `yaml:"token_secret"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`

	Cors struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Load reads the YAML config file (CONFIG_PATH, default config.yaml),
// substituting ${VAR} placeholders from the environment. A missing file is
// not an error; env-backed defaults are applied either way.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		content := string(data)
		for _, env := range os.Environ() {
			pair := strings.SplitN(env, "=", 2)
			if len(pair) != 2 {
				continue
			}
			content = strings.ReplaceAll(content, "${"+pair[0]+"}", pair[1])
		}
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, fmt.Errorf("error parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.Auth.TokenSecret == "" {
		return nil, fmt.Errorf("token secret is not configured (set TOKEN_SECRET or auth.token_secret)")
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = envOr("PORT", "8080")
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = envOr("MONGO_URI", "mongodb://localhost:27017")
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = envOr("MONGO_DB", "kanmind")
	}
	if cfg.Nats.URL == "" {
		cfg.Nats.URL = envOr("NATS_URL", "")
	}
	if cfg.Auth.TokenSecret == "" {
		cfg.Auth.TokenSecret = os.Getenv("TOKEN_SECRET")
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	if len(cfg.Cors.AllowedOrigins) == 0 {
		cfg.Cors.AllowedOrigins = []string{envOr("FRONTEND_ORIGIN", "http://localhost:4200")}
	}
}

// TokenTTL returns the configured token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
