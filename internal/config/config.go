package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the whole process configuration, resolved once at start.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL"   envDefault:"https://api.groq.com/openai/v1"`
	OllamaURL   string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`

	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" envDefault:"30s"`
	LocalTimeout  time.Duration `env:"LOCAL_TIMEOUT"  envDefault:"120s"`
	ProbeTimeout  time.Duration `env:"PROBE_TIMEOUT"  envDefault:"5s"`
	StatusMaxAge  time.Duration `env:"STATUS_MAX_AGE" envDefault:"30s"`

	MaxConcurrentCalls int `env:"MAX_CONCURRENT_CALLS" envDefault:"8"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RemoteTimeout <= 0 || cfg.LocalTimeout <= 0 || cfg.ProbeTimeout <= 0 {
		return Config{}, fmt.Errorf("timeouts must be positive")
	}
	if cfg.MaxConcurrentCalls <= 0 {
		return Config{}, fmt.Errorf("MAX_CONCURRENT_CALLS must be positive")
	}

	return cfg, nil
}
