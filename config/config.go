package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config is read from the environment; a local .env file is loaded first in
// main. Messaging (Postgres outbox + RabbitMQ) is optional so the service
// also runs standalone against just the platform API.
type Config struct {
	Server   ServerConfig   `env:", prefix=SERVER_"`
	Upstream UpstreamConfig `env:", prefix=UPSTREAM_"`
	Gemini   GeminiConfig   `env:", prefix=GEMINI_"`
	Database DatabaseConfig `env:", prefix=DB_"`
	RabbitMQ RabbitMQConfig `env:", prefix=RABBITMQ_"`

	MessagingEnabled bool `env:"MESSAGING_ENABLED, default=false"`
}

type ServerConfig struct {
	Port string `env:"PORT, default=8080"`
}

type UpstreamConfig struct {
	BaseURL string `env:"BASE_URL, default=http://127.0.0.1:8000"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL, default=gemini-2.0-flash-lite"`
}

type DatabaseConfig struct {
	Host     string `env:"HOST, default=localhost"`
	Port     string `env:"PORT, default=5432"`
	User     string `env:"USER, default=postgres"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"NAME, default=lestariin_admin"`
}

type RabbitMQConfig struct {
	Host     string `env:"HOST, default=localhost"`
	Port     string `env:"PORT, default=5672"`
	User     string `env:"USER, default=guest"`
	Password string `env:"PASSWORD, default=guest"`
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
