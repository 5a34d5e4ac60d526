package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server      ServerConfig
	OpenAI      OpenAIConfig
	Excel       ExcelConfig
	Auth        AuthConfig
	RedisConfig RedisConfig
	CacheEnable bool `env:"CACHE_ENABLE"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8001"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxUploadBytes  int64         `env:"SERVER_MAX_UPLOAD_BYTES" envDefault:"33554432"`
}

type OpenAIConfig struct {
	// The process refuses to start without a credential.
	APIKey  string `env:"OPENAI_API_KEY,required,notEmpty"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4.1"`
}

type ExcelConfig struct {
	BaseURL string `env:"EXCEL_BASE_URL" envDefault:"https://192.168.3.90:8080"`
	// CACertFile points at a PEM bundle trusted for the Excel upstream,
	// for deployments where it serves a self-signed certificate.
	CACertFile         string `env:"EXCEL_CA_CERT"`
	InsecureSkipVerify bool   `env:"EXCEL_INSECURE_SKIP_VERIFY"`
}

type AuthConfig struct {
	// APIKey, when set, is required as X-API-Key on the business routes.
	// Empty disables authentication.
	APIKey string `env:"API_KEY"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
