// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	// Timezone of the shops, used for calendar dates and month boundaries.
	Timezone      string `env:"SHOP_TIMEZONE" env-default:"America/Sao_Paulo"`
	StorageDriver string `env:"STORAGE_DRIVER" env-default:"dynamodb"`
	// MemorySeedFile is a JSON file loaded into the store when StorageDriver is memory.
	MemorySeedFile string `env:"MEMORY_SEED_FILE"`

	DynamoDB DynamoDBConfig
	AI       AIConfig
	Auth     AuthConfig
	Payments PaymentsConfig
}

// DynamoDBConfig is local-friendly: DynamoDB Local ignores the credentials
// but the SDK still requires some.
type DynamoDBConfig struct {
	Region          string `env:"AWS_REGION" env-default:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:"local"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"` // e.g. http://dynamodb:8000
}

type AIConfig struct {
	APIKey            string        `env:"OPENAI_API_KEY"`
	BaseURL           string        `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model             string        `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	ChatTimeout       time.Duration `env:"AI_CHAT_TIMEOUT" env-default:"90s"`
	CompletionTimeout time.Duration `env:"AI_COMPLETION_TIMEOUT" env-default:"45s"`
	ToolTimeout       time.Duration `env:"AI_TOOL_TIMEOUT" env-default:"10s"`
	MaxRounds         int           `env:"AI_MAX_ROUNDS" env-default:"5"`
}

type AuthConfig struct {
	// JWTSecret verifies HS256 access tokens issued by the auth provider.
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string `env:"MERCADOPAGO_ACCESS_TOKEN"`
	// Mock accepts 1/true/yes/on/mock.
	Mock string `env:"PAYMENT_GATEWAY_MOCK"`
	// TestPayerEmail is used as payer.email in sandbox when the request has none.
	TestPayerEmail string `env:"MERCADOPAGO_TEST_PAYER_EMAIL"`
}

// MockEnabled reports whether payments are simulated instead of sent to
// Mercado Pago.
func (p PaymentsConfig) MockEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(p.Mock)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

// Load reads the configuration from environment variables. A .env file, when
// present, is already loaded by godotenv/autoload in main.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	if c.StorageDriver != StorageDynamoDB && c.StorageDriver != StorageMemory {
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDynamoDB, StorageMemory, c.StorageDriver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("SHOP_TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.AI.MaxRounds <= 0 {
		return fmt.Errorf("AI_MAX_ROUNDS must be positive, got %d", c.AI.MaxRounds)
	}
	return nil
}

// Location returns the configured shop time zone, UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
