package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgconfig "github.com/zahrahiu/bloomcart/pkg/config"
	"github.com/zahrahiu/bloomcart/pkg/tracing"
)

// Cart store backends.
const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"
)

// Config holds all configuration for the bloomcart server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Pricing
	Currency    string `env:"CURRENCY" envDefault:"MAD"`
	DeliveryFee string `env:"DELIVERY_FEE" envDefault:"20.00"`

	// Cart store backend: memory or redis
	CartStore string `env:"CART_STORE" envDefault:"memory"`

	// Redis (used when CART_STORE=redis)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// External product feed; empty disables the feed client and the catalog
	// serves only seeded data.
	FeedURL     string        `env:"FEED_URL" envDefault:""`
	FeedTimeout time.Duration `env:"FEED_TIMEOUT" envDefault:"10s"`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartStore != CartStoreMemory && c.CartStore != CartStoreRedis {
		return fmt.Errorf("invalid cart store %q: must be %q or %q", c.CartStore, CartStoreMemory, CartStoreRedis)
	}
	if _, err := c.ParsedDeliveryFee(); err != nil {
		return err
	}
	return nil
}

// ParsedDeliveryFee returns the delivery fee as a decimal.
func (c *Config) ParsedDeliveryFee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(c.DeliveryFee)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid delivery fee %q: %w", c.DeliveryFee, err)
	}
	if fee.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("delivery fee must not be negative: %s", c.DeliveryFee)
	}
	return fee, nil
}

// CartTTLDuration returns the cart TTL as a duration.
func (c *Config) CartTTLDuration() time.Duration {
	return time.Duration(c.CartTTL) * time.Hour
}

// TracingConfig builds the tracer configuration for this process.
func (c *Config) TracingConfig() tracing.Config {
	cfg := tracing.DefaultConfig("bloomcart")
	cfg.Enabled = c.TracingEnabled
	cfg.Environment = c.Environment
	cfg.OTLPEndpoint = c.TracingEndpoint
	cfg.SampleRate = c.TracingSampleRate
	return cfg
}
