// Package config loads ecocart settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/payment"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/promo"
)

// Config holds all ecocart configuration.
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Payment    PaymentConfig     `yaml:"payment"`
	Promotions map[string]string `yaml:"promotions"`
	Logging    LoggingConfig     `yaml:"logging"`
}

// ServerConfig configures the listeners.
type ServerConfig struct {
	GRPCPort    string `yaml:"grpc_port"`
	MetricsPort string `yaml:"metrics_port"`
}

// PaymentConfig configures the simulated gateway and the checkout timeout.
type PaymentConfig struct {
	Delay          time.Duration `yaml:"delay"`
	Timeout        time.Duration `yaml:"timeout"`
	DeclineMethods []string      `yaml:"decline_methods"`
	LimitCents     int64         `yaml:"limit_cents"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	promotions := make(map[string]string, len(promo.DefaultRatios))
	for code, ratio := range promo.DefaultRatios {
		promotions[code] = ratio
	}
	return &Config{
		Server: ServerConfig{
			GRPCPort:    "50210",
			MetricsPort: "9464",
		},
		Payment: PaymentConfig{
			Delay:          2 * time.Second,
			Timeout:        10 * time.Second,
			DeclineMethods: []string{"declined-card"},
		},
		Promotions: promotions,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last and the result is
// validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := Parse(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. A promotions section replaces the default
// table rather than merging with it.
func Parse(data []byte, cfg *Config) error {
	var raw struct {
		Promotions map[string]string `yaml:"promotions"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if raw.Promotions != nil {
		cfg.Promotions = nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		c.Server.GRPCPort = port
	}
	if port := strings.TrimSpace(os.Getenv("METRICS_PORT")); port != "" {
		c.Server.MetricsPort = port
	}
	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.GRPCPort == "" {
		return fmt.Errorf("server.grpc_port is required")
	}
	if c.Payment.Delay < 0 {
		return fmt.Errorf("payment.delay must not be negative")
	}
	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("payment.timeout must be positive")
	}
	if c.Payment.LimitCents < 0 {
		return fmt.Errorf("payment.limit_cents must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.PromotionTable(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// PromotionTable builds the promotion table from the configured ratios.
func (c *Config) PromotionTable() (*promo.Table, error) {
	table, err := promo.NewTable(c.Promotions)
	if err != nil {
		return nil, fmt.Errorf("promotions: %w", err)
	}
	return table, nil
}

// Gateway builds the simulated payment gateway described by the payment
// section.
func (c *Config) Gateway(logger *zap.Logger) *payment.Simulated {
	if logger == nil {
		logger = zap.NewNop()
	}
	return payment.NewSimulated(
		payment.WithDelay(c.Payment.Delay),
		payment.WithDeclineMethods(c.Payment.DeclineMethods...),
		payment.WithLimit(c.Payment.LimitCents),
		payment.WithGatewayLogger(logger),
	)
}
