// Package config handles loading and validation of function configuration
// from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/kobbyjust/feedback-ingest/logger"
	"github.com/spf13/viper"
)

// Environment represents the function's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// EmailProvider selects the notification backend.
type EmailProvider string

const (
	ProviderSES    EmailProvider = "ses"
	ProviderResend EmailProvider = "resend"
)

// StorageConfig holds the names of the two storage collaborators.
type StorageConfig struct {
	TableName  string `mapstructure:"TABLE_NAME"`
	BucketName string `mapstructure:"BUCKET_NAME"`
}

// EmailConfig holds configuration for the admin notification email.
// The admin address is both sender and recipient (self-notification).
type EmailConfig struct {
	AdminAddress string        `mapstructure:"ADMIN_ADDRESS"`
	Provider     EmailProvider `mapstructure:"PROVIDER"`
	ResendAPIKey string        `mapstructure:"RESEND_API_KEY"`
}

// Config is the top-level configuration, resolved once at process init and
// treated as read-only for the lifetime of the process.
type Config struct {
	Environment Environment   `mapstructure:"ENVIRONMENT"`
	Region      string        `mapstructure:"REGION"`
	Storage     StorageConfig `mapstructure:"STORAGE"`
	Email       EmailConfig   `mapstructure:"EMAIL"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
}

// IsProduction returns true if the function is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals into the Config struct, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE.TABLE_NAME", "Feedback-Kobina")
	v.SetDefault("STORAGE.BUCKET_NAME", "feedback-images-kobbyjust")
	v.SetDefault("EMAIL.ADMIN_ADDRESS", "sagarinokoeaws1@gmail.com")
	v.SetDefault("EMAIL.PROVIDER", ProviderSES)
	v.SetDefault("EMAIL.RESEND_API_KEY", "")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"ENVIRONMENT", "ENVIRONMENT"},
		{"REGION", "REGION"},
		{"LOG_LEVEL", "LOG_LEVEL"},
		{"STORAGE.TABLE_NAME", "TABLE_NAME"},
		{"STORAGE.BUCKET_NAME", "BUCKET_NAME"},
		{"EMAIL.ADMIN_ADDRESS", "ADMIN_EMAIL"},
		{"EMAIL.PROVIDER", "EMAIL_PROVIDER"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Environment,
		"region", cfg.Region,
		"table", cfg.Storage.TableName,
		"bucket", cfg.Storage.BucketName,
		"admin", logger.MaskEmail(cfg.Email.AdminAddress),
		"emailProvider", cfg.Email.Provider,
	)

	return &cfg, nil
}

// validate fails fast on configuration the handler cannot operate without.
func (c *Config) validate() error {
	if c.Storage.TableName == "" {
		return fmt.Errorf("TABLE_NAME must not be empty")
	}
	if c.Storage.BucketName == "" {
		return fmt.Errorf("BUCKET_NAME must not be empty")
	}
	if c.Email.AdminAddress == "" {
		return fmt.Errorf("ADMIN_EMAIL must not be empty")
	}
	switch c.Email.Provider {
	case ProviderSES:
	case ProviderResend:
		if c.Email.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required when EMAIL_PROVIDER is resend")
		}
	default:
		return fmt.Errorf("EMAIL_PROVIDER must be one of: ses, resend (got %q)", c.Email.Provider)
	}
	return nil
}
