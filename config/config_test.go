package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobbyjust/feedback-ingest/logger"
)

func init() {
	logger.IsTest = true
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "Feedback-Kobina", cfg.Storage.TableName)
	assert.Equal(t, "feedback-images-kobbyjust", cfg.Storage.BucketName)
	assert.Equal(t, "sagarinokoeaws1@gmail.com", cfg.Email.AdminAddress)
	assert.Equal(t, ProviderSES, cfg.Email.Provider)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("REGION", "eu-west-1")
	t.Setenv("TABLE_NAME", "Feedback-Prod")
	t.Setenv("BUCKET_NAME", "feedback-prod-bucket")
	t.Setenv("ADMIN_EMAIL", "ops@example.com")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "Feedback-Prod", cfg.Storage.TableName)
	assert.Equal(t, "feedback-prod-bucket", cfg.Storage.BucketName)
	assert.Equal(t, "ops@example.com", cfg.Email.AdminAddress)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_ResendProviderRequiresAPIKey(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "resend")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")

	t.Setenv("RESEND_API_KEY", "re_test_key")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderResend, cfg.Email.Provider)
}

func TestLoadConfig_UnknownProviderRejected(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "smtp")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_PROVIDER")
}

func TestValidate_EmptyTableNameRejected(t *testing.T) {
	cfg := &Config{
		Email: EmailConfig{AdminAddress: "ops@example.com", Provider: ProviderSES},
		Storage: StorageConfig{
			TableName:  "",
			BucketName: "bucket",
		},
	}

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TABLE_NAME")
}
