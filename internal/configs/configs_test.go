package configs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"accountd/internal/configs"
)

func setBaseEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "JWT_SECRET", "DATABASE_URL",
		"SENDGRID_API_KEY", "EMAIL_FROM",
	} {
		t.Setenv(key, "")
	}

	t.Setenv("S3_BUCKET_NAME", "avatars")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "access")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 8080, cfg.Port)
	require.Empty(t, cfg.AllowedOrigins)
	require.NotEmpty(t, cfg.JWTSecret)
	require.NotEmpty(t, cfg.DatabaseDSN)
	require.Empty(t, cfg.SendGridAPIKey)
	require.Equal(t, "no-reply@accountd.local", cfg.EmailFrom)
}

func TestLoadConfigParsesValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("DATABASE_URL", "postgres://app@db:5432/accounts")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("EMAIL_FROM", "hello@example.com")

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	require.Equal(t, "prod-secret", cfg.JWTSecret)
	require.Equal(t, "postgres://app@db:5432/accounts", cfg.DatabaseDSN)
	require.Equal(t, "SG.key", cfg.SendGridAPIKey)
	require.Equal(t, "hello@example.com", cfg.EmailFrom)
}

func TestLoadConfigRejectsInvalidPort(t *testing.T) {
	setBaseEnv(t)

	t.Setenv("PORT", "not-a-port")
	_, err := configs.LoadConfig()
	require.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = configs.LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRequiresProductionSecrets(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "postgres://app@db:5432/accounts")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("EMAIL_FROM", "hello@example.com")

	// Missing JWT_SECRET fails outside development.
	_, err := configs.LoadConfig()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "prod-secret")
	_, err = configs.LoadConfig()
	require.NoError(t, err)

	t.Setenv("SENDGRID_API_KEY", "")
	_, err = configs.LoadConfig()
	require.Error(t, err)
}
