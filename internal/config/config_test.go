package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "gymvisa-test")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")
	t.Setenv("ADMIN_EMAIL", "admin@gymvisa.com")
	t.Setenv("STORAGE_BUCKET", "gymvisa-test.appspot.com")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gymvisa-test", cfg.FirebaseProjectID)
	assert.Equal(t, "admin@gymvisa.com", cfg.AdminEmail)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	// Defaults.
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, "587", cfg.SMTPPort)
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.GinMode)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"project id", "FIREBASE_PROJECT_ID"},
		{"admin email", "ADMIN_EMAIL"},
		{"storage bucket", "STORAGE_BUCKET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigRequiresCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_APPLICATION_CREDENTIALS")
}

func TestLoadConfigAcceptsBase64Credentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "eyJmYWtlIjogdHJ1ZX0=")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.GoogleApplicationCredentials)
	assert.NotEmpty(t, cfg.FirebaseServiceAccountJSONBase64)
}
