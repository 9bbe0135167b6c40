package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, "ideahub", cfg.Issuer)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewJWTConfig_CustomValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "my-secret-key-123")
	t.Setenv("JWT_ISSUER", "campus-portal")
	t.Setenv("JWT_EXPIRATION_HOURS", "36")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "my-secret-key-123", cfg.Secret)
	assert.Equal(t, "campus-portal", cfg.Issuer)
	assert.Equal(t, 36, cfg.ExpirationHours)
}

func TestNewJWTConfig_Expiration(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
		wantHours  int
		wantErr    bool
	}{
		{name: "one hour minimum", expiration: "1", wantHours: 1},
		{name: "one week", expiration: "168", wantHours: 168},
		{name: "zero rejected", expiration: "0", wantErr: true},
		{name: "negative rejected", expiration: "-1", wantErr: true},
		{name: "non-numeric rejected", expiration: "invalid", wantErr: true},
		{name: "float rejected", expiration: "12.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret-key")
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), "JWT_EXPIRATION_HOURS")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}
