package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"port": 9090,
		"database_url": "postgres://localhost/ideahub_test",
		"upload_dir": "/tmp/uploads",
		"translate_url": "http://localhost:5001"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/ideahub_test", cfg.DatabaseURL)
	assert.Equal(t, "/tmp/uploads", cfg.UploadDir)
	assert.Equal(t, "http://localhost:5001", cfg.TranslateURL)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cfg, err := LoadConfig(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "key-from-env")
	t.Setenv("UPLOAD_DIR", "/data/uploads")
	t.Setenv("TRANSLATE_URL", "http://translate:5000")

	cfg := FromEnv()
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "key-from-env", cfg.APIKey)
	assert.Equal(t, "/data/uploads", cfg.UploadDir)
	assert.Equal(t, "http://translate:5000", cfg.TranslateURL)
}

func TestFromEnv_InvalidPortIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	cfg := FromEnv()
	assert.Equal(t, 0, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{}, wantErr: false},
		{name: "valid port", cfg: Config{Port: 8080}, wantErr: false},
		{name: "negative port", cfg: Config{Port: -1}, wantErr: true},
		{name: "port too large", cfg: Config{Port: 70000}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000}
	defaults := Config{
		Port:         8080,
		DatabaseURL:  "postgres://default/db",
		APIKey:       "default-key",
		TranslateURL: "http://translate:5000",
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, 9000, merged.Port, "explicit value wins over default")
	assert.Equal(t, "postgres://default/db", merged.DatabaseURL)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, "http://translate:5000", merged.TranslateURL)
	assert.Equal(t, "uploads", merged.UploadDir, "fallback upload dir applies")
}

func TestMergeWithDefaults_Fallbacks(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "uploads", merged.UploadDir)
}
