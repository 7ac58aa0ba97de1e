package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "₱", cfg.CurrencySymbol)
	assert.Equal(t, "200-M", cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file backend", Config{StoreBackend: BackendFile, DataFile: "x.json"}, false},
		{"in-memory file backend", Config{StoreBackend: BackendFile}, false},
		{"postgres without url", Config{StoreBackend: BackendPostgres}, true},
		{"postgres with url", Config{StoreBackend: BackendPostgres, DatabaseURL: "postgres://localhost/db"}, false},
		{"firestore without project", Config{StoreBackend: BackendFirestore}, true},
		{"unknown backend", Config{StoreBackend: "redis"}, true},
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
