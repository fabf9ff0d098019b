package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://live-mt-server.wati.io", cfg.BaseURL)
	assert.Empty(t, cfg.TenantID)
	assert.Equal(t, "downloads", cfg.DownloadDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WATI_API_BASE_URL", "https://wati.example.com")
	t.Setenv("WATI_TENANT_ID", "tenant-1")
	t.Setenv("WATI_AUTH_TOKEN", "secret")
	t.Setenv("DOWNLOAD_DIR", "/tmp/media")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, Config{
		Port:        "9090",
		BaseURL:     "https://wati.example.com",
		TenantID:    "tenant-1",
		AuthToken:   "secret",
		DownloadDir: "/tmp/media",
		LogLevel:    "debug",
	}, cfg)
}
