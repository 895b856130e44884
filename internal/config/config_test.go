package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv restores the variables when the subtest ends.
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("CATALOG_SOURCE", "http")
		t.Setenv("CATALOG_BASE_URL", "https://static.example.com/db")
		t.Setenv("CATALOG_FETCH_TIMEOUT", "3s")
		t.Setenv("SESSION_TTL", "5m")
		t.Setenv("CONTACT_EMAIL", "shop@example.com")
		t.Setenv("PER_PAGE", "9")
		t.Setenv("CORS_ORIGIN", "https://oli3d.design")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, SourceHTTP, cfg.CatalogSource)
		assert.Equal(t, "https://static.example.com/db", cfg.CatalogBaseURL)
		assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
		assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
		assert.Equal(t, "shop@example.com", cfg.ContactEmail)
		assert.Equal(t, 9, cfg.PerPage)
		assert.Equal(t, "https://oli3d.design", cfg.CORSOrigin)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "")
		t.Setenv("PER_PAGE", "not-a-number")
		t.Setenv("CATALOG_FETCH_TIMEOUT", "")
		t.Setenv("CORS_ORIGIN", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, SourceDir, cfg.CatalogSource)
		assert.Equal(t, "./db", cfg.CatalogDir)
		assert.Equal(t, 12, cfg.PerPage)
		assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
		assert.Equal(t, "*", cfg.CORSOrigin)
	})

	t.Run("HTTP source without base url", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "http")
		t.Setenv("CATALOG_BASE_URL", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingBaseURL)
	})

	t.Run("Postgres source without host", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "postgres")
		t.Setenv("DB_HOST", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingDBHost)
	})

	t.Run("Unknown source", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "ftp")

		_, err := Load()
		assert.ErrorIs(t, err, ErrUnknownSource)
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{CatalogSource: SourceHTTP}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingBaseURL)

	cfg.CatalogBaseURL = "https://static.example.com"
	assert.NoError(t, cfg.Validate())
}
