package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://test.db")

	cfg := NewConfig()

	assert.Equal(t, int32(5000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "sqlite://test.db", cfg.Database.URL)
	assert.Equal(t, 5*time.Second, cfg.Database.StoreTimeout)
	assert.Equal(t, 3*time.Second, cfg.Goodreads.Timeout)
	assert.Equal(t, DefaultGoodreadsBaseURL, cfg.Goodreads.BaseURL)
	assert.Equal(t, DefaultCoverURLTemplate, cfg.Covers.URLTemplate)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Auth.SecureCookies)
	assert.Equal(t, SessionStoreAuto, cfg.Session.Store)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/books")
	t.Setenv("GOODREADS_KEY", "secret-key")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("METADATA_TIMEOUT", "750ms")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "secret-key", cfg.Goodreads.Key)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 750*time.Millisecond, cfg.Goodreads.Timeout)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("missing database url is fatal", func(t *testing.T) {
		cfg := &Config{Session: Session{Store: SessionStoreAuto}}
		err := cfg.Validate()
		require.ErrorIs(t, err, ErrDatabaseURLMissing)
	})

	t.Run("blank database url is fatal", func(t *testing.T) {
		cfg := &Config{Database: Database{URL: "   "}, Session: Session{Store: SessionStoreAuto}}
		require.ErrorIs(t, cfg.Validate(), ErrDatabaseURLMissing)
	})

	t.Run("unknown session store", func(t *testing.T) {
		cfg := &Config{Database: Database{URL: "sqlite://x.db"}, Session: Session{Store: "mongo"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		cfg := &Config{Database: Database{URL: "sqlite://x.db"}, Session: Session{Store: SessionStoreMemory}}
		assert.NoError(t, cfg.Validate())
	})
}
