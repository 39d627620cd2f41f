package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookreviews/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.URL = "sqlite://" + filepath.Join(t.TempDir(), "app.db")
	cfg.Database.StoreTimeout = time.Second
	cfg.Session.Store = config.SessionStoreAuto
	cfg.Auth.SessionLifetime = time.Hour
	cfg.Auth.BcryptCost = 4
	cfg.Auth.SessionSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	return cfg
}

func TestBuild(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("wires a working router", func(t *testing.T) {
		app, err := Build(context.Background(), testConfig(t), "test")
		require.NoError(t, err)
		defer app.Close()

		for _, path := range []string{"/ping", "/health", "/", "/search?q=x", "/login"} {
			w := httptest.NewRecorder()
			app.Router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("rejects a missing database URL", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Database.URL = ""

		_, err := Build(context.Background(), cfg, "test")

		assert.ErrorIs(t, err, config.ErrDatabaseURLMissing)
	})

	t.Run("rejects an unsupported database URL", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Database.URL = "mysql://localhost/books"

		_, err := Build(context.Background(), cfg, "test")

		assert.Error(t, err)
	})

	t.Run("fails when redis is unreachable", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Session.Store = config.SessionStoreRedis
		cfg.Session.RedisAddr = "127.0.0.1:1"

		_, err := Build(context.Background(), cfg, "test")

		assert.Error(t, err)
	})
}

func TestCSRFSecretFrom(t *testing.T) {
	t.Run("decodes hex", func(t *testing.T) {
		secret, err := csrfSecretFrom("00ff")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xff}, secret)
	})

	t.Run("uses non-hex as raw bytes", func(t *testing.T) {
		secret, err := csrfSecretFrom("not hex at all")
		require.NoError(t, err)
		assert.Equal(t, []byte("not hex at all"), secret)
	})

	t.Run("generates 32 bytes when empty", func(t *testing.T) {
		first, err := csrfSecretFrom("")
		require.NoError(t, err)
		second, err := csrfSecretFrom("")
		require.NoError(t, err)

		assert.Len(t, first, 32)
		assert.NotEqual(t, first, second)
	})
}
