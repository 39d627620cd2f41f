package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SessionStoreKind selects the backend used for server-side session storage.
type SessionStoreKind string

const (
	SessionStoreAuto   SessionStoreKind = "auto"   // sqlite when the database is SQLite, memory otherwise
	SessionStoreSQLite SessionStoreKind = "sqlite" // sessions table in the application database
	SessionStoreRedis  SessionStoreKind = "redis"  // Redis keys with TTL
	SessionStoreMemory SessionStoreKind = "memory" // process memory, lost on restart
)

// ErrDatabaseURLMissing is returned by Validate when no store connection string is configured.
var ErrDatabaseURLMissing = errors.New("DATABASE_URL is not set")

type (
	Config struct {
		HTTP
		Global
		Database
		Goodreads
		Covers
		Auth
		Session
		UI
		CORS
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		LogLevel                 string
		LogFormat                string // "json" or "text"
	}
	Database struct {
		URL          string
		StoreTimeout time.Duration // Upper bound for a single store operation
	}
	Goodreads struct {
		Key     string
		BaseURL string
		Timeout time.Duration
	}
	Covers struct {
		URLTemplate string // fmt template with a single %s for the ISBN
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
	Session struct {
		Store         SessionStoreKind
		RedisAddr     string
		RedisPassword string
		RedisPrefix   string
	}
	UI struct {
		TemplatesPath string // Empty means the embedded templates are used
		StaticPath    string
	}
	CORS struct {
		AllowOrigins []string
	}
)

// loadDotenv reads a .env file from the working directory when one exists.
// Values already present in the environment win.
func loadDotenv() {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}
}

func NewConfig() *Config {
	loadDotenv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("database_url", "")
	v.SetDefault("store_timeout", "5s")

	v.SetDefault("goodreads_key", "")
	v.SetDefault("goodreads_base_url", DefaultGoodreadsBaseURL)
	v.SetDefault("metadata_timeout", "3s")
	v.SetDefault("cover_url_template", DefaultCoverURLTemplate)

	// Auth defaults
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies

	v.SetDefault("session_store", string(SessionStoreAuto))
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_session_prefix", "bookreviews:session:")

	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")
	v.SetDefault("cors_allow_origins", "*")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			LogLevel:                 v.GetString("LOG_LEVEL"),
			LogFormat:                v.GetString("LOG_FORMAT"),
		},
		Database: Database{
			URL:          v.GetString("DATABASE_URL"),
			StoreTimeout: v.GetDuration("STORE_TIMEOUT"),
		},
		Goodreads: Goodreads{
			Key:     v.GetString("GOODREADS_KEY"),
			BaseURL: v.GetString("GOODREADS_BASE_URL"),
			Timeout: v.GetDuration("METADATA_TIMEOUT"),
		},
		Covers: Covers{
			URLTemplate: v.GetString("COVER_URL_TEMPLATE"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
		Session: Session{
			Store:         SessionStoreKind(strings.ToLower(v.GetString("SESSION_STORE"))),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisPrefix:   v.GetString("REDIS_SESSION_PREFIX"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		CORS: CORS{
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
	}
}

// Validate reports configuration that makes startup impossible.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return ErrDatabaseURLMissing
	}
	switch c.Session.Store {
	case SessionStoreAuto, SessionStoreSQLite, SessionStoreRedis, SessionStoreMemory:
	default:
		return errors.New("SESSION_STORE must be one of auto, sqlite, redis, memory")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
