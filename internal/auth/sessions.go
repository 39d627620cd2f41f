package auth

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database"
)

// Session data keys
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUserName = "user_name"
)

// Session is the authenticated identity carried by a session.
type Session struct {
	UserID   uint
	UserName string
}

// SessionManager wraps scs.SessionManager with application-specific methods.
// Session data lives in the request context, loaded by SessionLoadSave.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by store.
func NewSessionManager(store scs.Store, cfg config.Auth) *SessionManager {
	sm := scs.New()
	sm.Store = store

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}
}

// Set stores the user in the session. The token is renewed first to prevent session fixation.
func (sm *SessionManager) Set(ctx context.Context, userID uint, userName string) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	// Stored as int to match GetInt() retrieval
	sm.Put(ctx, SessionKeyUserID, int(userID))
	sm.Put(ctx, SessionKeyUserName, userName)
	return nil
}

// Clear discards all session state. The next write to the session issues a fresh token.
func (sm *SessionManager) Clear(ctx context.Context) error {
	return sm.Destroy(ctx)
}

// Get returns the session identity, or false for an anonymous session.
func (sm *SessionManager) Get(ctx context.Context) (Session, bool) {
	userID := sm.GetInt(ctx, SessionKeyUserID)
	if userID <= 0 {
		return Session{}, false
	}
	return Session{
		UserID:   uint(userID),
		UserName: sm.GetString(ctx, SessionKeyUserName),
	}, true
}

// OpenSessionStore builds the scs store selected by cfg.Store and returns it with a
// function that releases its resources.
//
// SessionStoreAuto picks the SQLite table store when db is SQLite and memory otherwise.
func OpenSessionStore(ctx context.Context, cfg config.Session, db *database.Database) (scs.Store, func(), error) {
	kind := cfg.Store
	if kind == config.SessionStoreAuto || kind == "" {
		kind = config.SessionStoreMemory
		if db != nil && db.Driver() == database.DriverSQLite {
			kind = config.SessionStoreSQLite
		}
	}

	switch kind {
	case config.SessionStoreSQLite:
		if db == nil || db.Driver() != database.DriverSQLite {
			return nil, nil, fmt.Errorf("sqlite session store requires a SQLite database")
		}
		sqlDB, err := db.DB.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := createSessionsTable(ctx, sqlDB); err != nil {
			return nil, nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		store := sqlite3store.New(sqlDB)
		slog.Info("session store initialized", "kind", kind)
		return store, store.StopCleanup, nil

	case config.SessionStoreRedis:
		store := NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPrefix)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("session store initialized", "kind", kind, "addr", cfg.RedisAddr)
		return store, func() { _ = store.Close() }, nil

	case config.SessionStoreMemory:
		store := memstore.New()
		slog.Info("session store initialized", "kind", kind)
		return store, store.StopCleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", kind)
	}
}

func createSessionsTable(ctx context.Context, sqlDB *sql.DB) error {
	_, err := sqlDB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	return err
}
