// Package auth provides user registration, login and server-side sessions.
//
// Sessions are managed by scs and keyed by the "session" cookie. The backing
// store is chosen with SESSION_STORE:
//
//	SESSION_STORE=auto    # SQLite sessions table when DATABASE_URL is SQLite, memory otherwise
//	SESSION_STORE=sqlite  # sessions table in the application database
//	SESSION_STORE=redis   # REDIS_ADDR, REDIS_PASSWORD, REDIS_SESSION_PREFIX
//	SESSION_STORE=memory  # lost on restart
//
// Other settings:
//
//	AUTH_SESSION_SECRET=<hex>   # CSRF signing key, generated per process if empty
//	AUTH_SESSION_LIFETIME=24h   # absolute session lifetime, idle timeout is half of it
//	AUTH_BCRYPT_COST=12         # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true    # HTTPS-only cookies
//
// # Usage
//
//	store, closeStore, err := auth.OpenSessionStore(ctx, cfg.Session, db)
//	sm := auth.NewSessionManager(store, cfg.Auth)
//	router.Use(sm.SessionLoadSave(), sm.Identify())
//
// Extract the user in handlers:
//
//	session, ok := auth.GetSession(c)
package auth
