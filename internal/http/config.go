package http

import (
	"github.com/mrlokans/bookreviews/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Stores
	Books   BookStore
	Reviews ReviewStore
	Health  Pinger

	// External metadata
	ReviewCounts ReviewCountsFetcher
	Covers       CoverURLer

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	CSRFSecret     []byte // CSRF protection is disabled when empty
	SecureCookies  bool

	// UI paths. An empty TemplatesPath uses the embedded templates.
	TemplatesPath string
	StaticPath    string

	// Origins allowed to call the JSON API from browsers
	AllowOrigins []string

	// Application info
	Version string
}
