package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/logging"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// templateFuncs are available to every page template.
var templateFuncs = template.FuncMap{
	"formatScore": func(score *float64) string {
		if score == nil {
			return "no ratings yet"
		}
		return fmt.Sprintf("%.2f", *score)
	},
	"formatTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}

// loadTemplates parses the page templates from dir, or the embedded set when dir is empty.
func loadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs)
	if dir == "" {
		return tmpl.ParseFS(embeddedTemplates, "templates/*.html")
	}
	return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
}

// corsConfig allows cross-origin reads of the JSON API.
// An empty list or "*" allows every origin.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	cfg.AllowAllOrigins = len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.RequestID())
	router.Use(logging.RequestLog())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		router.Use(cfg.SessionManager.Identify())
	}

	router.SetHTMLTemplate(template.Must(loadTemplates(cfg.TemplatesPath)))

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	if cfg.AuthService != nil && cfg.SessionManager != nil {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Health, cfg.Version)
	uiController := NewUIController(cfg.Books)
	booksController := NewBooksController(cfg.Books, cfg.Reviews, cfg.ReviewCounts, cfg.Covers)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// UI routes
	router.GET("/", uiController.IndexPage)
	router.GET("/search", uiController.SearchPage)
	router.GET("/book/:id", booksController.BookPage)
	router.POST("/book/:id", auth.RequireAuth(), booksController.SubmitReview)

	// Public JSON API
	api := router.Group("/api")
	api.Use(cors.New(corsConfig(cfg.AllowOrigins)))
	api.GET("/:isbn", booksController.Lookup)
	api.OPTIONS("/:isbn", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	return router
}
