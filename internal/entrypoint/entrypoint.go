package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/database/users"
	http_controllers "github.com/mrlokans/bookreviews/internal/http"
	"github.com/mrlokans/bookreviews/internal/logging"
	"github.com/mrlokans/bookreviews/internal/metadata"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App is a fully wired server: the router plus everything that must be released on exit.
type App struct {
	Router  *gin.Engine
	cleanup []func()
}

// Close releases the session store and the database, in reverse order of creation.
func (a *App) Close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}

// Build opens the stores and wires every component from cfg.
func Build(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{}

	db, err := database.NewDatabase(cfg.Database.URL, database.Options{StoreTimeout: cfg.Database.StoreTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.cleanup = append(app.cleanup, func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	})
	slog.Info("database ready", "driver", db.Driver())

	store, closeStore, err := auth.OpenSessionStore(ctx, cfg.Session, db)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	app.cleanup = append(app.cleanup, closeStore)

	csrfSecret, err := csrfSecretFrom(cfg.Auth.SessionSecret)
	if err != nil {
		app.Close()
		return nil, err
	}

	if cfg.Goodreads.Key == "" {
		slog.Warn("GOODREADS_KEY is not set, book pages will show no third-party review counts")
	}
	if !cfg.Auth.SecureCookies {
		slog.Warn("secure cookies are disabled, use only for local development without HTTPS")
	}

	timeout := db.Timeout()
	userRepo := users.NewRepository(db.DB, timeout)

	routerCfg := http_controllers.RouterConfig{
		Books:          books.NewRepository(db.DB, timeout),
		Reviews:        reviews.NewRepository(db.DB, timeout),
		Health:         db,
		ReviewCounts:   metadata.NewGoodreadsClient(cfg.Goodreads),
		Covers:         metadata.NewCoverURLBuilder(cfg.Covers.URLTemplate),
		AuthService:    auth.NewService(userRepo, cfg.Auth),
		SessionManager: auth.NewSessionManager(store, cfg.Auth),
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		AllowOrigins:   cfg.CORS.AllowOrigins,
		Version:        version,
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// csrfSecretFrom decodes a hex secret, uses a non-hex one as raw bytes, and generates
// a fresh one when empty. A generated secret invalidates forms on every restart.
func csrfSecretFrom(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	generated, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	slog.Info("generated session secret (set AUTH_SESSION_SECRET to persist)")
	return hex.DecodeString(generated)
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	slog.Info("shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if onShutdown != nil {
		onShutdown(ctx)
	}

	slog.Info("server exiting")
	return nil
}

func Run(cfg *config.Config, version string) {
	logging.InitLogger(cfg.Global.LogLevel, cfg.Global.LogFormat)
	gin.SetMode(gin.ReleaseMode)
	slog.Info("starting Book Reviews", "version", version)

	app, err := Build(context.Background(), cfg, version)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := Serve(app.Router, cfg, func(context.Context) { app.Close() }); err != nil {
		app.Close()
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
