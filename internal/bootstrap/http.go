package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	alumniweb "github.com/net4grad/alumni-web"
	"github.com/net4grad/alumni-web/config"
	httpx "github.com/net4grad/alumni-web/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
	// Errors receives a ListenAndServe failure (optional).
	Errors chan<- error
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	templates, static, err := resolveAssets(appCfg.IsDev, logger)
	if err != nil {
		return nil, err
	}

	services := routerServices(routerDeps{
		Config:      appCfg,
		Services:    cfg.Services,
		RedisClient: cfg.RedisClient,
		Templates:   templates,
		Static:      static,
		Logger:      logger,
	})

	handler, err := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: services,
		HTTP:     appCfg.HTTP,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	return startServer(logger, handler, appCfg.HTTP.Addr, cfg.Errors), nil
}

// routerDeps groups the inputs routerServices maps onto the HTTP layer.
type routerDeps struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Templates   fs.FS
	Static      fs.FS
	Logger      *slog.Logger
}

func routerServices(d routerDeps) httpx.RouterServices {
	services := httpx.RouterServices{
		Auth:           d.Services.Auth,
		Dashboard:      d.Services.Dashboard,
		Profile:        d.Services.Profile,
		Colleges:       d.Services.Upstream,
		HealthChecks:   healthChecks(d.RedisClient),
		TemplateFS:     d.Templates,
		StaticFS:       d.Static,
		CookieDomain:   d.Config.HTTP.CookieDomain,
		MaxUploadBytes: d.Config.HTTP.MaxUploadBytes,
		IsDev:          d.Config.IsDev,
		Logger:         d.Logger,
	}
	if reg := d.Services.Metrics.Registry; reg != nil {
		services.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
		services.MetricsPath = d.Services.Metrics.Path
	}
	return services
}

// healthChecks reports Redis reachability when sessions live there.
func healthChecks(client redis.UniversalClient) map[string]httpx.HealthCheck {
	if client == nil {
		return nil
	}
	return map[string]httpx.HealthCheck{
		"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
}

// Asset directories used when serving from disk in development.
const (
	devTemplateDir = "frontend/templates"
	devStaticDir   = "frontend/static"
)

// resolveAssets serves templates and static files from disk in development
// so edits show up without a rebuild, and from the embedded copies otherwise.
func resolveAssets(isDev bool, logger *slog.Logger) (fs.FS, fs.FS, error) {
	if isDev {
		if info, err := os.Stat(devTemplateDir); err == nil && info.IsDir() {
			logger.Debug("serving assets from disk", "templates", devTemplateDir, "static", devStaticDir)
			return os.DirFS(devTemplateDir), os.DirFS(devStaticDir), nil
		}
	}

	templates, err := fs.Sub(alumniweb.TemplateFS, devTemplateDir)
	if err != nil {
		return nil, nil, fmt.Errorf("embedded templates: %w", err)
	}
	static, err := fs.Sub(alumniweb.StaticFS, devStaticDir)
	if err != nil {
		return nil, nil, fmt.Errorf("embedded static assets: %w", err)
	}
	return templates, static, nil
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
}

func buildHTTPHandler(cfg httpHandlerConfig) (http.Handler, error) {
	router, err := httpx.NewRouter(cfg.Services)
	if err != nil {
		return nil, err
	}

	// Order: Recover -> Logging -> Compression -> Router
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel})(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h, nil
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	if addr == "" {
		addr = ":3000"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				select {
				case errCh <- fmt.Errorf("http server: %w", err):
				default:
				}
			}
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}
	return nil
}
