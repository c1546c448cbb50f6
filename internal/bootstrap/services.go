package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/net4grad/alumni-web/config"
	"github.com/net4grad/alumni-web/internal/adapters/upstream"
	"github.com/net4grad/alumni-web/internal/observability/metrics"
	"github.com/net4grad/alumni-web/internal/service"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Dashboard *service.DashboardService
	Profile   *service.ProfileService
	Upstream  *upstream.Client
	Sessions  SessionBackend
	Metrics   MetricsContainer
}

// MetricsContainer groups the Prometheus registry and the portal recorder.
// Registry is nil when metrics are disabled.
type MetricsContainer struct {
	Registry *prometheus.Registry
	Recorder *metrics.Recorder
	Path     string
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

func buildMetrics(cfg config.ObservabilityConfig) MetricsContainer {
	if !cfg.MetricsEnabled {
		return MetricsContainer{}
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return MetricsContainer{
		Registry: reg,
		Recorder: metrics.NewRecorder(reg),
		Path:     cfg.MetricsPath,
	}
}

func newUpstreamClient(cfg config.UpstreamConfig, hc *http.Client, rec *metrics.Recorder, logger *slog.Logger) (*upstream.Client, error) {
	return upstream.NewClient(upstream.Config{
		BaseURL:        cfg.BaseURL,
		Timeout:        cfg.Timeout,
		StudentIDField: cfg.StudentIDField,
		AdminIDField:   cfg.AdminIDField,
		SendBearer:     cfg.SendBearer,
		Paths: upstream.Paths{
			StudentLogin: cfg.StudentLoginPath,
			AdminLogin:   cfg.AdminLoginPath,
			Students:     cfg.StudentsPath,
			Alumni:       cfg.AlumniPath,
			Events:       cfg.EventsPath,
			Achievements: cfg.AchievementsPath,
			Profile:      cfg.ProfilePath,
			Colleges:     cfg.CollegesPath,
		},
		Client:  hc,
		Metrics: rec,
		Logger:  logger,
	})
}

// NewServices builds the service container from configuration and
// connected infrastructure.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	obs := buildMetrics(cfg.Observability)

	client, err := newUpstreamClient(cfg.Upstream, deps.HTTPClient, obs.Recorder, logger)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build upstream client: %w", err)
	}

	sessions, err := BuildSessionStore(cfg.Auth, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	auth, err := BuildAuthService(AuthDeps{
		Auth:     cfg.Auth,
		Gateway:  client,
		Sessions: sessions.Store,
		Metrics:  obs.Recorder,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth: auth,
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Portal:  client,
			Metrics: obs.Recorder,
			Logger:  logger,
		}),
		Profile:  service.NewProfileService(service.ProfileServiceOptions{Portal: client, Logger: logger}),
		Upstream: client,
		Sessions: sessions,
		Metrics:  obs,
	}, nil
}

// ServiceOrchestrationConfig contains everything needed to run the portal.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// backgroundService describes a startable background component.
type backgroundService struct {
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	name string
	done <-chan struct{}
}

func launchBackground(ctx context.Context, svc backgroundService, errCh chan<- error, logger *slog.Logger) backgroundServiceHandle {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := svc.start(ctx); err != nil {
			select {
			case errCh <- fmt.Errorf("%s failed: %w", svc.name, err):
			case <-ctx.Done():
			default:
				logger.WarnContext(ctx, "dropping background service error", "service", svc.name, "error", err)
			}
		}
	}()
	logger.InfoContext(ctx, "background service started", "service", svc.name)
	return backgroundServiceHandle{name: svc.name, done: done}
}

func buildBackgroundServices(services ServiceContainer) []backgroundService {
	var out []backgroundService
	if services.Sessions.Sweep != nil {
		out = append(out, backgroundService{name: "session sweeper", start: services.Sessions.Sweep})
	}
	return out
}

// RunServicesWithShutdown starts the HTTP server and background services and
// blocks until ctx is cancelled or a component fails.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	background := buildBackgroundServices(cfg.Services)
	errCh := make(chan error, len(background)+1)

	server, err := StartHTTPServer(&HTTPServerConfig{
		Config:      cfg.Config,
		Services:    cfg.Services,
		RedisClient: cfg.RedisClient,
		Logger:      logger,
		Errors:      errCh,
	})
	if err != nil {
		return err
	}

	handles := make([]backgroundServiceHandle, 0, len(background))
	for _, svc := range background {
		handles = append(handles, launchBackground(serviceCtx, svc, errCh, logger))
	}

	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  server,
		logger:      logger,
		backgrounds: handles,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for cancellation or a service error.
func waitForShutdown(cfg shutdownConfig) error {
	select {
	case <-cfg.ctx.Done():
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop stops the HTTP server and waits for background services.
func gracefulStop(cfg shutdownConfig) error {
	if cfg.httpServer != nil {
		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: context.WithoutCancel(cfg.ctx),
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			return err
		}
	}

	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}
	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
