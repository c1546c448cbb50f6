package bootstrap

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/net4grad/alumni-web/config"
)

func testAppConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{
			SessionBackend:    config.SessionBackendMemory,
			AllowAssertedRole: true,
		},
		Upstream:      config.UpstreamConfig{BaseURL: "http://upstream.test"},
		Observability: config.ObservabilityConfig{MetricsEnabled: true},
	}
	cfg.Sanitize()
	return cfg
}

func TestNewServices(t *testing.T) {
	services, err := NewServices(&ServiceDeps{Config: testAppConfig(), Logger: discardLogger()})
	require.NoError(t, err)

	assert.NotNil(t, services.Auth)
	assert.NotNil(t, services.Dashboard)
	assert.NotNil(t, services.Profile)
	assert.NotNil(t, services.Upstream)
	assert.Equal(t, config.SessionBackendMemory, services.Sessions.Kind)
	assert.NotNil(t, services.Metrics.Registry)
	assert.Equal(t, "/metrics", services.Metrics.Path)
	assert.Len(t, buildBackgroundServices(services), 1)
}

func TestNewServices_Errors(t *testing.T) {
	_, err := NewServices(nil)
	assert.Error(t, err)

	cfg := testAppConfig()
	cfg.Auth.SessionBackend = config.SessionBackendRedis
	_, err = NewServices(&ServiceDeps{Config: cfg, Logger: discardLogger()})
	assert.Error(t, err, "redis backend without a client")

	cfg = testAppConfig()
	cfg.Upstream.BaseURL = "ftp://upstream.test"
	_, err = NewServices(&ServiceDeps{Config: cfg, Logger: discardLogger()})
	assert.Error(t, err)
}

func TestBuildHTTPHandler_ServesPortal(t *testing.T) {
	cfg := testAppConfig()
	services, err := NewServices(&ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)

	templates, static, err := resolveAssets(false, discardLogger())
	require.NoError(t, err)

	handler, err := buildHTTPHandler(httpHandlerConfig{
		Logger: discardLogger(),
		HTTP:   config.HTTPConfig{CompressionEnabled: true, CompressionLevel: 6},
		Services: routerServices(routerDeps{
			Config:    cfg,
			Services:  services,
			Templates: templates,
			Static:    static,
			Logger:    discardLogger(),
		}),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = metricsResp.Body.Close() }()
	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")

	loginResp, err := http.Get(srv.URL + "/login")
	require.NoError(t, err)
	defer func() { _ = loginResp.Body.Close() }()
	assert.Equal(t, http.StatusOK, loginResp.StatusCode)
}

func TestWaitForShutdown(t *testing.T) {
	t.Run("context cancellation stops background services", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			<-ctx.Done()
			close(done)
		}()
		cancel()

		err := waitForShutdown(shutdownConfig{
			ctx:         ctx,
			cancel:      cancel,
			errCh:       make(chan error),
			logger:      discardLogger(),
			backgrounds: []backgroundServiceHandle{{name: "sweeper", done: done}},
		})
		assert.NoError(t, err)
	})

	t.Run("service error is returned", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		errCh := make(chan error, 1)
		errCh <- errors.New("boom")

		err := waitForShutdown(shutdownConfig{ctx: ctx, cancel: cancel, errCh: errCh, logger: discardLogger()})
		assert.EqualError(t, err, "boom")
	})
}

func TestLaunchBackground_ReportsFailure(t *testing.T) {
	errCh := make(chan error, 1)
	handle := launchBackground(context.Background(), backgroundService{
		name:  "sweeper",
		start: func(context.Context) error { return errors.New("stopped") },
	}, errCh, discardLogger())

	select {
	case <-handle.done:
	case <-time.After(time.Second):
		t.Fatal("background service did not finish")
	}
	assert.EqualError(t, <-errCh, "sweeper failed: stopped")
}
