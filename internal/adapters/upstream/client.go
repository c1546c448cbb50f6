// Package upstream is the HTTP adapter for the portal's backing student/admin API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/net4grad/alumni-web/internal/observability/metrics"
	"github.com/net4grad/alumni-web/internal/ports"
)

const maxResponseBytes = 4 << 20

// ErrResponseTooLarge reports an upstream body beyond maxResponseBytes.
var ErrResponseTooLarge = fmt.Errorf("upstream response exceeds %d bytes", maxResponseBytes)

// readBounded reads at most maxResponseBytes and fails rather than truncating.
func readBounded(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxResponseBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxResponseBytes {
		return nil, ErrResponseTooLarge
	}
	return body, nil
}

// Paths names the upstream endpoints relative to the base URL.
type Paths struct {
	StudentLogin string
	AdminLogin   string
	Students     string
	Alumni       string
	Events       string
	Achievements string
	Profile      string
	Colleges     string
}

func (p Paths) withDefaults() Paths {
	p.StudentLogin = fallbackString(p.StudentLogin, "/login")
	p.AdminLogin = fallbackString(p.AdminLogin, "/college-login")
	p.Students = fallbackString(p.Students, "/students/")
	p.Alumni = fallbackString(p.Alumni, "/alumni/")
	p.Events = fallbackString(p.Events, "/events/")
	p.Achievements = fallbackString(p.Achievements, "/achievements/")
	p.Profile = fallbackString(p.Profile, "/users/me")
	p.Colleges = fallbackString(p.Colleges, "/colleges/")
	return p
}

// Config captures the upstream connection settings.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	StudentIDField string
	AdminIDField   string
	SendBearer     bool
	Paths          Paths
	Client         *http.Client
	Metrics        *metrics.Recorder
	Logger         *slog.Logger
}

// Client talks to the upstream API. It is safe for concurrent use; all
// per-session state travels in the ports.UpstreamAuth argument.
type Client struct {
	base           *url.URL
	paths          Paths
	studentIDField string
	adminIDField   string
	sendBearer     bool
	client         *http.Client
	metrics        *metrics.Recorder
	logger         *slog.Logger
}

var (
	_ ports.AuthGateway      = (*Client)(nil)
	_ ports.PortalClient     = (*Client)(nil)
	_ ports.CollegeRegistrar = (*Client)(nil)
)

// NewClient builds an upstream client. Callers should pass a sanitized config.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("upstream base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("upstream base url must be http or https, got %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:           base,
		paths:          cfg.Paths.withDefaults(),
		studentIDField: fallbackString(strings.TrimSpace(cfg.StudentIDField), "collegeId"),
		adminIDField:   fallbackString(strings.TrimSpace(cfg.AdminIDField), "collegeId"),
		sendBearer:     cfg.SendBearer,
		client:         hc,
		metrics:        cfg.Metrics,
		logger:         logger.With("component", "upstream"),
	}, nil
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.Operation, e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return u.String()
}

// requestSpec groups the parts of an outbound call.
type requestSpec struct {
	Operation string
	Method    string
	Path      string
	Auth      *ports.UpstreamAuth
	Body      any
}

func (c *Client) newRequest(ctx context.Context, rs requestSpec) (*http.Request, error) {
	var body io.Reader
	if rs.Body != nil {
		b, err := json.Marshal(rs.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", rs.Operation, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, rs.Method, c.endpoint(rs.Path), body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", rs.Operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rs.Auth != nil {
		c.applyAuth(req, *rs.Auth)
	}
	return req, nil
}

func (c *Client) applyAuth(req *http.Request, auth ports.UpstreamAuth) {
	if auth.Token != "" {
		req.Header.Set("X-CSRF-Token", auth.Token)
		if c.sendBearer {
			req.Header.Set("Authorization", "Bearer "+auth.Token)
		}
	}
	for _, ck := range auth.Cookies {
		if !pathMatches(ck.Path, req.URL.Path) {
			continue
		}
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
}

// do executes req with hc and returns the bounded body of a 2xx response.
func (c *Client) do(hc *http.Client, req *http.Request, operation string) ([]byte, error) {
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.metrics.Upstream(metrics.UpstreamMetric{Operation: operation, Duration: time.Since(start)})
		return nil, fmt.Errorf("upstream %s request failed: %w", operation, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(req.Context(), "closing upstream body failed", "operation", operation, "error", cerr)
		}
	}()

	body, readErr := readBounded(resp.Body)
	c.metrics.Upstream(metrics.UpstreamMetric{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Duration:   time.Since(start),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Operation: operation, StatusCode: resp.StatusCode}
	}
	if readErr != nil {
		return nil, fmt.Errorf("read upstream %s response: %w", operation, readErr)
	}
	return body, nil
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
