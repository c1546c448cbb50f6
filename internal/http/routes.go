package httpx

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/ports"
	"github.com/net4grad/alumni-web/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Dashboard DashboardUIService
	Profile   ProfileUIService
	Colleges  ports.CollegeRegistrar

	// Health checks reported by /healthz (optional).
	HealthChecks map[string]HealthCheck
	// Prometheus exposition handler; /metrics is not mounted when nil.
	MetricsHandler http.Handler
	MetricsPath    string

	TemplateFS fs.FS // Filesystem holding layout.tmpl, pages/ and partials/
	StaticFS   fs.FS // Filesystem served under /static/

	CookieDomain   string
	MaxUploadBytes int64
	IsDev          bool         // Development mode flag for detailed template errors
	Logger         *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the portal router with browser middleware.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil {
		return nil, errors.New("auth service is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: services.TemplateFS, Logger: logger})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		T:            renderer,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       logger,
	}
	uiHandlers := &UIHandlers{
		T:              renderer,
		Dashboard:      services.Dashboard,
		Profile:        services.Profile,
		MaxUploadBytes: services.MaxUploadBytes,
		IsDev:          services.IsDev,
		Logger:         logger,
	}
	cfg := uiRouteConfig{Auth: services.Auth, CookieDomain: services.CookieDomain}

	health := &HealthHandler{Checks: services.HealthChecks}
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)

	if services.MetricsHandler != nil {
		path := services.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, services.MetricsHandler)
	}

	if services.StaticFS != nil {
		mux.Handle("GET /static/", staticWithCacheHeaders(
			http.StripPrefix("/static/", http.FileServer(http.FS(services.StaticFS))), services.IsDev))
	}

	if services.Colleges != nil {
		registerCollegeRoutes(mux, &CollegeHandlers{Registrar: services.Colleges, Logger: logger})
	}

	registerAuthRoutes(mux, authHandlers, cfg)
	registerUIRoutes(mux, uiHandlers, cfg)

	handler := &notFoundHandler{mux: mux, uiHandlers: uiHandlers}
	return BrowserDetection()(handler), nil
}

func registerCollegeRoutes(mux *http.ServeMux, h *CollegeHandlers) {
	mux.HandleFunc("POST /api/colleges", h.Register)
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth         AuthServiceInterface
	CookieDomain string
}

// publicWrap applies CSRF protection and attaches the session when present.
func (cfg uiRouteConfig) publicWrap() func(http.Handler) http.Handler {
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
	optional := OptionalSession(cfg.Auth)
	return func(h http.Handler) http.Handler {
		return optional(csrf(h))
	}
}

// roleWrap chains the server-side role check with CSRF protection.
func (cfg uiRouteConfig) roleWrap(role domainauth.Role) func(http.Handler) http.Handler {
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
	roleCheck := RequireRoleBrowser(cfg.Auth, role)
	return func(h http.Handler) http.Handler {
		return roleCheck(csrf(h))
	}
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, cfg uiRouteConfig) {
	wrap := cfg.publicWrap()
	mux.Handle("GET /login", wrap(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /auth/login", wrap(http.HandlerFunc(h.Login)))
	mux.Handle("POST /auth/logout", wrap(http.HandlerFunc(h.Logout)))
	mux.HandleFunc("GET /auth/status", h.Status)
}

// registerUIRoutes delegates to per-area UI route registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	mux.Handle("GET /{$}", cfg.publicWrap()(http.HandlerFunc(h.Landing)))
	registerStudentRoutes(mux, h, cfg)
	registerAdminRoutes(mux, h, cfg)
}

// registerStudentRoutes wires the student dashboard.
func registerStudentRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.roleWrap(domainauth.RoleStudent)
	mux.Handle("GET /dashboard", wrap(http.HandlerFunc(h.StudentProfile)))
	mux.Handle("GET /dashboard/profile", wrap(http.HandlerFunc(h.StudentProfile)))
	mux.Handle("GET /dashboard/events", wrap(http.HandlerFunc(h.StudentEvents)))
	mux.Handle("GET /dashboard/events/list", wrap(http.HandlerFunc(h.StudentEventsList)))
	mux.Handle("POST /dashboard/profile", wrap(http.HandlerFunc(h.UpdateProfile)))
	mux.Handle("POST /dashboard/profile/experience", wrap(http.HandlerFunc(h.AddExperience)))
	mux.Handle("POST /dashboard/profile/skills", wrap(http.HandlerFunc(h.AddSkill)))
}

// registerAdminRoutes wires the admin dashboard. List fragments are
// registered per view so they stay more specific than the student detail route.
func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.roleWrap(domainauth.RoleAdmin)
	mux.Handle("GET /admindashboard", wrap(http.HandlerFunc(h.AdminOverview)))
	mux.Handle("GET /admindashboard/{view}", wrap(http.HandlerFunc(h.AdminView)))
	for _, name := range service.AdminViews {
		mux.Handle("GET /admindashboard/"+name+"/list", wrap(h.AdminList(name)))
	}
	mux.Handle("GET /admindashboard/students/{id}", wrap(http.HandlerFunc(h.StudentDetail)))

	mux.Handle("POST /admindashboard/{view}", wrap(h.AdminAction(actionAdd)))
	mux.Handle("POST /admindashboard/{view}/{id}", wrap(h.AdminAction(actionEdit)))
	mux.Handle("POST /admindashboard/{view}/{id}/delete", wrap(h.AdminAction(actionDelete)))
	mux.Handle("POST /admindashboard/{view}/upload", wrap(http.HandlerFunc(h.Upload)))
}

// Landing renders the public entry page.
// GET /.
func (h *UIHandlers) Landing(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, PageMeta{Title: "Alumni Portal", PageTitle: "Welcome", CurrentPage: PageLanding})
	h.page(w, r, data)
}

// NotFound renders the 404 page for browsers and a JSON error otherwise.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("resource not found")})
		return
	}
	renderErrorPage(w, r, errorPage{T: h.T, Status: http.StatusNotFound, Message: "The page you are looking for does not exist."})
}

// hashedFilePattern matches content-hashed filenames such as app.abc12345.js.
var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders wraps a static file handler to add cache headers.
// Hashed assets are immutable; the rest are revalidated, and never cached in dev.
func staticWithCacheHeaders(handler http.Handler, isDev bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case hashedFilePattern.MatchString(r.URL.Path):
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case isDev:
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		default:
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound && !strings.HasPrefix(r.URL.Path, "/static/") && h.uiHandlers != nil {
		h.uiHandlers.NotFound(w, r)
		return
	}
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	_, _ = w.Write(c.buf.Bytes())
}
