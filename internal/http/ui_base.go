package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/domain/model"
	"github.com/net4grad/alumni-web/internal/domain/view"
	"github.com/net4grad/alumni-web/internal/http/ui/viewmodel"
	"github.com/net4grad/alumni-web/internal/ports"
	"github.com/net4grad/alumni-web/internal/service"
)

// DashboardUIService is the read surface the dashboard views need.
type DashboardUIService interface {
	Students(ctx context.Context, auth ports.UpstreamAuth, term string) view.State[model.Student]
	Alumni(ctx context.Context, auth ports.UpstreamAuth, term string) view.State[model.Alumnus]
	Events(ctx context.Context, auth ports.UpstreamAuth, term string) view.State[model.Event]
	Achievements(ctx context.Context, auth ports.UpstreamAuth, term string) view.State[model.Achievement]
	Overview(ctx context.Context, auth ports.UpstreamAuth) service.Overview
	Student(ctx context.Context, auth ports.UpstreamAuth, id string) (model.Student, error)
}

// ProfileUIService is the profile surface of the student dashboard.
type ProfileUIService interface {
	Profile(ctx context.Context, auth ports.UpstreamAuth) (model.Profile, error)
	Update(ctx context.Context, auth ports.UpstreamAuth, in model.ProfileUpdate) (model.Profile, error)
	AddExperience(ctx context.Context, auth ports.UpstreamAuth, in model.Experience) (model.Experience, error)
	AddSkill(ctx context.Context, auth ports.UpstreamAuth, skill string) (model.Profile, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ DashboardUIService   = (*service.DashboardService)(nil)
	_ ProfileUIService     = (*service.ProfileService)(nil)
	_ AuthServiceInterface = (*service.AuthService)(nil)
)

// UIHandlers serves browser-facing dashboard routes.
type UIHandlers struct {
	T              *TemplateRenderer
	Dashboard      DashboardUIService
	Profile        ProfileUIService
	MaxUploadBytes int64
	IsDev          bool // Development mode flag for enhanced error reporting
	Logger         *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

//nolint:gochecknoglobals // static navigation tables
var (
	studentNav = []viewmodel.NavItem{
		{Label: "Profile", Href: "/dashboard/profile", Page: PageStudentProfile},
		{Label: "Events", Href: "/dashboard/events", Page: PageStudentEvents},
	}
	adminNav = []viewmodel.NavItem{
		{Label: "Overview", Href: "/admindashboard", Page: PageAdminOverview},
		{Label: "Students", Href: "/admindashboard/students", Page: PageAdminStudents},
		{Label: "Alumni", Href: "/admindashboard/alumni", Page: PageAdminAlumni},
		{Label: "Events", Href: "/admindashboard/events", Page: PageAdminEvents},
		{Label: "Achievements", Href: "/admindashboard/achievements", Page: PageAdminAchievements},
	}
)

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		return layout
	}

	layout.IsAuthenticated = true
	layout.User = &viewmodel.User{
		Name:       session.DisplayName(),
		Identifier: session.Identifier,
		Role:       string(session.Role),
		RoleLabel:  session.Role.Label(),
	}
	switch session.Role {
	case domainauth.RoleAdmin:
		layout.IsAdmin = true
		layout.Nav = viewmodel.WithActive(adminNav, meta.CurrentPage)
	case domainauth.RoleStudent:
		layout.IsStudent = true
		layout.Nav = viewmodel.WithActive(studentNav, meta.CurrentPage)
	}
	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"IsStudent":       layout.IsStudent,
		"Nav":             layout.Nav,
	}

	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}

	return data
}

// renderPage renders a dashboard page with htmx partial support. Partial
// responses carry a <title> and an out-of-band header update with the content.
func renderPage(w http.ResponseWriter, r *http.Request, p pageRender) {
	if !WantsPartial(r) {
		if err := p.T.RenderFull(w, r, p.Data); err != nil {
			logAndRenderTemplateError(w, r, templateErr{Err: err, Context: "full page render", IsDev: p.IsDev, Logger: p.Logger})
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	title, _ := p.Data["Title"].(string)
	pageTitle, _ := p.Data["PageTitle"].(string)
	currentPage, _ := p.Data["CurrentPage"].(string)

	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		p.Logger.Error("failed to write partial document title", "error", err)
		return
	}
	oob := `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + html.EscapeString(pageTitle) + `</h1>`
	if _, err := w.Write([]byte(oob)); err != nil {
		p.Logger.Error("failed to write partial header title", "error", err)
		return
	}

	if err := p.T.t.ExecuteTemplate(w, ContentTemplateFor(currentPage), p.Data); err != nil {
		logAndRenderTemplateError(w, r, templateErr{Err: err, Context: "partial content render", IsDev: p.IsDev, Logger: p.Logger})
	}
}

// pageRender groups what renderPage needs.
type pageRender struct {
	T      *TemplateRenderer
	Data   map[string]any
	IsDev  bool
	Logger *slog.Logger
}

// page renders data through h's renderer.
func (h *UIHandlers) page(w http.ResponseWriter, r *http.Request, data map[string]any) {
	renderPage(w, r, pageRender{T: h.T, Data: data, IsDev: h.IsDev, Logger: h.logger()})
}

// fragment renders a named partial template with the given status.
func (h *UIHandlers) fragment(w http.ResponseWriter, r *http.Request, opts RenderOpts) {
	if err := h.T.Render(w, opts); err != nil {
		logAndRenderTemplateError(w, r, templateErr{
			Err: err, Context: "fragment " + opts.Template, IsDev: h.IsDev, Logger: h.logger(),
		})
	}
}

// templateErr describes a failed render for logAndRenderTemplateError.
type templateErr struct {
	Err     error
	Context string
	IsDev   bool
	Logger  *slog.Logger
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, te templateErr) {
	logger := te.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("template rendering failed",
		"error", te.Err,
		"context", te.Context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if te.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		body := `<div class="dev-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(te.Context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(te.Err.Error()) + `</pre></div>`
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			logger.Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderErrorPage renders the standalone error page for status.
func renderErrorPage(w http.ResponseWriter, r *http.Request, p errorPage) {
	data := basePageData(r, PageMeta{Title: "Alumni Portal - Error", PageTitle: http.StatusText(p.Status)})
	data["StatusCode"] = p.Status
	data["StatusText"] = http.StatusText(p.Status)
	data["Message"] = p.Message
	if err := p.T.RenderError(w, p.Status, data); err != nil {
		http.Error(w, p.Message, p.Status)
	}
}

// errorPage groups what renderErrorPage needs.
type errorPage struct {
	T       *TemplateRenderer
	Status  int
	Message string
}
