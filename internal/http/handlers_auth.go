package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	apperrors "github.com/net4grad/alumni-web/internal/errors"
	"github.com/net4grad/alumni-web/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Destination(role domainauth.Role) string
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for the credential form and session lifecycle.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	T            *TemplateRenderer
	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginPanelID is the element the credential form swaps itself into.
const loginPanelID = "login-panel"

// roleOption is one tab of the role selector.
type roleOption struct {
	Value  string
	Label  string
	Active bool
}

// loginForm is the view model behind the "login-form" partial.
type loginForm struct {
	Role       string
	RoleLabel  string
	Identifier string
	Errors     map[string]string
	Message    string
	Roles      []roleOption
	CSRFToken  string
}

func newLoginForm(r *http.Request, role domainauth.Role) loginForm {
	if !role.Valid() {
		role = domainauth.RoleStudent
	}
	opts := make([]roleOption, 0, 2)
	for _, candidate := range []domainauth.Role{domainauth.RoleStudent, domainauth.RoleAdmin} {
		opts = append(opts, roleOption{
			Value:  string(candidate),
			Label:  candidate.Label(),
			Active: candidate == role,
		})
	}
	return loginForm{
		Role:      string(role),
		RoleLabel: role.Label(),
		Errors:    map[string]string{},
		Roles:     opts,
		CSRFToken: GetCSRFToken(r),
	}
}

// LoginPage renders the credential form.
// GET /login?role=student|admin.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session := GetSessionFromContext(r.Context()); session != nil {
		browserRedirect(w, r, h.Svc.Destination(session.Role))
		return
	}

	role, _ := domainauth.ParseRole(r.URL.Query().Get("role"))
	form := newLoginForm(r, role)

	if WantsPartial(r) && HXTarget(r) == loginPanelID {
		h.renderForm(w, r, form, http.StatusOK)
		return
	}

	data := basePageData(r, PageMeta{Title: "Alumni Portal - Sign in", PageTitle: "Sign in", CurrentPage: PageLogin})
	data["Form"] = form
	renderPage(w, r, pageRender{T: h.T, Data: data, IsDev: h.IsDev, Logger: h.logger()})
}

// Login submits the credential form.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	role, _ := domainauth.ParseRole(r.PostFormValue("role"))
	creds := domainauth.Credentials{
		Identifier: r.PostFormValue("identifier"),
		Password:   r.PostFormValue("password"),
		Role:       role,
	}

	in := service.LoginInput{Credentials: creds}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		in.PreviousSessionID = c.Value
	}

	result, err := h.Svc.Login(r.Context(), in)
	if err != nil {
		h.loginFailed(w, r, creds, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)
	browserRedirect(w, r, result.Destination)
}

// loginFailed re-renders the form with the failure. The upstream cause is
// never shown; invalid credentials always read "Invalid credentials".
func (h *AuthHandlers) loginFailed(w http.ResponseWriter, r *http.Request, creds domainauth.Credentials, err error) {
	form := newLoginForm(r, creds.Role)
	form.Identifier = strings.TrimSpace(creds.Identifier)

	status := StatusForError(err)
	switch {
	case apperrors.IsValidation(err):
		if field := apperrors.GetField(err); field != "" {
			form.Errors[field] = apperrors.UserMessage(err)
		} else {
			form.Message = apperrors.UserMessage(err)
		}
	case apperrors.IsInvalidCredentials(err):
		form.Message = apperrors.UserMessage(err)
	default:
		h.logger().ErrorContext(r.Context(), "login failed", "credentials", creds, "error", err)
		form.Message = "Sign in is temporarily unavailable. Please try again."
		status = http.StatusInternalServerError
	}

	if IsHTMX(r) {
		h.renderForm(w, r, form, status)
		return
	}

	data := basePageData(r, PageMeta{Title: "Alumni Portal - Sign in", PageTitle: "Sign in", CurrentPage: PageLogin})
	data["Form"] = form
	if renderErr := h.T.Render(w, RenderOpts{Template: "layout", Status: status, Data: data}); renderErr != nil {
		logAndRenderTemplateError(w, r, templateErr{Err: renderErr, Context: "login page", IsDev: h.IsDev, Logger: h.logger()})
	}
}

func (h *AuthHandlers) renderForm(w http.ResponseWriter, r *http.Request, form loginForm, status int) {
	if err := h.T.Render(w, RenderOpts{Template: "login-form", Status: status, Data: form}); err != nil {
		logAndRenderTemplateError(w, r, templateErr{Err: err, Context: "login form", IsDev: h.IsDev, Logger: h.logger()})
	}
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, SessionCookieName)
	browserRedirect(w, r, "/")
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		h.clearCookie(w, r, SessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"identifier": session.Identifier,
			"name":       session.DisplayName(),
			"role":       session.Role,
			"roleSource": session.RoleSource,
		},
		"destination": h.Svc.Destination(session.Role),
		"expires_at":  session.ExpiresAt,
	})
}

// setSessionCookie writes the portal session cookie. It carries no Max-Age
// or Expires so it ends with the browser session.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearCookie clears a cookie by setting it to expire immediately.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
