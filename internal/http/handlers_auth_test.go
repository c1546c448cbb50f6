package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
)

func loginRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	return withCSRFPair(req)
}

func TestLoginPage_RendersRoleForm(t *testing.T) {
	f := newPortalFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/login?role=admin", nil)
	req.Header.Set("Accept", "text/html")
	rec := f.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "Sign in as Admin")
	assert.Contains(t, body, `name="role" value="admin"`)
	assert.NotNil(t, findCookie(rec.Result(), DefaultCSRFCookieName), "form pages issue a CSRF cookie")
}

func TestLoginPage_UnknownRoleDefaultsToStudent(t *testing.T) {
	f := newPortalFixture(t)

	rec := f.serve(httptest.NewRequest(http.MethodGet, "/login?role=superuser", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="role" value="student"`)
}

func TestLoginPage_HTMXRoleSwitchReturnsPanelOnly(t *testing.T) {
	f := newPortalFixture(t)

	req := htmxRequest(httptest.NewRequest(http.MethodGet, "/login?role=student", nil))
	req.Header.Set("HX-Target", loginPanelID)
	rec := f.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := strings.TrimSpace(rec.Body.String())
	assert.True(t, strings.HasPrefix(body, `<div id="login-panel"`), body)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Sign in as Student / Alumni")
}

func TestLoginPage_RedirectsSignedInUser(t *testing.T) {
	f := newPortalFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(f.session(t, domainauth.RoleAdmin))
	rec := f.serve(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admindashboard", rec.Header().Get("Location"))
}

func TestLogin_StudentSuccessSetsBrowserSessionCookie(t *testing.T) {
	f := newPortalFixture(t)

	rec := f.serve(loginRequest(url.Values{
		"identifier": {"  jane@example.com "},
		"password":   {testPassword},
		"role":       {"student"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	c := findCookie(rec.Result(), SessionCookieName)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Zero(t, c.MaxAge, "session cookie must not persist past the browser session")
	assert.True(t, c.Expires.IsZero())
	assert.Equal(t, 1, f.store.Len())

	calls := f.gateway.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "jane@example.com", calls[0].Identifier)
}

func TestLogin_HTMXAdminUsesHXRedirect(t *testing.T) {
	f := newPortalFixture(t)

	req := htmxRequest(loginRequest(url.Values{
		"identifier": {"jane@example.com"},
		"password":   {testPassword},
		"role":       {"admin"},
	}))
	rec := f.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/admindashboard", rec.Header().Get("HX-Redirect"))
}

func TestLogin_EmptyFieldsNeverReachUpstream(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{
			name:    "blank identifier",
			form:    url.Values{"identifier": {"   "}, "password": {"x"}, "role": {"student"}},
			wantMsg: "Identifier is required",
		},
		{
			name:    "empty password",
			form:    url.Values{"identifier": {"jane@example.com"}, "password": {""}, "role": {"admin"}},
			wantMsg: "Password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPortalFixture(t)

			rec := f.serve(htmxRequest(loginRequest(tt.form)))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.Empty(t, f.gateway.Calls())
			assert.Nil(t, findCookie(rec.Result(), SessionCookieName))
		})
	}
}

func TestLogin_RejectedCredentialsShowGenericMessage(t *testing.T) {
	f := newPortalFixture(t)

	rec := f.serve(htmxRequest(loginRequest(url.Values{
		"identifier": {"jane@example.com"},
		"password":   {"wrong"},
		"role":       {"student"},
	})))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid credentials")
	assert.NotContains(t, body, "upstream rejected")
	assert.Contains(t, body, `value="jane@example.com"`, "identifier is kept for resubmission")
	assert.Zero(t, f.store.Len())
}

func TestLogin_NonHTMXFailureRendersFullPage(t *testing.T) {
	f := newPortalFixture(t)

	rec := f.serve(loginRequest(url.Values{
		"identifier": {"jane@example.com"},
		"password":   {"wrong"},
		"role":       {"admin"},
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html")
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLogin_RequiresCSRFToken(t *testing.T) {
	f := newPortalFixture(t)

	form := url.Values{"identifier": {"jane@example.com"}, "password": {testPassword}, "role": {"student"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := f.serve(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.gateway.Calls())
}

func TestLogout_ClearsSession(t *testing.T) {
	f := newPortalFixture(t)
	cookie := f.session(t, domainauth.RoleStudent)

	req := withCSRFPair(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	req.Header.Set("Accept", "text/html")
	req.AddCookie(cookie)
	rec := f.serve(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	cleared := findCookie(rec.Result(), SessionCookieName)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
	assert.Zero(t, f.store.Len())
}

func TestStatus(t *testing.T) {
	f := newPortalFixture(t)

	rec := f.serve(httptest.NewRequest(http.MethodGet, "/auth/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(f.session(t, domainauth.RoleAdmin))
	rec = f.serve(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Authenticated bool   `json:"authenticated"`
		Destination   string `json:"destination"`
		User          struct {
			Role string `json:"role"`
			Name string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, "admin", body.User.Role)
	assert.Equal(t, "Jane Doe", body.User.Name)
	assert.Equal(t, "/admindashboard", body.Destination)
}
