package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/mocks"
	mocksauth "github.com/net4grad/alumni-web/internal/mocks/auth"
	"github.com/net4grad/alumni-web/internal/service"
)

const (
	testCSRFToken = "test-csrf-token"
	testPassword  = "secret"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// portalFixture wires the real router and services over mocked upstream ports.
type portalFixture struct {
	portal   *mocks.MockPortalClient
	colleges *mocks.MockCollegeRegistrar
	gateway  *mocksauth.StubGateway
	store    *mocksauth.MemorySessionStore
	auth     *service.AuthService
	handler  http.Handler
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}

	ctrl := gomock.NewController(t)
	f := &portalFixture{
		portal:   mocks.NewMockPortalClient(ctrl),
		colleges: mocks.NewMockCollegeRegistrar(ctrl),
		gateway:  mocksauth.NewStubGateway("jane@example.com", testPassword, ""),
		store:    mocksauth.NewMemorySessionStore(),
	}
	f.auth = service.NewAuthService(service.AuthServiceOptions{
		Gateway:           f.gateway,
		Sessions:          f.store,
		Roles:             mocksauth.StaticRoleMapper{AdminRole: "Admin", StudentRole: "Student"},
		AllowAssertedRole: true,
	})

	handler, err := NewRouter(RouterServices{
		Auth:           f.auth,
		Dashboard:      service.NewDashboardService(service.DashboardServiceOptions{Portal: f.portal}),
		Profile:        service.NewProfileService(service.ProfileServiceOptions{Portal: f.portal}),
		Colleges:       f.colleges,
		TemplateFS:     os.DirFS(TemplatePathFromTest),
		StaticFS:       os.DirFS("../../frontend/static"),
		MaxUploadBytes: 1 << 16,
		Logger:         discardLogger(),
	})
	require.NoError(t, err)
	f.handler = handler
	return f
}

// session stores a live session for role and returns its cookie.
func (f *portalFixture) session(t *testing.T, role domainauth.Role) *http.Cookie {
	t.Helper()
	id := "sess-" + string(role)
	require.NoError(t, f.store.Save(context.Background(), domainauth.Session{
		ID:         id,
		Identifier: "jane@example.com",
		Name:       "Jane Doe",
		Role:       role,
		RoleSource: domainauth.RoleSourceAsserted,
		Token:      "tok-" + string(role),
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}))
	return &http.Cookie{Name: SessionCookieName, Value: id}
}

func (f *portalFixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// withCSRFPair attaches a matching double-submit cookie and header.
func withCSRFPair(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	return req
}

func htmxRequest(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
