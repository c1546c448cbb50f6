package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/domain/model"
	"github.com/net4grad/alumni-web/internal/ports"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "ftp://example.com"})
	require.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://api.internal:8000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:8000/students/", c.endpoint("/students/"))
}

func TestAuthenticate_RoutesByRole(t *testing.T) {
	tests := []struct {
		role     domainauth.Role
		wantPath string
	}{
		{role: domainauth.RoleStudent, wantPath: "/login"},
		{role: domainauth.RoleAdmin, wantPath: "/college-login"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			var gotPath string
			var gotBody map[string]string

			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				http.SetCookie(w, &http.Cookie{Name: "upstream_session", Value: "abc", Path: "/"})
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"csrf_token":"tok-1"}`)
			}))

			res, err := c.Authenticate(context.Background(), domainauth.Credentials{
				Identifier: "C001", Password: "pw", Role: tt.role,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, map[string]string{"collegeId": "C001", "password": "pw"}, gotBody)
			assert.Equal(t, "tok-1", res.Token)
			require.Len(t, res.Cookies, 1)
			assert.Equal(t, "upstream_session", res.Cookies[0].Name)
			assert.Equal(t, "abc", res.Cookies[0].Value)
		})
	}
}

func TestAuthenticate_TokenFallbackAndMissing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "token field", body: `{"token":"jwt-1","user_info":{}}`, want: "jwt-1"},
		{name: "csrf wins", body: `{"csrf_token":"c","token":"t"}`, want: "c"},
		{name: "no token", body: `{}`, want: ""},
		{name: "not json", body: `ok`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			res, err := c.Authenticate(context.Background(), domainauth.Credentials{
				Identifier: "x", Password: "y", Role: domainauth.RoleStudent,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Token)
		})
	}
}

func TestAuthenticate_NonSuccessIsError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"User not found"}`)
	}))

	_, err := c.Authenticate(context.Background(), domainauth.Credentials{
		Identifier: "x", Password: "y", Role: domainauth.RoleAdmin,
	})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestAuthenticate_CustomIdentifierField(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, StudentIDField: "email"})
	require.NoError(t, err)

	_, err = c.Authenticate(context.Background(), domainauth.Credentials{
		Identifier: "jane@x.com", Password: "pw", Role: domainauth.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", gotBody["email"])
}

func TestListStudents_SendsSessionCredentials(t *testing.T) {
	var gotToken, gotCookie string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students/", r.URL.Path)
		gotToken = r.Header.Get("X-CSRF-Token")
		if ck, err := r.Cookie("upstream_session"); err == nil {
			gotCookie = ck.Value
		}
		_, _ = io.WriteString(w, `[{"id":"1","name":"Jane Doe","email":"jane@x.com"},{"_id":"2","name":"Sam Lee"}]`)
	}))

	auth := ports.UpstreamAuth{
		Token:   "tok-9",
		Cookies: []domainauth.UpstreamCookie{{Name: "upstream_session", Value: "abc"}},
	}
	rows, err := c.ListStudents(context.Background(), auth)
	require.NoError(t, err)

	assert.Equal(t, "tok-9", gotToken)
	assert.Equal(t, "abc", gotCookie)
	require.Len(t, rows, 2)
	assert.Equal(t, model.FlexString("2"), rows[1].ID)
}

func TestListEndpoints_Envelopes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/alumni/":
			_, _ = io.WriteString(w, `{"items":[{"id":"a1","name":"Ann"}]}`)
		case "/events/":
			_, _ = io.WriteString(w, `{"data":[{"id":"e1","title":"Meetup","attendees":3}]}`)
		case "/achievements/":
			_, _ = io.WriteString(w, `null`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	alumni, err := c.ListAlumni(context.Background(), ports.UpstreamAuth{})
	require.NoError(t, err)
	assert.Len(t, alumni, 1)

	events, err := c.ListEvents(context.Background(), ports.UpstreamAuth{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].Attendees)

	achievements, err := c.ListAchievements(context.Background(), ports.UpstreamAuth{})
	require.NoError(t, err)
	assert.Empty(t, achievements)
}

func TestListStudents_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "unauthorized", handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusUnauthorized) }},
		{name: "server error", handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{name: "malformed body", handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, `{"rows":`) }},
		{name: "object without list", handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, `{"ok":true}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.ListStudents(context.Background(), ports.UpstreamAuth{Token: "t"})
			require.Error(t, err)
		})
	}
}

func TestListStudents_TimeoutEndsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.ListStudents(context.Background(), ports.UpstreamAuth{})
	require.Error(t, err)
}

func TestProfileOperations(t *testing.T) {
	var skillBody map[string]string
	var updateMethod string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users/me" && r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `{"name":"Jane","gradYear":2022,"skills":["Go"]}`)
		case r.URL.Path == "/users/me" && r.Method == http.MethodPut:
			updateMethod = r.Method
			var in model.ProfileUpdate
			_ = json.NewDecoder(r.Body).Decode(&in)
			_ = json.NewEncoder(w).Encode(map[string]any{"name": in.Name, "department": in.Department})
		case r.URL.Path == "/users/me/experience":
			_, _ = io.WriteString(w, `{}`)
		case r.URL.Path == "/users/me/skills":
			_ = json.NewDecoder(r.Body).Decode(&skillBody)
			_, _ = io.WriteString(w, `{"ok":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()
	auth := ports.UpstreamAuth{Token: "t"}

	p, err := c.GetProfile(ctx, auth)
	require.NoError(t, err)
	assert.Equal(t, "2022", p.GraduationYear.String())

	p, err = c.UpdateProfile(ctx, auth, model.ProfileUpdate{Name: "Jane D", Department: "CSE"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, updateMethod)
	assert.Equal(t, "Jane D", p.Name)

	exp := model.Experience{Title: "Engineer", Company: "Acme"}
	got, err := c.AddExperience(ctx, auth, exp)
	require.NoError(t, err)
	assert.Equal(t, exp, got)

	require.NoError(t, c.AddSkill(ctx, auth, "Rust"))
	assert.Equal(t, map[string]string{"skill": "Rust"}, skillBody)
}

func TestRegisterCollege_RelaysVerbatim(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/colleges/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"collegeId":"C9"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"detail":"College already exists"}`)
	}))

	res, err := c.RegisterCollege(context.Background(), []byte(`{"collegeId":"C9"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "application/json", res.ContentType)
	assert.JSONEq(t, `{"detail":"College already exists"}`, string(res.Body))
}

func TestRegisterCollege_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.RegisterCollege(context.Background(), []byte(`{}`))
	require.Error(t, err)
}

func TestBearerHeaderOptIn(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, SendBearer: true})
	require.NoError(t, err)

	_, err = c.ListEvents(context.Background(), ports.UpstreamAuth{Token: "jwt"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt", gotAuth)
}

func TestAuthenticate_CapturesScopedCookies(t *testing.T) {
	var studentsCookies, profileCookies []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		names := func() []string {
			var out []string
			for _, ck := range r.Cookies() {
				out = append(out, ck.Name)
			}
			return out
		}
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "upstream_session", Value: "abc"})
			http.SetCookie(w, &http.Cookie{Name: "profile_scope", Value: "p1", Path: "/users"})
			http.SetCookie(w, &http.Cookie{Name: "stale", Value: "", MaxAge: -1})
			_, _ = io.WriteString(w, `{"csrf_token":"tok-1"}`)
		case "/students/":
			studentsCookies = names()
			_, _ = io.WriteString(w, `[]`)
		case "/users/me":
			profileCookies = names()
			_, _ = io.WriteString(w, `{"name":"Jane"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	ctx := context.Background()

	res, err := c.Authenticate(ctx, domainauth.Credentials{
		Identifier: "jane@x.com", Password: "pw", Role: domainauth.RoleStudent,
	})
	require.NoError(t, err)
	require.Len(t, res.Cookies, 2)

	paths := map[string]string{}
	for _, ck := range res.Cookies {
		paths[ck.Name] = ck.Path
		assert.Equal(t, "127.0.0.1", ck.Domain)
	}
	assert.Equal(t, map[string]string{"upstream_session": "/", "profile_scope": "/users"}, paths)

	auth := ports.UpstreamAuth{Token: res.Token, Cookies: res.Cookies}
	_, err = c.ListStudents(ctx, auth)
	require.NoError(t, err)
	_, err = c.GetProfile(ctx, auth)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"upstream_session"}, studentsCookies)
	assert.ElementsMatch(t, []string{"upstream_session", "profile_scope"}, profileCookies)
}

func TestPathMatches(t *testing.T) {
	tests := []struct {
		cookiePath string
		reqPath    string
		want       bool
	}{
		{cookiePath: "", reqPath: "/students/", want: true},
		{cookiePath: "/", reqPath: "/students/", want: true},
		{cookiePath: "/users", reqPath: "/users", want: true},
		{cookiePath: "/users", reqPath: "/users/me", want: true},
		{cookiePath: "/users/", reqPath: "/users/me", want: true},
		{cookiePath: "/users", reqPath: "/usersettings", want: false},
		{cookiePath: "/users", reqPath: "/students/", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.cookiePath+"->"+tt.reqPath, func(t *testing.T) {
			assert.Equal(t, tt.want, pathMatches(tt.cookiePath, tt.reqPath))
		})
	}
}

func TestListStudents_ResponseTooLarge(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "[")
		_, _ = io.WriteString(w, strings.Repeat(" ", maxResponseBytes))
		_, _ = io.WriteString(w, "]")
	}))

	_, err := c.ListStudents(context.Background(), ports.UpstreamAuth{Token: "t"})

	require.ErrorIs(t, err, ErrResponseTooLarge)
}

func TestReadBounded_AtLimit(t *testing.T) {
	body, err := readBounded(strings.NewReader(strings.Repeat("a", maxResponseBytes)))

	require.NoError(t, err)
	assert.Len(t, body, maxResponseBytes)
}
