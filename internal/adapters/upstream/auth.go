package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/publicsuffix"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/ports"
)

// loginResponse covers both token spellings the upstream has used.
type loginResponse struct {
	CSRFToken string `json:"csrf_token"`
	Token     string `json:"token"`
}

func (r loginResponse) token() string {
	if t := strings.TrimSpace(r.CSRFToken); t != "" {
		return t
	}
	return strings.TrimSpace(r.Token)
}

// Authenticate posts the credentials to the role's login endpoint. Cookies
// the upstream sets are captured so later calls for the session stay credentialed.
func (c *Client) Authenticate(ctx context.Context, creds domainauth.Credentials) (ports.LoginResult, error) {
	path, idField, err := c.loginTarget(creds.Role)
	if err != nil {
		return ports.LoginResult{}, err
	}

	base, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("create cookie jar: %w", err)
	}
	jar := &recordingJar{CookieJar: base}
	hc := *c.client
	hc.Jar = jar

	operation := "login_" + string(creds.Role)
	req, err := c.newRequest(ctx, requestSpec{
		Operation: operation,
		Method:    http.MethodPost,
		Path:      path,
		Body: map[string]string{
			idField:    creds.Identifier,
			"password": creds.Password,
		},
	})
	if err != nil {
		return ports.LoginResult{}, err
	}

	body, err := c.do(&hc, req, operation)
	if err != nil {
		return ports.LoginResult{}, err
	}

	var parsed loginResponse
	if len(body) > 0 {
		if jerr := json.Unmarshal(body, &parsed); jerr != nil {
			c.logger.WarnContext(ctx, "login response was not JSON; continuing without token", "role", creds.Role)
		}
	}

	return ports.LoginResult{
		Token:   parsed.token(),
		Cookies: jar.captured(),
	}, nil
}

func (c *Client) loginTarget(role domainauth.Role) (string, string, error) {
	switch role {
	case domainauth.RoleStudent:
		return c.paths.StudentLogin, c.studentIDField, nil
	case domainauth.RoleAdmin:
		return c.paths.AdminLogin, c.adminIDField, nil
	default:
		return "", "", fmt.Errorf("unsupported login role %q", role)
	}
}

// recordingJar keeps every cookie the upstream sets during login, whatever
// path or domain it is scoped to, while the wrapped jar still serves
// redirects.
type recordingJar struct {
	http.CookieJar

	mu   sync.Mutex
	seen []domainauth.UpstreamCookie
}

func (j *recordingJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.CookieJar.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()
	for _, ck := range cookies {
		rec := domainauth.UpstreamCookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     cookiePath(u, ck.Path),
			Domain:   fallbackString(strings.TrimPrefix(ck.Domain, "."), u.Hostname()),
			Expires:  ck.Expires,
			Secure:   ck.Secure,
			HTTPOnly: ck.HttpOnly,
		}
		j.seen = slices.DeleteFunc(j.seen, func(o domainauth.UpstreamCookie) bool {
			return o.Name == rec.Name && o.Path == rec.Path && o.Domain == rec.Domain
		})
		if ck.MaxAge < 0 || ck.Value == "" {
			continue
		}
		j.seen = append(j.seen, rec)
	}
}

func (j *recordingJar) captured() []domainauth.UpstreamCookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.seen) == 0 {
		return nil
	}
	return slices.Clone(j.seen)
}

// cookiePath applies the default-path rule for cookies set without a Path.
func cookiePath(u *url.URL, p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	dir := u.Path
	if i := strings.LastIndex(dir, "/"); i > 0 {
		return dir[:i]
	}
	return "/"
}

// pathMatches reports whether a cookie scoped to scope applies to reqPath.
func pathMatches(scope, reqPath string) bool {
	if scope == "" || scope == "/" || scope == reqPath {
		return true
	}
	if !strings.HasPrefix(reqPath, scope) {
		return false
	}
	return strings.HasSuffix(scope, "/") || reqPath[len(scope)] == '/'
}
