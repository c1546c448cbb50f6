package auth

// Package auth contains domain-level types for portal login and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"log/slog"
	"strings"
	"time"
)

// Role represents the portal audience a session belongs to.
// Keep string form for easy persistence and form values.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a submitted role tag onto a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleStudent || r == RoleAdmin }

// Label is the human readable name used on the credential form.
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student / Alumni"
	case RoleAdmin:
		return "Admin"
	default:
		return string(r)
	}
}

// RoleSource records how a session's role was established.
type RoleSource string

const (
	// RoleSourceClaim means the role came from a verified, server-signed token claim.
	RoleSourceClaim RoleSource = "claim"
	// RoleSourceAsserted means the role is the one chosen on the login form.
	RoleSourceAsserted RoleSource = "asserted"
)

// Credentials is the transient login input. It is never persisted.
type Credentials struct {
	Identifier string
	Password   string
	Role       Role
}

// Normalize trims surrounding whitespace from the identifier.
// The password is taken verbatim.
func (c Credentials) Normalize() Credentials {
	c.Identifier = strings.TrimSpace(c.Identifier)
	return c
}

// LogValue keeps the password out of structured logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("identifier", c.Identifier),
		slog.String("role", string(c.Role)),
	)
}

// Claims are the identity attributes carried by a verified upstream token.
type Claims struct {
	Subject   string
	Name      string
	Email     string
	Role      string
	CollegeID string
	ExpiresAt time.Time
}

// UpstreamCookie is a cookie issued by the upstream API that must be
// replayed on later calls made on behalf of the same session.
type UpstreamCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// Session is the server-side record persisted for a logged-in browser.
// ID is an opaque identifier carried in the browser-session cookie.
type Session struct {
	ID         string           `json:"id"`
	Identifier string           `json:"identifier"`
	Name       string           `json:"name,omitempty"`
	Role       Role             `json:"role"`
	RoleSource RoleSource       `json:"role_source"`
	Token      string           `json:"token,omitempty"`
	Cookies    []UpstreamCookie `json:"cookies,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	ExpiresAt  time.Time        `json:"expires_at"`
}

// Expired reports whether the record is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// IsAdmin returns true if the session belongs to an admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// IsStudent returns true if the session belongs to a student or alumnus.
func (s Session) IsStudent() bool { return s.Role == RoleStudent }

// DisplayName prefers the claimed name and falls back to the login identifier.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Identifier
}
