package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects where portal sessions are kept.
type SessionBackend string

const (
	// SessionBackendRedis stores sessions in Redis with a TTL.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendMemory keeps sessions in process memory (development only).
	SessionBackendMemory SessionBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (s *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "redis", "memory":
		*s = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: redis, memory)", v)
	}
}

// AuthConfig groups login, session and role-claim configuration.
type AuthConfig struct {
	// SessionBackend determines which session store is used.
	SessionBackend SessionBackend `env:"SESSION_BACKEND" envDefault:"redis"`

	// SessionTTL bounds how long an idle server-side session record survives.
	// The browser cookie itself is session-scoped.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// SessionPrefix namespaces session keys in Redis.
	SessionPrefix string `env:"SESSION_PREFIX" envDefault:"portal:session:"`

	// TokenSecret is the shared HMAC secret used to verify the role claim
	// carried by the upstream token. Empty disables claim verification.
	TokenSecret string `env:"AUTH_TOKEN_SECRET"`

	// AllowAssertedRole lets the role chosen on the login form stand in when
	// the upstream issues no verifiable claim.
	AllowAssertedRole bool `env:"AUTH_ALLOW_ASSERTED_ROLE" envDefault:"true"`

	// StudentRoles and AdminRoles list upstream claim values per portal role.
	StudentRoles []string `env:"AUTH_STUDENT_ROLES" envDefault:"Student;Alumni" envSeparator:";"`
	AdminRoles   []string `env:"AUTH_ADMIN_ROLES"   envDefault:"Admin;college"  envSeparator:";"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionBackend == "" {
		a.SessionBackend = SessionBackendRedis
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 12 * time.Hour
	}
	if strings.TrimSpace(a.SessionPrefix) == "" {
		a.SessionPrefix = "portal:session:"
	}
	a.TokenSecret = strings.TrimSpace(a.TokenSecret)
	a.StudentRoles = trimAll(a.StudentRoles)
	a.AdminRoles = trimAll(a.AdminRoles)
}

// ClaimVerificationEnabled reports whether upstream tokens can be verified.
func (a *AuthConfig) ClaimVerificationEnabled() bool {
	return a.TokenSecret != ""
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
