package ports

// Package ports defines interfaces (hexagonal ports) for portal behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
)

// LoginResult is what the upstream hands back for accepted credentials.
// Token is empty when the upstream issued none.
type LoginResult struct {
	Token   string
	Cookies []domainauth.UpstreamCookie
}

// AuthGateway submits credentials to the upstream identity endpoints.
// Any rejection or transport failure is returned as a non-nil error.
type AuthGateway interface {
	Authenticate(ctx context.Context, creds domainauth.Credentials) (LoginResult, error)
}

// SessionStore persists and retrieves portal sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// ClaimVerifier checks the signature of an upstream token and returns its claims.
type ClaimVerifier interface {
	Verify(token string) (domainauth.Claims, error)
}

// RoleMapper maps an upstream role claim to a portal role.
type RoleMapper interface {
	Map(claimRole string) (domainauth.Role, bool)
}

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired IDs.
var ErrSessionNotFound = errors.New("session not found")
