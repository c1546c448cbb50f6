package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"strings"
	"sync"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthGateway   = (*StubGateway)(nil)
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.RoleMapper    = (*StaticRoleMapper)(nil)
	_ ports.ClaimVerifier = (*StubVerifier)(nil)
)

// ErrRejected is the default error StubGateway returns for unknown credentials.
var ErrRejected = errors.New("upstream rejected credentials")

// StubGateway accepts one password per identifier and records every call.
type StubGateway struct {
	AuthenticateFunc func(ctx context.Context, creds domainauth.Credentials) (ports.LoginResult, error)

	// Accounts maps identifier to password for the default behavior.
	Accounts map[string]string
	// Token is returned for accepted logins.
	Token   string
	Cookies []domainauth.UpstreamCookie

	mu    sync.Mutex
	calls []domainauth.Credentials
}

// NewStubGateway returns a gateway that accepts the given identifier/password pair.
func NewStubGateway(identifier, password, token string) *StubGateway {
	return &StubGateway{
		Accounts: map[string]string{identifier: password},
		Token:    token,
	}
}

func (g *StubGateway) Authenticate(ctx context.Context, creds domainauth.Credentials) (ports.LoginResult, error) {
	g.mu.Lock()
	g.calls = append(g.calls, creds)
	g.mu.Unlock()

	if g.AuthenticateFunc != nil {
		return g.AuthenticateFunc(ctx, creds)
	}
	if pw, ok := g.Accounts[creds.Identifier]; !ok || pw != creds.Password {
		return ports.LoginResult{}, ErrRejected
	}
	return ports.LoginResult{Token: g.Token, Cookies: g.Cookies}, nil
}

// Calls returns the credentials submitted so far.
func (g *StubGateway) Calls() []domainauth.Credentials {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domainauth.Credentials, len(g.calls))
	copy(out, g.calls)
	return out
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if id == "" || !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StaticRoleMapper maps claim roles by exact (case-insensitive) name.
type StaticRoleMapper struct {
	AdminRole   string
	StudentRole string
}

func (m StaticRoleMapper) Map(claimRole string) (domainauth.Role, bool) {
	switch {
	case m.AdminRole != "" && strings.EqualFold(claimRole, m.AdminRole):
		return domainauth.RoleAdmin, true
	case m.StudentRole != "" && strings.EqualFold(claimRole, m.StudentRole):
		return domainauth.RoleStudent, true
	default:
		return "", false
	}
}

// StubVerifier returns fixed claims for known tokens and Err for the rest.
type StubVerifier struct {
	Tokens map[string]domainauth.Claims
	Err    error
}

// ErrUnverifiable is the default StubVerifier error.
var ErrUnverifiable = errors.New("token not verifiable")

func (v StubVerifier) Verify(token string) (domainauth.Claims, error) {
	if c, ok := v.Tokens[token]; ok {
		return c, nil
	}
	if v.Err != nil {
		return domainauth.Claims{}, v.Err
	}
	return domainauth.Claims{}, ErrUnverifiable
}
