package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	apperrors "github.com/net4grad/alumni-web/internal/errors"
	"github.com/net4grad/alumni-web/internal/observability/metrics"
	"github.com/net4grad/alumni-web/internal/ports"
)

const defaultSessionTTL = 12 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Gateway  ports.AuthGateway
	Sessions ports.SessionStore
	// Verifier is optional; without it every role is taken from the login form
	// (when AllowAssertedRole is set).
	Verifier          ports.ClaimVerifier
	Roles             ports.RoleMapper
	Router            RoleRouter
	SessionTTL        time.Duration
	AllowAssertedRole bool
	Metrics           *metrics.Recorder
	Logger            *slog.Logger
	Now               func() time.Time
}

// AuthService orchestrates login by coordinating the upstream gateway, role
// resolution and session persistence.
type AuthService struct {
	gateway           ports.AuthGateway
	sessions          ports.SessionStore
	verifier          ports.ClaimVerifier
	roles             ports.RoleMapper
	router            RoleRouter
	ttl               time.Duration
	allowAssertedRole bool
	metrics           *metrics.Recorder
	logger            *slog.Logger
	now               func() time.Time
}

var (
	errSessionExpired   = errors.New("session expired")
	errNoVerifiedRole   = errors.New("no verifiable role claim")
	errUnknownClaimRole = errors.New("role claim does not map to a portal role")
)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	router := opts.Router
	if router.isZero() {
		router = DefaultRoleRouter()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		gateway:           opts.Gateway,
		sessions:          opts.Sessions,
		verifier:          opts.Verifier,
		roles:             opts.Roles,
		router:            router,
		ttl:               ttl,
		allowAssertedRole: opts.AllowAssertedRole,
		metrics:           opts.Metrics,
		logger:            logger.With("component", "auth"),
		now:               now,
	}
}

// ValidateCredentials performs the presence-only checks done before any
// upstream request. No format or strength rules apply.
func ValidateCredentials(c domainauth.Credentials) error {
	if !c.Role.Valid() {
		return apperrors.ValidationField("role", "Select how you want to sign in")
	}
	if strings.TrimSpace(c.Identifier) == "" {
		return apperrors.ValidationField("identifier", "Identifier is required")
	}
	if c.Password == "" {
		return apperrors.ValidationField("password", "Password is required")
	}
	return nil
}

// LoginInput groups parameters for a login attempt.
type LoginInput struct {
	Credentials domainauth.Credentials
	// PreviousSessionID is the browser's current session, if any. It is
	// always replaced by a fresh session ID. Its token and cookies carry over
	// only for the same identifier, and only when the upstream issues none.
	PreviousSessionID string
}

// LoginResult contains the persisted session and where to send the browser.
type LoginResult struct {
	Session     domainauth.Session
	Destination string
}

// Login validates the credentials, authenticates them upstream, resolves the
// portal role and persists a new session. Every upstream rejection or
// transport failure is reported as an InvalidCredentials error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	creds := in.Credentials.Normalize()
	if err := ValidateCredentials(creds); err != nil {
		return nil, err
	}

	res, err := s.gateway.Authenticate(ctx, creds)
	if err != nil {
		s.logger.WarnContext(ctx, "upstream login rejected", "credentials", creds, "error", err)
		loginErr := apperrors.InvalidCredentials(err)
		s.metrics.Login(metrics.LoginMetric{Role: string(creds.Role), Err: loginErr})
		return nil, loginErr
	}

	// Only this authentication's token may decide the role.
	role, source, claims, err := s.resolveRole(ctx, creds.Role, res.Token)
	if err != nil {
		s.logger.WarnContext(ctx, "login role could not be established", "credentials", creds, "error", err)
		loginErr := apperrors.InvalidCredentials(err)
		s.metrics.Login(metrics.LoginMetric{Role: string(creds.Role), Err: loginErr})
		return nil, loginErr
	}

	prev := s.previousSession(ctx, in.PreviousSessionID)
	token, cookies := res.Token, res.Cookies
	if prev != nil && prev.Identifier == creds.Identifier {
		if token == "" {
			token = prev.Token
		}
		if len(cookies) == 0 {
			cookies = prev.Cookies
		}
	}

	now := s.now()
	session := domainauth.Session{
		ID:         generateSessionID(),
		Identifier: creds.Identifier,
		Name:       claims.Name,
		Role:       role,
		RoleSource: source,
		Token:      token,
		Cookies:    cookies,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	if prev != nil {
		if delErr := s.sessions.Delete(ctx, prev.ID); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove replaced session", "error", delErr)
		}
	}

	if role != creds.Role {
		s.logger.InfoContext(ctx, "verified role overrides requested role",
			"requested", creds.Role, "resolved", role)
	}
	s.metrics.Login(metrics.LoginMetric{Role: string(role), RoleSource: string(source)})
	s.logger.InfoContext(ctx, "login succeeded", "role", role, "role_source", source)

	return &LoginResult{Session: session, Destination: s.router.Destination(role)}, nil
}

func (s *AuthService) previousSession(ctx context.Context, id string) *domainauth.Session {
	if id == "" {
		return nil
	}
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil
	}
	return sess
}

// resolveRole prefers the role in a verified token claim over the role
// chosen on the form.
func (s *AuthService) resolveRole(
	ctx context.Context,
	asserted domainauth.Role,
	token string,
) (domainauth.Role, domainauth.RoleSource, domainauth.Claims, error) {
	if s.verifier != nil && token != "" {
		claims, err := s.verifier.Verify(token)
		if err == nil {
			role, ok := s.roles.Map(claims.Role)
			if !ok {
				return "", "", domainauth.Claims{}, fmt.Errorf("%w: %q", errUnknownClaimRole, claims.Role)
			}
			return role, domainauth.RoleSourceClaim, claims, nil
		}
		s.logger.DebugContext(ctx, "token claim not verifiable", "error", err)
	}

	if s.allowAssertedRole {
		return asserted, domainauth.RoleSourceAsserted, domainauth.Claims{}, nil
	}
	return "", "", domainauth.Claims{}, errNoVerifiedRole
}

// SetToken replaces the upstream token stored for a session.
func (s *AuthService) SetToken(ctx context.Context, sessionID, token string) error {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.Token = token
	if saveErr := s.sessions.Save(ctx, *sess); saveErr != nil {
		return fmt.Errorf("save session: %w", saveErr)
	}
	return nil
}

// Token returns the upstream token stored for a session. An empty token with
// a nil error means the session exists but the upstream never issued one.
func (s *AuthService) Token(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Destination returns the dashboard path for a role.
func (s *AuthService) Destination(role domainauth.Role) string {
	return s.router.Destination(role)
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// generateSessionID creates a random, URL-safe session ID.
func generateSessionID() string {
	return uuid.New().String()
}
