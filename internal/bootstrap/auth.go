package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/net4grad/alumni-web/config"
	"github.com/net4grad/alumni-web/internal/adapters/authroles"
	"github.com/net4grad/alumni-web/internal/adapters/claims"
	"github.com/net4grad/alumni-web/internal/adapters/memstore"
	redisadapter "github.com/net4grad/alumni-web/internal/adapters/redis"
	"github.com/net4grad/alumni-web/internal/observability/metrics"
	"github.com/net4grad/alumni-web/internal/ports"
	"github.com/net4grad/alumni-web/internal/service"
)

// sessionSweepInterval is how often the in-memory store drops expired sessions.
const sessionSweepInterval = time.Minute

// SessionBackend is the session store chosen at startup. Sweep is set only
// for stores that need a background reaper.
type SessionBackend struct {
	Store ports.SessionStore
	Kind  config.SessionBackend
	Sweep func(ctx context.Context) error
}

// BuildSessionStore selects the session store for the configured backend.
func BuildSessionStore(cfg config.AuthConfig, client redis.UniversalClient) (SessionBackend, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		store := memstore.NewSessionStore()
		return SessionBackend{
			Store: store,
			Kind:  config.SessionBackendMemory,
			Sweep: func(ctx context.Context) error {
				store.RunSweeper(ctx, sessionSweepInterval)
				return nil
			},
		}, nil
	case config.SessionBackendRedis, "":
		if client == nil {
			return SessionBackend{}, errors.New("redis session backend selected but redis client not configured")
		}
		return SessionBackend{
			Store: redisadapter.NewSessionStoreWithPrefix(client, cfg.SessionPrefix),
			Kind:  config.SessionBackendRedis,
		}, nil
	default:
		return SessionBackend{}, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

// AuthDeps contains dependencies for the auth service.
type AuthDeps struct {
	Auth     config.AuthConfig
	Gateway  ports.AuthGateway
	Sessions ports.SessionStore
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
}

// BuildAuthService wires login, role resolution and session persistence.
// Claims are verified only when a token secret is configured.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	if deps.Gateway == nil {
		return nil, errors.New("auth gateway is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("session store is required")
	}

	opts := service.AuthServiceOptions{
		Gateway:  deps.Gateway,
		Sessions: deps.Sessions,
		Roles: authroles.StaticRoleMapper{
			AdminRoles:   deps.Auth.AdminRoles,
			StudentRoles: deps.Auth.StudentRoles,
		},
		Router:            service.DefaultRoleRouter(),
		SessionTTL:        deps.Auth.SessionTTL,
		AllowAssertedRole: deps.Auth.AllowAssertedRole,
		Metrics:           deps.Metrics,
		Logger:            deps.Logger,
	}

	if deps.Auth.ClaimVerificationEnabled() {
		verifier, err := claims.NewHMACVerifier(deps.Auth.TokenSecret)
		if err != nil {
			return nil, fmt.Errorf("build claim verifier: %w", err)
		}
		opts.Verifier = verifier
	} else if deps.Logger != nil {
		deps.Logger.Warn("role claim verification disabled; roles come from the login form",
			"allow_asserted_role", deps.Auth.AllowAssertedRole)
	}

	return service.NewAuthService(opts), nil
}
