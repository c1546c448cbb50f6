package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/ports"
	"github.com/net4grad/alumni-web/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func sampleSession(id string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:         id,
		Identifier: "C001",
		Role:       domainauth.RoleStudent,
		RoleSource: domainauth.RoleSourceClaim,
		Token:      "tok",
		Cookies:    []domainauth.UpstreamCookie{{Name: "upstream_session", Value: "abc"}},
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := sampleSession("test-session-1", 30*time.Minute)
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.Identifier, retrieved.Identifier)
	assert.Equal(t, session.Role, retrieved.Role)
	assert.Equal(t, session.RoleSource, retrieved.RoleSource)
	assert.Equal(t, session.Token, retrieved.Token)
	assert.Equal(t, session.Cookies, retrieved.Cookies)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)

	ttl, err := client.TTL(ctx, defaultPrefix+"test-session-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 29*time.Minute)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "test:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession("test-session-delete", time.Hour)))
	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err := store.Get(ctx, "test-session-delete")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_RejectsInvalid(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, sampleSession("", time.Hour)))
	assert.Error(t, store.Save(ctx, sampleSession("expired", -time.Minute)))
}

func TestSessionStore_ExpiredRecordIsRemoved(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession("clock-skew", time.Hour)))

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := store.Get(ctx, "clock-skew")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	exists, err := client.Exists(ctx, defaultPrefix+"clock-skew").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}
