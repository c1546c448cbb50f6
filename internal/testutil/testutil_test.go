package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignToken(t *testing.T) {
	raw := SignToken(t, "s3cret", TokenClaims{Name: "Jane", Role: "Student"})

	parsed, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "Student", claims["role"])
	assert.Equal(t, "Jane", claims["name"])
	_, hasEmail := claims["email"]
	assert.False(t, hasEmail)
}

func TestTestTimeProvider(t *testing.T) {
	p := NewTestTimeProvider(TestTime())
	p.AddTime(time.Minute)

	assert.Equal(t, TestTime().Add(time.Minute), p.Now())
	assert.Equal(t, TestTime(), FixedTimeFunc(TestTime())())
}

func TestEnvBool(t *testing.T) {
	t.Setenv("TESTUTIL_FLAG", "Yes")
	assert.True(t, envBool("TESTUTIL_FLAG"))

	t.Setenv("TESTUTIL_FLAG", "0")
	assert.False(t, envBool("TESTUTIL_FLAG"))
}
