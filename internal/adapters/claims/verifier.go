// Package claims verifies the signed token the upstream issues at login and
// extracts the identity claims the portal trusts for role routing.
package claims

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/ports"
)

// ErrNoRoleClaim is returned for a valid token that carries no role.
var ErrNoRoleClaim = errors.New("token has no role claim")

// tokenClaims mirrors the payload the upstream signs.
type tokenClaims struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CollegeID string `json:"collegeId"`
	jwt.RegisteredClaims
}

// HMACVerifier validates HS256/HS384/HS512 tokens against a shared secret.
type HMACVerifier struct {
	secret []byte
	leeway time.Duration
	now    func() time.Time
}

var _ ports.ClaimVerifier = (*HMACVerifier)(nil)

// NewHMACVerifier builds a verifier for the given shared secret.
func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	return &HMACVerifier{secret: []byte(secret), leeway: 30 * time.Second, now: time.Now}, nil
}

// Verify checks signature, algorithm and expiry, then returns the claims.
func (v *HMACVerifier) Verify(token string) (domainauth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domainauth.Claims{}, errors.New("token is empty")
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return domainauth.Claims{}, fmt.Errorf("verify token: %w", err)
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return domainauth.Claims{}, jwt.ErrTokenInvalidClaims
	}
	if strings.TrimSpace(tc.Role) == "" {
		return domainauth.Claims{}, ErrNoRoleClaim
	}

	out := domainauth.Claims{
		Subject:   tc.Subject,
		Name:      tc.Name,
		Email:     tc.Email,
		Role:      strings.TrimSpace(tc.Role),
		CollegeID: tc.CollegeID,
	}
	if tc.ExpiresAt != nil {
		out.ExpiresAt = tc.ExpiresAt.Time
	}
	return out, nil
}
