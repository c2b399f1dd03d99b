// Package auth issues and verifies session tokens and carries the verified
// identity through a request context.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of a session token and its cookie.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrTokenInvalid covers malformed tokens, bad signatures and foreign claims.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned once the expiry instant has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrMissingSecret is returned when no signing secret is configured.
	ErrMissingSecret = errors.New("signing secret is not configured")
)

// TokenAuthenticator signs and verifies HS256 session tokens. It holds no
// per-session state.
type TokenAuthenticator struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a TokenAuthenticator.
type Option func(*TokenAuthenticator)

// WithIssuer sets the iss claim written and required.
func WithIssuer(issuer string) Option {
	return func(a *TokenAuthenticator) { a.issuer = issuer }
}

// WithAudience sets the aud claim written and required.
func WithAudience(audience string) Option {
	return func(a *TokenAuthenticator) { a.audience = audience }
}

// WithTTL overrides DefaultTokenTTL.
func WithTTL(ttl time.Duration) Option {
	return func(a *TokenAuthenticator) { a.ttl = ttl }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *TokenAuthenticator) { a.now = now }
}

// NewTokenAuthenticator returns an authenticator signing with secret.
func NewTokenAuthenticator(secret string, opts ...Option) (*TokenAuthenticator, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	a := &TokenAuthenticator{
		secret:   []byte(secret),
		issuer:   "feedengine-api",
		audience: "feedengine-client",
		ttl:      DefaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// TTL returns the token lifetime.
func (a *TokenAuthenticator) TTL() time.Duration {
	return a.ttl
}

// Issue signs a token whose subject is userID.
func (a *TokenAuthenticator) Issue(userID uint) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrMissingSecret
	}
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    a.issuer,
		Audience:  jwt.ClaimStrings{a.audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer, audience and expiry and returns
// the user id carried in the subject.
func (a *TokenAuthenticator) Verify(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrTokenInvalid
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrTokenInvalid, claims.Subject)
	}
	return uint(userID), nil
}
