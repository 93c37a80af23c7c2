// Package auth provides password hashing, JWT issuance/validation, and the
// authentication middleware for the API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. Client registers or logs in with email + password
// 2. Server verifies credentials, issues a JWT access token
// 3. The token travels back on each request — either as
//    "Authorization: Bearer <jwt>" or in the HttpOnly "token" cookie
// 4. Middleware validates the token and sets the userID in the request
//    context; protected handlers read it from there
//
// WHY JWT?
// JWT (JSON Web Token) is stateless — the server doesn't need to store
// session data. All the information needed (userID, expiry) is inside the
// signed token. The signature ensures nobody can tamper with it without
// the secret key, and validation needs no DB lookup.
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: algorithm + token type → {"alg":"HS256","typ":"JWT"}
//	- Payload: claims (data) → {"sub":"userID","exp":1234567890}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sakif/course-api/internal/apperror"
)

// tokenIssuer is checked on validation — tokens minted by other apps that
// happen to share a secret are still rejected.
const tokenIssuer = "course-api"

// AccessTokenTTL is how long an access token stays valid. Thirty minutes —
// long enough for a lab session, short enough that a leaked token ages out.
const AccessTokenTTL = 30 * time.Minute

// TokenService handles JWT creation and validation. It holds the HMAC
// secret used to sign and verify — the same secret must be used for both.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production,
// e.g. JWT_SECRET=$(openssl rand -hex 32).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims — the standard fields (Issuer,
// Subject, ExpiresAt, IssuedAt). We use "sub" to carry the user ID.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a new access token for the given userID,
// valid for AccessTokenTTL.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, fast, and right for
// a single-server deployment. Multi-server key rotation would want RS256.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, AccessTokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Tests use this to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string, returning the userID from the
// "sub" claim.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid (wasn't tampered with)
//   - Token is not expired
//   - Issuer matches (prevents tokens from other apps)
//   - Algorithm is HS256 — jwt.WithValidMethods closes the classic
//     algorithm-confusion hole where an attacker sends alg:"none"
//
// Failures come back as apperror.Unauthorized so the middleware and
// handlers map them straight to 401.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperror.Unauthorized("token expired")
		}
		return "", apperror.Unauthorized("invalid token")
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", apperror.Unauthorized("invalid token claims")
	}

	if c.Subject == "" {
		return "", apperror.Unauthorized("token has no subject")
	}

	return c.Subject, nil
}
