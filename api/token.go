package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/linesmerrill/lifeline-api/policy"
)

// ErrInvalidToken is returned for tokens that fail signature or claim checks
var ErrInvalidToken = errors.New("invalid token")

// UserMetadata is the free-form session metadata the role is read from
type UserMetadata struct {
	Role string `json:"role,omitempty"`
}

// Claims are the claims carried by an access token
type Claims struct {
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Principal returns the principal the claims describe. A missing or
// unknown role resolves to responder.
func (c Claims) Principal() policy.Principal {
	return policy.NewPrincipal(c.Subject, c.Email, c.UserMetadata.Role)
}

// IssueToken signs an HS256 access token for p that expires after ttl.
func IssueToken(secret []byte, p policy.Principal, ttl time.Duration) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is not set")
	}
	now := time.Now().UTC()
	expires := now.Add(ttl)
	claims := Claims{
		Email:        p.Email,
		UserMetadata: UserMetadata{Role: string(p.Role)},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseToken verifies token against secret and returns its claims.
func ParseToken(secret []byte, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
