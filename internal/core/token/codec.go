// Package token signs and verifies the compact claim structures used as
// access and refresh tokens. A Codec is bound to exactly one secret, so the
// access and refresh token classes are issued and verified by two independent
// Codec instances and a compromise of one secret cannot forge the other class.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/diasys/diasys-api/internal/core/domain"
)

// Token type discriminators carried in the "type" claim. Verify does not
// enforce them; callers must check Claims.TokenType against the class they
// expect.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the signed payload of both token classes.
type Claims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256 tokens under a single secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime applied to issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token of the given type for the subject email. Each call
// mints a distinct token: the jti claim is a fresh UUID, so two tokens issued
// for the same subject in the same second still differ byte for byte. Stored
// refresh-token comparison relies on this.
func (c *Codec) Issue(email, tokenType string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token string. Any failure (bad signature,
// malformed structure, expiry in the past) collapses to ErrInvalidToken;
// expiry is a strict check with no leeway.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !t.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
