// Package token implements issuing and validating the signed identity tokens
// the API hands out at login. Tokens are HMAC-SHA256 JWTs carrying only the
// registered sub/iat/exp claims; possession is proof of authentication and
// there is no server-side revocation.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validation failures, distinguished for logs and metrics. The API boundary
// collapses all of them to a single unauthenticated signal.
var (
	ErrMalformed   = errors.New("token malformed")
	ErrExpired     = errors.New("token expired")
	ErrUnsupported = errors.New("token signing method unsupported")
	ErrInvalid     = errors.New("token invalid")
)

// Claims is the decoded payload of a validated token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies identity tokens against a single symmetric secret
// fixed at startup. All methods are safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec from the base64-encoded signing secret and token
// lifetime. A secret that does not decode, or decodes to nothing, is a
// configuration error the caller should treat as fatal.
func NewCodec(secretB64 string, ttl time.Duration) (*Codec, error) {
	secret, err := base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, fmt.Errorf("token: decode signing secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, errors.New("token: signing secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Codec{secret: secret, ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the codec's time source. Intended for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the given subject, valid from now until now+ttl.
func (c *Codec) Issue(subject string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry of raw and returns its claims.
// The returned error is always one of ErrMalformed, ErrExpired,
// ErrUnsupported, or ErrInvalid.
func (c *Codec) Validate(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalid
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrUnsupported
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupported):
			return nil, ErrUnsupported
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrInvalid
		}
	}
	if !parsed.Valid {
		return nil, ErrInvalid
	}

	out := &Claims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
