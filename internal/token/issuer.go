// Package token mints the short-lived service-identity tokens the gateway
// attaches to every downstream call. A token asserts gateway-to-service
// trust only: it never carries end-user identity.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL bounds how long a downstream service may accept a gateway
// token. Tokens are minted fresh per call, so the window only needs to
// cover one request round trip plus clock skew.
const DefaultTTL = time.Minute

// Issuer signs service-identity tokens with the process-wide gateway
// secret. The secret is immutable after construction.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an issuer. An empty secret is a configuration error and
// must abort startup; it is never a per-call condition.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Sign mints a fresh HS256 token whose id claim equals the calling service
// identity. Callers must not cache the result across requests.
func (i *Issuer) Sign(service string) (string, error) {
	if service == "" {
		return "", fmt.Errorf("token: service identity is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  service,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
		"jti": uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}
