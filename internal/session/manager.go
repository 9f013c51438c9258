// Package session manages the client-side session credential. The gateway
// keeps no server-side session table: the credential is an opaque token
// minted by the auth service, carried inside a signed cookie, and validated
// only downstream.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "gateway/pkg/domain-errors"
)

// CookieName is the session cookie written to clients.
const CookieName = "session"

type contextKey struct{}

// WithToken stores a request's session token in its context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

// FromContext returns the session token established for this request, or
// "" when the request is unauthenticated.
func FromContext(ctx context.Context) string {
	token, _ := ctx.Value(contextKey{}).(string)
	return token
}

// Manager signs and reads the session cookie. It never interprets the
// embedded token: that stays opaque to every gateway component.
type Manager struct {
	secret []byte
	maxAge time.Duration
	secure bool
}

// NewManager builds a cookie manager. secure controls the cookie's Secure
// and SameSite=None attributes and must be true behind TLS-terminating
// proxies in production.
func NewManager(secret string, maxAge time.Duration, secure bool) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("session: cookie secret is required")
	}
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), maxAge: maxAge, secure: secure}, nil
}

// Write signs token into the session cookie. The existing cookie, if any,
// is replaced atomically in the response; no partial overwrite is possible
// because the cookie is a single header.
func (m *Manager) Write(w http.ResponseWriter, token string) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"token": token,
		"iat":   now.Unix(),
		"exp":   now.Add(m.maxAge).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("session: sign cookie: %w", err)
	}
	http.SetCookie(w, m.cookie(signed, int(m.maxAge.Seconds())))
	return nil
}

// Read extracts the opaque session token from the request cookie. An absent
// cookie is not an error: authorization is delegated downstream. A cookie
// that fails signature verification is a client error.
func (m *Manager) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", nil
	}
	parsed, err := jwt.Parse(cookie.Value, func(tok *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session cookie is invalid")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session cookie is invalid")
	}
	token, _ := claims["token"].(string)
	return token, nil
}

// Clear invalidates the session by expiring the cookie client-side.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	// Cross-site clients (the web frontend runs on its own origin) need
	// SameSite=None, which browsers only honour together with Secure.
	if m.secure {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
