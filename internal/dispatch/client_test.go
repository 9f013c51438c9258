package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gateway/internal/session"
	"gateway/internal/token"
	dErrors "gateway/pkg/domain-errors"
)

const testSecret = "gateway-test-secret"

func newIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	issuer, err := token.NewIssuer(testSecret, time.Minute)
	require.NoError(t, err)
	return issuer
}

func serviceClaim(t *testing.T, signed string) string {
	t.Helper()
	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	id, _ := claims["id"].(string)
	return id
}

func TestCallAttachesFreshServiceToken(t *testing.T) {
	var seen []string
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(GatewayTokenHeader))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	}))
	defer downstream.Close()

	client, err := New(downstream.URL, "buyer", newIssuer(t))
	require.NoError(t, err)

	for range 2 {
		_, err := client.Call(context.Background(), Spec{Method: http.MethodGet, Path: "/username"})
		require.NoError(t, err)
	}

	require.Len(t, seen, 2)
	for _, signed := range seen {
		assert.Equal(t, "buyer", serviceClaim(t, signed))
	}
	assert.NotEqual(t, seen[0], seen[1], "token must be minted fresh per call")
}

func TestCallPassesThroughSuccessEnvelope(t *testing.T) {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/manny", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Buyer profile",
			"buyer":   map[string]any{"username": "manny"},
		})
	}))
	defer downstream.Close()

	client, err := New(downstream.URL, "buyer", newIssuer(t))
	require.NoError(t, err)

	reply, err := client.Call(context.Background(), Spec{Method: http.MethodGet, Path: "/manny"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, reply.Status)
	assert.Equal(t, "Buyer profile", reply.Body["message"])
	assert.Equal(t, "manny", reply.Body["buyer"].(map[string]any)["username"])
}

func TestCallForwardsSessionTokenAsBearer(t *testing.T) {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer opaque-user-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	}))
	defer downstream.Close()

	client, err := New(downstream.URL, "auth", newIssuer(t))
	require.NoError(t, err)

	ctx := session.WithToken(context.Background(), "opaque-user-token")
	_, err = client.Call(ctx, Spec{Method: http.MethodGet, Path: "/currentuser"})
	require.NoError(t, err)
}

func TestCallTranslatesDownstreamRejection(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
	}{
		{"bad request", http.StatusBadRequest, "Invalid credentials"},
		{"not found", http.StatusNotFound, "Buyer not found"},
		{"internal", http.StatusInternalServerError, "something broke"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"message":    tt.message,
					"stack":      "Error: at /usr/src/app/server.js:42",
					"comingFrom": "internal handler",
				})
			}))
			defer downstream.Close()

			client, err := New(downstream.URL, "auth", newIssuer(t))
			require.NoError(t, err)

			_, err = client.Call(context.Background(), Spec{Method: http.MethodGet, Path: "/x"})
			require.Error(t, err)

			e, ok := dErrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, dErrors.HTTPStatus(e))
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, "auth", e.Origin)
			assert.NotContains(t, e.Message, "server.js")
		})
	}
}

func TestCallTranslatesUnreachableDownstream(t *testing.T) {
	// Closed port: connection refused.
	client, err := New("http://127.0.0.1:1", "order", newIssuer(t))
	require.NoError(t, err)

	_, err = client.Call(context.Background(), Spec{Method: http.MethodGet, Path: "/orders"})
	require.Error(t, err)

	e, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeBadGateway, e.Code)
	assert.Equal(t, "order service is unreachable", e.Message)
	assert.NotContains(t, e.Message, "127.0.0.1")
}

func TestCallTranslatesTimeout(t *testing.T) {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer downstream.Close()

	client, err := New(downstream.URL, "gig", newIssuer(t),
		WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Call(context.Background(), Spec{Method: http.MethodGet, Path: "/search"})
	require.Error(t, err)

	e, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeGatewayTimeout, e.Code)
}

func TestCallEncodesQueryAndRawBody(t *testing.T) {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["text"])
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	}))
	defer downstream.Close()

	client, err := New(downstream.URL, "message", newIssuer(t))
	require.NoError(t, err)

	_, err = client.Call(context.Background(), Spec{
		Method: http.MethodPost,
		Path:   "/",
		Query:  url.Values{"size": []string{"10"}},
		Body:   json.RawMessage(`{"text":"hello"}`),
	})
	require.NoError(t, err)
}

func TestNewValidatesInputs(t *testing.T) {
	issuer := newIssuer(t)

	_, err := New("http://localhost:4002", "", issuer)
	assert.Error(t, err)

	_, err = New("://bad", "auth", issuer)
	assert.Error(t, err)

	_, err = New("http://localhost:4002", "auth", nil)
	assert.Error(t, err)
}
