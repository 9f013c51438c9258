package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gateway/internal/session"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestStripParamPollutionKeepsLastValue(t *testing.T) {
	var got string
	h := StripParamPollution(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("sort")
		assert.Len(t, r.URL.Query()["sort"], 1)
	}))

	req := httptest.NewRequest(http.MethodGet, "/gigs?sort=asc&sort=desc", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "desc", got)
}

func TestStripParamPollutionLeavesCleanQueriesAlone(t *testing.T) {
	h := StripParamPollution(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "from=0&size=10", r.URL.RawQuery)
	}))
	req := httptest.NewRequest(http.MethodGet, "/gigs?from=0&size=10", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(true)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestSecureHeadersWithoutHSTS(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(false)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestCORSAllowsRegisteredOriginWithCredentials(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSGrantsNothingToUnknownOrigin(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	// Request still executes; denial is the absence of a grant.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSAnswersPreflight(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestBodyLimitRejectsOversizedPayload(t *testing.T) {
	h := BodyLimit(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			require.ErrorAs(t, err, &maxErr)
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestBodyLimitPassesSmallPayload(t *testing.T) {
	h := BodyLimit(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello"))
	h.ServeHTTP(httptest.NewRecorder(), req)
}

func TestSessionMiddlewareEstablishesContext(t *testing.T) {
	mgr, err := session.NewManager("cookie-secret", time.Hour, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Write(rec, "opaque-token"))

	var got string
	h := Session(mgr, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "opaque-token", got)
}

func TestSessionMiddlewareAllowsAnonymous(t *testing.T) {
	mgr, err := session.NewManager("cookie-secret", time.Hour, false)
	require.NoError(t, err)

	called := false
	h := Session(mgr, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, session.FromContext(r.Context()))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestSessionMiddlewareRejectsTamperedCookie(t *testing.T) {
	mgr, err := session.NewManager("cookie-secret", time.Hour, false)
	require.NoError(t, err)

	h := Session(mgr, discardLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}
