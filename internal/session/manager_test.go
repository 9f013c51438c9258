package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "gateway/pkg/domain-errors"
)

func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestWriteReadRoundTrip(t *testing.T) {
	mgr, err := NewManager("cookie-secret", time.Hour, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Write(rec, "opaque-auth-token"))

	token, err := mgr.Read(requestWithCookies(rec))
	require.NoError(t, err)
	assert.Equal(t, "opaque-auth-token", token)
}

func TestReadAbsentCookieIsNotAnError(t *testing.T) {
	mgr, err := NewManager("cookie-secret", time.Hour, false)
	require.NoError(t, err)

	token, err := mgr.Read(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestReadRejectsTamperedCookie(t *testing.T) {
	mgr, err := NewManager("cookie-secret", time.Hour, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-signed-value"})

	_, err = mgr.Read(req)
	require.Error(t, err)
	e, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeUnauthorized, e.Code)
}

func TestReadRejectsCookieSignedWithOtherSecret(t *testing.T) {
	writer, err := NewManager("secret-one", time.Hour, false)
	require.NoError(t, err)
	reader, err := NewManager("secret-two", time.Hour, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, writer.Write(rec, "tok"))

	_, err = reader.Read(requestWithCookies(rec))
	assert.Error(t, err)
}

func TestClearExpiresCookie(t *testing.T) {
	mgr, err := NewManager("cookie-secret", time.Hour, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mgr.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestSecureCookieUsesSameSiteNone(t *testing.T) {
	mgr, err := NewManager("cookie-secret", time.Hour, true)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Write(rec, "tok"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)
	assert.True(t, cookies[0].HttpOnly)
}
