// Package middleware holds the gateway's request pipeline stages. Order is
// fixed by the router; every stage either passes the request on or writes
// the uniform error envelope and stops.
package middleware

import (
	"log/slog"
	"net/http"

	"gateway/internal/session"
	"gateway/pkg/platform/httputil"
)

// Session decodes the signed session cookie into request context. Absence is
// not an error at this stage: authorization is delegated to downstream
// services. A cookie that fails signature verification is rejected here.
func Session(cookies *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cookies.Read(r)
			if err != nil {
				log.WarnContext(r.Context(), "rejecting malformed session cookie",
					"remote", r.RemoteAddr)
				httputil.WriteError(w, err)
				return
			}
			if token != "" {
				r = r.WithContext(session.WithToken(r.Context(), token))
			}
			next.ServeHTTP(w, r)
		})
	}
}
