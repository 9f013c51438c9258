package middleware

import (
	"log/slog"
	"net/http"

	dErrors "gateway/pkg/domain-errors"
	"gateway/pkg/platform/httputil"
)

// Recover converts handler panics into the uniform 500 envelope instead of
// letting net/http kill the connection with no body.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.ErrorContext(r.Context(), "handler panic",
						"method", r.Method, "path", r.URL.Path, "panic", rec)
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, ""))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
