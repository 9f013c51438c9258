package middleware

import "net/http"

// StripParamPollution collapses duplicated query keys to their last value
// before a handler sees the request. Handlers and facades can then treat
// every query key as single-valued.
func StripParamPollution(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		polluted := false
		for key, values := range query {
			if len(values) > 1 {
				query[key] = values[len(values)-1:]
				polluted = true
			}
		}
		if polluted {
			r.URL.RawQuery = query.Encode()
		}
		next.ServeHTTP(w, r)
	})
}
