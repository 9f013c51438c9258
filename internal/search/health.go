// Package search probes the platform's search index. The gateway only cares
// whether the cluster is reachable at startup; serving traffic never blocks
// on it.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Probe reports whether the Elasticsearch cluster behind baseURL answers a
// health request. The result is logged and returned; callers must not treat
// false as fatal.
func Probe(ctx context.Context, baseURL string, log *slog.Logger) bool {
	if baseURL == "" {
		log.Info("search health check skipped: no elasticsearch URL configured")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/_cluster/health", nil)
	if err != nil {
		log.Warn("search health check failed", "error", err)
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Warn("search index unreachable", "error", err)
		return false
	}
	defer resp.Body.Close()

	reachable := resp.StatusCode == http.StatusOK
	if reachable {
		log.Info("search index reachable")
	} else {
		log.Warn("search index returned unexpected status", "status", resp.StatusCode)
	}
	return reachable
}
