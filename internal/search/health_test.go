package search

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestProbeReachableCluster(t *testing.T) {
	es := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_cluster/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer es.Close()

	assert.True(t, Probe(context.Background(), es.URL, discardLogger()))
}

func TestProbeUnreachableCluster(t *testing.T) {
	assert.False(t, Probe(context.Background(), "http://127.0.0.1:1", discardLogger()))
}

func TestProbeSkippedWithoutURL(t *testing.T) {
	assert.False(t, Probe(context.Background(), "", discardLogger()))
}
