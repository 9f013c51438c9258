package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gateway/internal/presence"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewPresenceRegistryWithoutRedisURL(t *testing.T) {
	registry, client := newPresenceRegistry(context.Background(), "", discardLogger())

	assert.Nil(t, client)
	assert.IsType(t, &presence.MemoryRegistry{}, registry)
}

func TestNewPresenceRegistryFallsBackWhenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	registry, client := newPresenceRegistry(ctx, "redis://127.0.0.1:1", discardLogger())

	assert.Nil(t, client)
	assert.IsType(t, &presence.MemoryRegistry{}, registry)
}
