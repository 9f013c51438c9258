package presence_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gateway/internal/presence"
)

func TestMarkOnlineThenListContainsUser(t *testing.T) {
	ctx := context.Background()
	reg := presence.NewMemory()

	require.NoError(t, reg.MarkOnline(ctx, "manny"))

	online, err := reg.ListOnline(ctx)
	require.NoError(t, err)
	assert.Contains(t, online, "manny")
}

func TestMarkOnlineIsIdempotent(t *testing.T) {
	ctx := context.Background()
	reg := presence.NewMemory()

	for range 3 {
		require.NoError(t, reg.MarkOnline(ctx, "manny"))
	}

	online, err := reg.ListOnline(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"manny"}, online)
}

func TestMarkOfflineRemovesUserAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	reg := presence.NewMemory()

	require.NoError(t, reg.MarkOnline(ctx, "manny"))
	require.NoError(t, reg.MarkOffline(ctx, "manny"))
	require.NoError(t, reg.MarkOffline(ctx, "manny"))
	require.NoError(t, reg.MarkOffline(ctx, "never-online"))

	online, err := reg.ListOnline(ctx)
	require.NoError(t, err)
	assert.NotContains(t, online, "manny")
	assert.Empty(t, online)
}

func TestListOnlineIsSorted(t *testing.T) {
	ctx := context.Background()
	reg := presence.NewMemory()

	for _, u := range []string{"zoe", "alice", "manny"} {
		require.NoError(t, reg.MarkOnline(ctx, u))
	}

	online, err := reg.ListOnline(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "manny", "zoe"}, online)
}

func TestEmptyUsernameRejected(t *testing.T) {
	ctx := context.Background()
	reg := presence.NewMemory()

	assert.Error(t, reg.MarkOnline(ctx, ""))
	assert.Error(t, reg.MarkOffline(ctx, ""))
}

// TestConcurrentMutationsConverge drives racing online/offline calls for the
// same user. The final state must be exactly one of {online, offline} with
// no duplicates.
func TestConcurrentMutationsConverge(t *testing.T) {
	ctx := context.Background()
	reg := presence.NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = reg.MarkOnline(ctx, "manny")
		}()
		go func() {
			defer wg.Done()
			_ = reg.MarkOffline(ctx, "manny")
		}()
	}
	wg.Wait()

	online, err := reg.ListOnline(ctx)
	require.NoError(t, err)
	count := 0
	for _, u := range online {
		if u == "manny" {
			count++
		}
	}
	assert.LessOrEqual(t, count, 1, "never a duplicate entry")
}
