// Package presence tracks which users are currently online. The registry is
// the single source of truth for presence; broadcasters only relay its
// mutations. The production store is a shared Redis set so that multiple
// gateway instances observe the same state.
package presence

import "context"

// Key is the shared set holding online usernames.
const Key = "gateway:loggedInUsers"

// Registry is the online-user store. All operations are idempotent and
// single-key: concurrent writers from multiple gateway instances rely on the
// store's own atomicity, never on gateway-side locking.
type Registry interface {
	// MarkOnline records username as online. Repeats are no-ops.
	MarkOnline(ctx context.Context, username string) error
	// MarkOffline removes username. Removing an absent user is not an error.
	MarkOffline(ctx context.Context, username string) error
	// ListOnline returns a point-in-time snapshot, sorted for stable
	// broadcast payloads.
	ListOnline(ctx context.Context) ([]string, error)
}
