package storage

import "context"

// IStore is the durable key-value hook the session layer is built on.
// Values are JSON-serializable records; every backend round-trips them
// through JSON, so callers always see a structural copy and can mutate
// returned values freely without touching stored state.
//
// Failures never propagate: Get reports false and leaves dest at its
// default, Set logs and keeps the previous value. A broken backend must
// degrade the portal to empty in-memory state, not crash it.
type IStore interface {
	// Get unmarshals the value stored under key into dest. It returns
	// false when the key is absent or the read fails, leaving dest
	// untouched.
	Get(ctx context.Context, key string, dest any) bool

	// Set durably persists value under key, replacing any previous value.
	Set(ctx context.Context, key string, value any)

	Close()
}
