// Package metadata is the CLI's local key/value store. It keeps the current
// session: account name, session key and the server tokens.
package metadata

import "context"

// Keys under which the session is persisted.
const (
	KeyAccount      = "account"
	KeySessionKey   = "session_key"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Repository stores opaque values by key.
type Repository interface {
	// Get returns the value stored under key, or (nil, nil) if there is none.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetMany upserts all values atomically.
	SetMany(ctx context.Context, values map[string][]byte) error
	// Clear removes every key.
	Clear(ctx context.Context) error
}
