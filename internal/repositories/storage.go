// Package repositories persists browser-side state (tokens, cart, cached
// settings) on behalf of each browser session.
package repositories

import (
	"context"
	"strings"
)

// Store is a key/value store with the semantics of browser local storage.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Key joins namespace parts into a storage key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
