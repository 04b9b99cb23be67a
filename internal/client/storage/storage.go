// Package storage implements the durable key-value store backing the note
// cache, the operation queue, and the identity map. Each logical resource
// occupies its own key and is written with whole-value replace semantics, so
// a write is atomic from the reader's point of view.
package storage

import "context"

// KV is a persistent string-keyed store surviving process restarts.
type KV interface {
	// Get returns the stored value and true, or ("", false) when the key
	// has never been set (or was deleted).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the whole value stored under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
