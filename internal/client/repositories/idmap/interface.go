// Package idmap persists the mapping from a note's idCode to its
// server-assigned identifier.
package idmap

import "context"

// Repository maps idCodes to server-assigned note identifiers.
//
// An entry appears only after a successful create sync and disappears when
// the note is successfully deleted remotely. Updates and deletes for a note
// whose entry is absent fall back to the note's locally known identifier,
// which may be stale; that fallback is handled by the caller.
type Repository interface {
	// Resolve returns the server id recorded for idCode, or false.
	Resolve(ctx context.Context, idCode int64) (int64, bool, error)

	// Record stores the server id assigned to idCode.
	Record(ctx context.Context, idCode, serverID int64) error

	// Forget removes the entry for idCode.
	Forget(ctx context.Context, idCode int64) error
}
