// Package queue implements the durable operation queue: an ordered log of
// pending mutations not yet confirmed by the backend.
package queue

import (
	"context"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
)

// Repository describes the durable FIFO queue of pending operations.
//
// During a sync pass the queue is owned exclusively by the reconciliation
// engine; other callers only append. Enqueue performs no deduplication:
// duplicate entries are tolerated and the engine's "already applied" handling
// compensates downstream.
type Repository interface {
	// Enqueue appends one operation. The queue is fully persisted before
	// Enqueue returns, so a restart loses nothing.
	Enqueue(ctx context.Context, op models.PendingOperation) error

	// All returns a snapshot of the current queue contents in FIFO order.
	All(ctx context.Context) ([]models.PendingOperation, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// ClearSuccessful removes the entries whose outcome (matched by
	// position) was success. Failed entries, and entries appended after the
	// snapshot the outcomes were produced from, are preserved for the next
	// pass.
	ClearSuccessful(ctx context.Context, outcomes []models.Outcome) error

	// Len reports the number of queued operations.
	Len(ctx context.Context) (int, error)
}
