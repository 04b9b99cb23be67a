// Package notes persists the note cache: the last-known-good merged local
// view of all notes, used for rendering and as the merge base.
package notes

import (
	"context"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
)

// Repository stores the merged note list. Between sync passes it is the sole
// source of truth for anything that renders notes. Only the reconciliation
// engine replaces it wholesale; mutating callers go through the note service,
// which rewrites the list alongside a queue append.
type Repository interface {
	// Load returns the cached notes in order, or an empty slice if the
	// cache was never initialized.
	Load(ctx context.Context) ([]models.Note, error)

	// Save atomically overwrites the whole cached list.
	Save(ctx context.Context, notes []models.Note) error
}
