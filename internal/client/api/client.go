// Package api implements the client for the NoteEasy REST backend.
package api

import (
	"context"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
)

// Client is the remote-service contract the sync core depends on.
//
// Every method maps 2xx responses to success. A redirect-style response is
// reported as ErrAlreadyApplied: the backend uses it to signal that an
// idempotent retry hit a resource that already exists (or a change that was
// already applied), which callers treat as a successful no-op.
type Client interface {
	// ListNotes fetches the authoritative snapshot used by the merge phase.
	ListNotes(ctx context.Context) ([]models.Note, error)

	// GetNote fetches one note by its server identifier.
	GetNote(ctx context.Context, id int64) (*models.Note, error)

	// CreateNote uploads a new note (fields plus local media blobs) and
	// returns the created resource carrying the server-assigned id.
	CreateNote(ctx context.Context, note models.Note) (*models.Note, error)

	// UpdateNote uploads changed fields (and any new local media) for the
	// note with the given server identifier.
	UpdateNote(ctx context.Context, id int64, note models.Note) error

	// DeleteNote deletes the note with the given server identifier.
	DeleteNote(ctx context.Context, id int64) error

	// DeleteMedia deletes a single attached media item.
	DeleteMedia(ctx context.Context, mediaID int64) error
}
