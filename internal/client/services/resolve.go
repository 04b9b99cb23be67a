// Package services holds the client domain logic: optimistic note mutations
// and the reconciliation engine that drains the operation queue against the
// backend.
package services

import (
	"context"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/idmap"
	"github.com/dmitrijs2005/noteeasy/internal/logging"
)

// resolveServerID returns the backend identifier to target for a note.
//
// The identity map is authoritative: it is populated by successful create
// syncs. When no entry exists the note's locally known identifiers are used
// instead: remoteId, then the local id. That fallback can target a stale or
// never-assigned id; it is kept for compatibility with observed behavior and
// logged so the cases remain visible.
func resolveServerID(ctx context.Context, ids idmap.Repository, note *models.Note, log logging.Logger) (int64, error) {
	id, ok, err := ids.Resolve(ctx, note.Key())
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}

	fallback := note.RemoteID
	if fallback == 0 {
		fallback = note.ID
	}
	log.Debug(ctx, "identity map miss, using locally known id",
		"idCode", note.Key(), "fallback", fallback)
	return fallback, nil
}
