package services

import "github.com/dmitrijs2005/noteeasy/internal/client/models"

// mergeNotes combines the authoritative backend snapshot with the locally
// cached notes.
//
// The backend wins for every note it reports: remote notes come first, in
// backend order, marked synced. A cached note survives only when nothing in
// the snapshot shares its correlation key AND the note is still unsynced,
// that is, it was created offline and its own create is still queued. A local
// unsynced edit whose key does match a remote note is superseded wholesale;
// no field-level conflict resolution is attempted.
func mergeNotes(remote, local []models.Note) []models.Note {
	seen := make(map[int64]struct{}, len(remote))

	merged := make([]models.Note, 0, len(remote)+len(local))
	for _, n := range remote {
		n.Synced = true
		seen[n.Key()] = struct{}{}
		merged = append(merged, n)
	}

	for _, n := range local {
		if _, inRemote := seen[n.Key()]; !inRemote && !n.Synced {
			merged = append(merged, n)
		}
	}

	return merged
}
