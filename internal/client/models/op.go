package models

import "time"

// Action is the kind of mutation recorded in the operation queue.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// PendingOperation is one durable queue entry: a mutation applied locally but
// not yet confirmed by the backend. The note payload always carries its
// idCode. Timestamp records enqueue time and is used for ordering and
// debugging only; it takes no part in conflict resolution.
type PendingOperation struct {
	Note      Note      `json:"note"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`

	// DeleteMediaIDs lists server-side media identifiers to delete as part
	// of an update operation. Each is deleted with its own request,
	// independently of the field update.
	DeleteMediaIDs []int64 `json:"deleteMediaIds,omitempty"`
}

// Outcome is the per-operation result of one drain pass.
type Outcome struct {
	Action  Action `json:"action"`
	NoteKey int64  `json:"noteKey"`
	Success bool   `json:"success"`
	Err     string `json:"err,omitempty"`
}
