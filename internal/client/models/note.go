// Package models defines the client-side note, media, and pending-operation
// types shared by the repositories, services, and API client.
package models

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// MediaType discriminates attached media records.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Media is one attachment of a note. A media record is either local (URI
// points into the device media directory, Remote is false) or remote (URI is
// a backend path and ID carries the server-assigned media identifier).
type Media struct {
	// ID is the server-assigned media identifier; zero for local media.
	ID int64 `json:"id,omitempty"`

	Type     MediaType `json:"type"`
	FileName string    `json:"fileName"`
	Size     int64     `json:"size"`

	// URI locates the content: a device path for local media, a backend
	// path for remote media.
	URI string `json:"uri"`

	Remote bool `json:"remote,omitempty"`
}

// Note is one user note as held in the local cache.
//
// ID is assigned locally at creation and never changes for the local record.
// IDCode equals ID at creation time and is the correlation key used to match
// the same logical note across local and remote representations. RemoteID is
// known only after a successful create sync.
type Note struct {
	ID       int64 `json:"id"`
	IDCode   int64 `json:"idCode,omitempty"`
	RemoteID int64 `json:"remoteId,omitempty"`

	Title   string  `json:"title"`
	Details string  `json:"details"`
	Media   []Media `json:"media,omitempty"`

	// Synced is false while the note exists only locally in its current
	// form, true once the backend has confirmed it.
	Synced bool `json:"synced"`

	CreatedAt time.Time `json:"createdAt"`
}

// Key returns the correlation key used by the merge algorithm: the idCode,
// falling back to the local id for records that never carried one.
func (n *Note) Key() int64 {
	if n.IDCode != 0 {
		return n.IDCode
	}
	return n.ID
}

// NewLocalID returns a random positive 63-bit identifier for a locally
// created note.
func NewLocalID() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// the clock so note creation cannot.
		return time.Now().UnixNano()
	}
	return int64(binary.BigEndian.Uint64(b[:]) >> 1)
}

// NewNote builds an unsynced local note with a fresh id and idCode.
func NewNote(title, details string, media []Media) Note {
	id := NewLocalID()
	return Note{
		ID:        id,
		IDCode:    id,
		Title:     title,
		Details:   details,
		Media:     media,
		Synced:    false,
		CreatedAt: time.Now().UTC(),
	}
}
