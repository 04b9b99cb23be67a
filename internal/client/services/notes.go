package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/noteeasy/internal/client/api"
	"github.com/dmitrijs2005/noteeasy/internal/client/media"
	"github.com/dmitrijs2005/noteeasy/internal/client/models"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/idmap"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/notes"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/queue"
	"github.com/dmitrijs2005/noteeasy/internal/logging"
	"github.com/google/uuid"
)

var ErrNoteNotFound = errors.New("note not found")

// MediaPick is a file selected by the user for attachment: a (possibly
// transient) source path plus its kind.
type MediaPick struct {
	URI  string
	Type models.MediaType
}

// NoteService applies optimistic mutations: every create, update, or delete
// writes the note cache and appends to the operation queue before returning,
// without waiting for or contacting the backend. The sync service later
// reconciles.
type NoteService interface {
	// List returns the cached notes.
	List(ctx context.Context) ([]models.Note, error)

	// Get returns the cached note with the given correlation key.
	Get(ctx context.Context, key int64) (*models.Note, error)

	// Fetch retrieves one note from the backend, resolving the server
	// identifier the same way queued updates and deletes do.
	Fetch(ctx context.Context, key int64) (*models.Note, error)

	// Create relocates picked media into the stable media directory,
	// stores the new unsynced note, and queues its create.
	Create(ctx context.Context, title, details string, picks []MediaPick) (*models.Note, error)

	// Update edits the cached note, relocates newly picked media, marks
	// remote media for deletion, and queues the update.
	Update(ctx context.Context, key int64, title, details string, picks []MediaPick, deleteMediaIDs []int64) (*models.Note, error)

	// Delete removes the note from the cache, removes its local media
	// files best-effort, and queues the delete.
	Delete(ctx context.Context, key int64) error
}

type noteService struct {
	client api.Client
	cache  notes.Repository
	queue  queue.Repository
	ids    idmap.Repository
	dir    *media.Dir
	log    logging.Logger
}

func NewNoteService(client api.Client, cache notes.Repository, q queue.Repository, ids idmap.Repository, dir *media.Dir, log logging.Logger) NoteService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &noteService{client: client, cache: cache, queue: q, ids: ids, dir: dir, log: log}
}

func (s *noteService) List(ctx context.Context) ([]models.Note, error) {
	return s.cache.Load(ctx)
}

func (s *noteService) Get(ctx context.Context, key int64) (*models.Note, error) {
	list, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Key() == key {
			return &list[i], nil
		}
	}
	return nil, ErrNoteNotFound
}

func (s *noteService) Fetch(ctx context.Context, key int64) (*models.Note, error) {
	note, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	id, err := resolveServerID(ctx, s.ids, note, s.log)
	if err != nil {
		return nil, err
	}
	return s.client.GetNote(ctx, id)
}

// relocate copies each picked file into the media directory under a generated
// name and returns the resulting local media records.
func (s *noteService) relocate(ctx context.Context, picks []MediaPick) ([]models.Media, error) {
	result := make([]models.Media, 0, len(picks))
	for _, pick := range picks {
		info, err := os.Stat(pick.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to stat picked file: %w", err)
		}

		destName := uuid.NewString() + filepath.Ext(pick.URI)
		stablePath, err := s.dir.Relocate(pick.URI, destName)
		if err != nil {
			return nil, err
		}

		result = append(result, models.Media{
			Type:     pick.Type,
			FileName: filepath.Base(pick.URI),
			Size:     info.Size(),
			URI:      stablePath,
		})
	}
	return result, nil
}

func (s *noteService) Create(ctx context.Context, title, details string, picks []MediaPick) (*models.Note, error) {
	attached, err := s.relocate(ctx, picks)
	if err != nil {
		return nil, err
	}

	note := models.NewNote(title, details, attached)

	list, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	list = append(list, note)
	if err := s.cache.Save(ctx, list); err != nil {
		return nil, err
	}

	op := models.PendingOperation{Note: note, Action: models.ActionCreate, Timestamp: time.Now().UTC()}
	if err := s.queue.Enqueue(ctx, op); err != nil {
		return nil, err
	}

	return &note, nil
}

func (s *noteService) Update(ctx context.Context, key int64, title, details string, picks []MediaPick, deleteMediaIDs []int64) (*models.Note, error) {
	attached, err := s.relocate(ctx, picks)
	if err != nil {
		return nil, err
	}

	list, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range list {
		if list[i].Key() == key {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNoteNotFound
	}

	note := &list[idx]
	note.Title = title
	note.Details = details
	note.Synced = false

	toDelete := make(map[int64]struct{}, len(deleteMediaIDs))
	for _, id := range deleteMediaIDs {
		toDelete[id] = struct{}{}
	}
	kept := note.Media[:0]
	for _, m := range note.Media {
		if m.Remote {
			if _, drop := toDelete[m.ID]; drop {
				continue
			}
		}
		kept = append(kept, m)
	}
	note.Media = append(kept, attached...)

	if err := s.cache.Save(ctx, list); err != nil {
		return nil, err
	}

	op := models.PendingOperation{
		Note:           *note,
		Action:         models.ActionUpdate,
		Timestamp:      time.Now().UTC(),
		DeleteMediaIDs: deleteMediaIDs,
	}
	if err := s.queue.Enqueue(ctx, op); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *noteService) Delete(ctx context.Context, key int64) error {
	list, err := s.cache.Load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range list {
		if list[i].Key() == key {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNoteNotFound
	}

	note := list[idx]
	list = append(list[:idx], list[idx+1:]...)
	if err := s.cache.Save(ctx, list); err != nil {
		return err
	}

	for _, m := range note.Media {
		if !m.Remote {
			s.dir.Remove(ctx, m.URI)
		}
	}

	op := models.PendingOperation{Note: note, Action: models.ActionDelete, Timestamp: time.Now().UTC()}
	return s.queue.Enqueue(ctx, op)
}
