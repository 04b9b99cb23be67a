package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/noteeasy/internal/client/api"
	"github.com/dmitrijs2005/noteeasy/internal/client/models"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/idmap"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/notes"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/queue"
	"github.com/dmitrijs2005/noteeasy/internal/client/storage"
	"github.com/dmitrijs2005/noteeasy/internal/logging"
)

// LastSyncKey is the durable-store key holding the last successful sync time
// in RFC 3339 format.
const LastSyncKey = "last_sync"

// ErrAllOperationsFailed is returned by Sync when the queue held operations
// and none of them succeeded. The queue is left intact in that case.
var ErrAllOperationsFailed = errors.New("all queued operations failed")

// SyncResult is the structured outcome of one sync trigger, intended for the
// caller to render (toast, banner, log line).
type SyncResult struct {
	// Success is true when the pass as a whole made progress: a trivial
	// empty-queue pass, or a pass where at least one operation succeeded
	// and the merge completed.
	Success bool

	// AlreadySyncing is true when another pass was in flight and this
	// trigger became a no-op.
	AlreadySyncing bool

	// NoOp is true when the queue was empty and the backend was not
	// contacted.
	NoOp bool

	// Outcomes holds one entry per drained operation, in queue order.
	Outcomes []models.Outcome
}

// SyncStatus is a snapshot of the sync state for status displays.
type SyncStatus struct {
	Pending  int
	Unsynced int
	LastSync time.Time
	Syncing  bool
}

// SyncService runs reconciliation passes against the backend.
type SyncService interface {
	// Sync performs one drain-then-merge pass. Concurrent triggers while a
	// pass is in flight return immediately with AlreadySyncing set.
	Sync(ctx context.Context) (*SyncResult, error)

	// InitialSync bootstraps the cache at startup: fetch the snapshot and
	// merge it in, or fall back to the untouched cache when offline.
	InitialSync(ctx context.Context) ([]models.Note, error)

	// Status reports pending/unsynced counts and the last sync time.
	Status(ctx context.Context) (*SyncStatus, error)
}

type syncService struct {
	client api.Client
	queue  queue.Repository
	ids    idmap.Repository
	cache  notes.Repository
	kv     storage.KV
	log    logging.Logger

	syncing atomic.Bool
}

func NewSyncService(client api.Client, q queue.Repository, ids idmap.Repository, cache notes.Repository, kv storage.KV, log logging.Logger) SyncService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &syncService{client: client, queue: q, ids: ids, cache: cache, kv: kv, log: log}
}

func (s *syncService) Sync(ctx context.Context) (*SyncResult, error) {
	if !s.syncing.CompareAndSwap(false, true) {
		return &SyncResult{AlreadySyncing: true}, nil
	}
	defer s.syncing.Store(false)

	// Snapshot of the queue at pass start; operations enqueued from here on
	// belong to the next pass.
	ops, err := s.queue.All(ctx)
	if err != nil {
		return nil, err
	}

	if len(ops) == 0 {
		s.touchLastSync(ctx)
		return &SyncResult{Success: true, NoOp: true}, nil
	}

	outcomes := s.drain(ctx, ops)

	hasSuccess := false
	for _, o := range outcomes {
		if o.Success {
			hasSuccess = true
			break
		}
	}
	if !hasSuccess {
		s.log.Warn(ctx, "sync pass made no progress", "ops", len(ops))
		return &SyncResult{Outcomes: outcomes}, ErrAllOperationsFailed
	}

	// Merge phase: fetch the authoritative snapshot and rebuild the cache.
	// If the fetch fails the queue stays intact; re-running the already
	// applied operations next pass is absorbed by the redirect handling.
	remote, err := s.client.ListNotes(ctx)
	if err != nil {
		s.log.Warn(ctx, "snapshot fetch failed after drain", "err", err)
		return &SyncResult{Outcomes: outcomes}, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	local, err := s.cache.Load(ctx)
	if err != nil {
		return &SyncResult{Outcomes: outcomes}, err
	}

	if err := s.cache.Save(ctx, mergeNotes(remote, local)); err != nil {
		return &SyncResult{Outcomes: outcomes}, err
	}

	if err := s.queue.ClearSuccessful(ctx, outcomes); err != nil {
		return &SyncResult{Outcomes: outcomes}, err
	}

	s.touchLastSync(ctx)
	s.log.Info(ctx, "sync pass finished", "ops", len(ops), "outcomes", outcomes)

	return &SyncResult{Success: true, Outcomes: outcomes}, nil
}

// drain attempts every operation in order. A failure, transport or backend
// rejection alike, is recorded in the outcome for that operation and never stops
// the loop.
func (s *syncService) drain(ctx context.Context, ops []models.PendingOperation) []models.Outcome {
	outcomes := make([]models.Outcome, 0, len(ops))

	for _, op := range ops {
		var err error
		switch op.Action {
		case models.ActionCreate:
			err = s.drainCreate(ctx, op)
		case models.ActionUpdate:
			err = s.drainUpdate(ctx, op)
		case models.ActionDelete:
			err = s.drainDelete(ctx, op)
		default:
			err = fmt.Errorf("unknown action %q", op.Action)
		}

		outcome := models.Outcome{Action: op.Action, NoteKey: op.Note.Key(), Success: err == nil}
		if err != nil {
			outcome.Err = err.Error()
			s.log.Warn(ctx, "operation failed", "action", op.Action, "idCode", op.Note.Key(), "err", err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (s *syncService) drainCreate(ctx context.Context, op models.PendingOperation) error {
	created, err := s.client.CreateNote(ctx, op.Note)
	if errors.Is(err, api.ErrAlreadyApplied) {
		// A previous attempt created the note but the response was lost.
		// Nothing new to record; identifier resolution falls back until a
		// later snapshot carries the server id.
		s.log.Debug(ctx, "create already applied", "idCode", op.Note.Key())
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.ids.Record(ctx, op.Note.Key(), created.ID); err != nil {
		return fmt.Errorf("failed to record server id: %w", err)
	}
	return nil
}

func (s *syncService) drainUpdate(ctx context.Context, op models.PendingOperation) error {
	id, err := resolveServerID(ctx, s.ids, &op.Note, s.log)
	if err != nil {
		return err
	}

	// Media deletions are independent requests. One failing must not stop
	// the others, nor the field update itself.
	for _, mediaID := range op.DeleteMediaIDs {
		if err := s.client.DeleteMedia(ctx, mediaID); err != nil && !errors.Is(err, api.ErrAlreadyApplied) {
			s.log.Warn(ctx, "media delete failed", "mediaId", mediaID, "err", err)
		}
	}

	if err := s.client.UpdateNote(ctx, id, op.Note); err != nil && !errors.Is(err, api.ErrAlreadyApplied) {
		return err
	}
	return nil
}

func (s *syncService) drainDelete(ctx context.Context, op models.PendingOperation) error {
	id, err := resolveServerID(ctx, s.ids, &op.Note, s.log)
	if err != nil {
		return err
	}

	if err := s.client.DeleteNote(ctx, id); err != nil && !errors.Is(err, api.ErrAlreadyApplied) {
		return err
	}

	if err := s.ids.Forget(ctx, op.Note.Key()); err != nil {
		s.log.Warn(ctx, "failed to forget identity entry", "idCode", op.Note.Key(), "err", err)
	}
	return nil
}

func (s *syncService) InitialSync(ctx context.Context) ([]models.Note, error) {
	remote, err := s.client.ListNotes(ctx)
	if err != nil {
		// Offline at startup: serve whatever is cached, unmodified.
		s.log.Warn(ctx, "initial sync fetch failed, using cache", "err", err)
		return s.cache.Load(ctx)
	}

	local, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}

	merged := mergeNotes(remote, local)
	if err := s.cache.Save(ctx, merged); err != nil {
		return nil, err
	}

	s.touchLastSync(ctx)
	return merged, nil
}

func (s *syncService) Status(ctx context.Context) (*SyncStatus, error) {
	pending, err := s.queue.Len(ctx)
	if err != nil {
		return nil, err
	}

	cached, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	unsynced := 0
	for _, n := range cached {
		if !n.Synced {
			unsynced++
		}
	}

	st := &SyncStatus{Pending: pending, Unsynced: unsynced, Syncing: s.syncing.Load()}

	raw, ok, err := s.kv.Get(ctx, LastSyncKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			st.LastSync = ts
		}
	}

	return st, nil
}

func (s *syncService) touchLastSync(ctx context.Context) {
	if err := s.kv.Set(ctx, LastSyncKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		s.log.Warn(ctx, "failed to persist last sync time", "err", err)
	}
}
