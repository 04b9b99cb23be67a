package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
	"github.com/dmitrijs2005/noteeasy/internal/client/storage"
)

// Key is the durable-store key holding the serialized queue.
const Key = "sync_queue"

// KVRepository implements Repository on top of the durable KV store. The
// whole queue is serialized as one JSON array so every mutation is an atomic
// whole-value replace.
type KVRepository struct {
	mu sync.Mutex
	kv storage.KV
}

func NewKVRepository(kv storage.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func (q *KVRepository) load(ctx context.Context) ([]models.PendingOperation, error) {
	raw, ok, err := q.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}
	if !ok {
		return []models.PendingOperation{}, nil
	}
	var ops []models.PendingOperation
	if err := json.Unmarshal([]byte(raw), &ops); err != nil {
		return nil, fmt.Errorf("failed to decode queue: %w", err)
	}
	return ops, nil
}

func (q *KVRepository) save(ctx context.Context, ops []models.PendingOperation) error {
	raw, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}
	if err := q.kv.Set(ctx, Key, string(raw)); err != nil {
		return fmt.Errorf("failed to persist queue: %w", err)
	}
	return nil
}

func (q *KVRepository) Enqueue(ctx context.Context, op models.PendingOperation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if op.Timestamp.IsZero() {
		op.Timestamp = time.Now().UTC()
	}

	ops, err := q.load(ctx)
	if err != nil {
		return err
	}
	ops = append(ops, op)
	return q.save(ctx, ops)
}

func (q *KVRepository) All(ctx context.Context) ([]models.PendingOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

func (q *KVRepository) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.kv.Delete(ctx, Key)
}

func (q *KVRepository) ClearSuccessful(ctx context.Context, outcomes []models.Outcome) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.load(ctx)
	if err != nil {
		return err
	}

	// Outcomes line up with the snapshot the pass drained; anything past
	// len(outcomes) was enqueued mid-pass and must survive untouched.
	kept := make([]models.PendingOperation, 0, len(ops))
	for i, op := range ops {
		if i >= len(outcomes) || !outcomes[i].Success {
			kept = append(kept, op)
		}
	}
	return q.save(ctx, kept)
}

func (q *KVRepository) Len(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	ops, err := q.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(ops), nil
}
