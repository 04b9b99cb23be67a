package idmap

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/noteeasy/internal/client/storage"
)

// Key is the durable-store key holding the serialized mapping.
const Key = "id_map"

// KVRepository implements Repository as one JSON object in the KV store,
// keyed by the decimal idCode (JSON object keys are strings).
type KVRepository struct {
	mu sync.Mutex
	kv storage.KV
}

func NewKVRepository(kv storage.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func (m *KVRepository) load(ctx context.Context) (map[string]int64, error) {
	raw, ok, err := m.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity map: %w", err)
	}
	if !ok {
		return map[string]int64{}, nil
	}
	var entries map[string]int64
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode identity map: %w", err)
	}
	return entries, nil
}

func (m *KVRepository) save(ctx context.Context, entries map[string]int64) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode identity map: %w", err)
	}
	if err := m.kv.Set(ctx, Key, string(raw)); err != nil {
		return fmt.Errorf("failed to persist identity map: %w", err)
	}
	return nil
}

func (m *KVRepository) Resolve(ctx context.Context, idCode int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load(ctx)
	if err != nil {
		return 0, false, err
	}
	id, ok := entries[strconv.FormatInt(idCode, 10)]
	return id, ok, nil
}

func (m *KVRepository) Record(ctx context.Context, idCode, serverID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load(ctx)
	if err != nil {
		return err
	}
	entries[strconv.FormatInt(idCode, 10)] = serverID
	return m.save(ctx, entries)
}

func (m *KVRepository) Forget(ctx context.Context, idCode int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load(ctx)
	if err != nil {
		return err
	}
	delete(entries, strconv.FormatInt(idCode, 10))
	return m.save(ctx, entries)
}
