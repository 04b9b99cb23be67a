package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
	"github.com/dmitrijs2005/noteeasy/internal/client/storage"
)

// Key is the durable-store key holding the serialized note list.
const Key = "notes_cache"

// KVRepository implements Repository as one JSON array in the KV store.
type KVRepository struct {
	mu sync.Mutex
	kv storage.KV
}

func NewKVRepository(kv storage.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) Load(ctx context.Context) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok, err := r.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read note cache: %w", err)
	}
	if !ok {
		return []models.Note{}, nil
	}
	var list []models.Note
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to decode note cache: %w", err)
	}
	return list, nil
}

func (r *KVRepository) Save(ctx context.Context, list []models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode note cache: %w", err)
	}
	if err := r.kv.Set(ctx, Key, string(raw)); err != nil {
		return fmt.Errorf("failed to persist note cache: %w", err)
	}
	return nil
}
