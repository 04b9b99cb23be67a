package queue

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
	"github.com/dmitrijs2005/noteeasy/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func op(title string, action models.Action) models.PendingOperation {
	n := models.NewNote(title, "", nil)
	return models.PendingOperation{Note: n, Action: action, Timestamp: time.Now().UTC()}
}

func TestEnqueue_FIFOOrder(t *testing.T) {
	q := NewKVRepository(storage.NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, op("first", models.ActionCreate)))
	require.NoError(t, q.Enqueue(ctx, op("second", models.ActionUpdate)))
	require.NoError(t, q.Enqueue(ctx, op("third", models.ActionDelete)))

	ops, err := q.All(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, "first", ops[0].Note.Title)
	assert.Equal(t, "second", ops[1].Note.Title)
	assert.Equal(t, "third", ops[2].Note.Title)
}

func TestEnqueue_DuplicatesTolerated(t *testing.T) {
	q := NewKVRepository(storage.NewMemoryKV())
	ctx := context.Background()

	entry := op("dup", models.ActionCreate)
	require.NoError(t, q.Enqueue(ctx, entry))
	require.NoError(t, q.Enqueue(ctx, entry))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// A repository constructed over the same store must see the identical queue:
// this is what an app restart looks like.
func TestQueue_DurableAcrossRestart(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()

	q1 := NewKVRepository(kv)
	require.NoError(t, q1.Enqueue(ctx, op("survives", models.ActionCreate)))

	before, ok, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	require.True(t, ok)

	q2 := NewKVRepository(kv)
	ops, err := q2.All(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "survives", ops[0].Note.Title)

	after, _, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestClearSuccessful_KeepsOnlyFailures(t *testing.T) {
	q := NewKVRepository(storage.NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, op("a", models.ActionCreate)))
	require.NoError(t, q.Enqueue(ctx, op("b", models.ActionUpdate)))
	require.NoError(t, q.Enqueue(ctx, op("c", models.ActionDelete)))

	outcomes := []models.Outcome{
		{Action: models.ActionCreate, Success: true},
		{Action: models.ActionUpdate, Success: false, Err: "server unavailable"},
		{Action: models.ActionDelete, Success: true},
	}
	require.NoError(t, q.ClearSuccessful(ctx, outcomes))

	ops, err := q.All(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "b", ops[0].Note.Title)
	assert.Equal(t, models.ActionUpdate, ops[0].Action)
}

// Entries appended after the drain snapshot have no outcome and must survive.
func TestClearSuccessful_PreservesMidPassAppends(t *testing.T) {
	q := NewKVRepository(storage.NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, op("drained", models.ActionCreate)))
	require.NoError(t, q.Enqueue(ctx, op("late", models.ActionCreate)))

	outcomes := []models.Outcome{{Action: models.ActionCreate, Success: true}}
	require.NoError(t, q.ClearSuccessful(ctx, outcomes))

	ops, err := q.All(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "late", ops[0].Note.Title)
}

func TestClear_EmptiesQueue(t *testing.T) {
	q := NewKVRepository(storage.NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, op("x", models.ActionCreate)))
	require.NoError(t, q.Clear(ctx))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestEnqueue_SetsTimestampWhenMissing(t *testing.T) {
	q := NewKVRepository(storage.NewMemoryKV())
	ctx := context.Background()

	entry := models.PendingOperation{Note: models.NewNote("t", "", nil), Action: models.ActionCreate}
	require.NoError(t, q.Enqueue(ctx, entry))

	ops, err := q.All(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.False(t, ops[0].Timestamp.IsZero())
}
