package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSQLiteKV_GetMissing(t *testing.T) {
	kv := NewSQLiteKV(setupDB(t))
	ctx := context.Background()

	v, ok, err := kv.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestSQLiteKV_SetReplacesWholeValue(t *testing.T) {
	kv := NewSQLiteKV(setupDB(t))
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notes_cache", `[{"id":1}]`))
	require.NoError(t, kv.Set(ctx, "notes_cache", `[]`))

	v, ok, err := kv.Get(ctx, "notes_cache")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestSQLiteKV_KeysAreDisjoint(t *testing.T) {
	kv := NewSQLiteKV(setupDB(t))
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "sync_queue", "a"))
	require.NoError(t, kv.Set(ctx, "id_map", "b"))
	require.NoError(t, kv.Delete(ctx, "sync_queue"))

	_, ok, err := kv.Get(ctx, "sync_queue")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := kv.Get(ctx, "id_map")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestSQLiteKV_DeleteMissingIsNoError(t *testing.T) {
	kv := NewSQLiteKV(setupDB(t))
	require.NoError(t, kv.Delete(context.Background(), "absent"))
}

// A second KV over the same database sees everything the first one wrote,
// which is what a process restart looks like to callers.
func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	first := NewSQLiteKV(db)
	require.NoError(t, first.Set(ctx, "last_sync", "2026-01-02T15:04:05Z"))

	second := NewSQLiteKV(db)
	v, ok, err := second.Get(ctx, "last_sync")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-01-02T15:04:05Z", v)
}
