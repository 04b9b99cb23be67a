package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure_CreatesAndIsIdempotent(t *testing.T) {
	dir := NewDir(filepath.Join(t.TempDir(), "a", "b", "media"), nil)

	require.NoError(t, dir.Ensure())
	info, err := os.Stat(dir.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, dir.Ensure())
}

func TestRelocate_CopiesNotMoves(t *testing.T) {
	source := filepath.Join(t.TempDir(), "picked.jpg")
	require.NoError(t, os.WriteFile(source, []byte("payload"), 0o660))

	dir := NewDir(filepath.Join(t.TempDir(), "media"), nil)
	stable, err := dir.Relocate(source, "stable.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir.Path(), "stable.jpg"), stable)

	copied, err := os.ReadFile(stable)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(copied))

	// source must still exist; the picker path may be reused by the caller
	original, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(original))
}

func TestRelocate_MissingSource(t *testing.T) {
	dir := NewDir(filepath.Join(t.TempDir(), "media"), nil)

	_, err := dir.Relocate(filepath.Join(t.TempDir(), "nope.png"), "x.png")
	require.Error(t, err)
}

func TestRemove_MissingFileIsSilent(t *testing.T) {
	dir := NewDir(t.TempDir(), nil)

	// must not panic or fail the caller
	dir.Remove(context.Background(), filepath.Join(dir.Path(), "never-existed.mp4"))
}

func TestRemove_DeletesExistingFile(t *testing.T) {
	dir := NewDir(t.TempDir(), nil)
	path := filepath.Join(dir.Path(), "gone.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o660))

	dir.Remove(context.Background(), path)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
