package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStage(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	path, err := store.Stage("statement.pdf", strings.NewReader("%PDF-1.4 content"))
	require.NoError(t, err)

	assert.Equal(t, ".pdf", filepath.Ext(path))
	assert.NotContains(t, filepath.Base(path), "statement", "original name never reaches disk")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(data))

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalRemoveMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(filepath.Join(store.Dir(), "gone.pdf")))
}

func TestLocalSweepOlderThan(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	stale := filepath.Join(store.Dir(), "stale.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh, err := store.Stage("fresh.pdf", strings.NewReader("new"))
	require.NoError(t, err)

	removed, err := store.SweepOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestNewLocalCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocal(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
