package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftpay/internal/platform/config"
)

func exerciseBackend(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := backend.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Set(ctx, "k", "v1"))
	require.NoError(t, backend.Set(ctx, "k", "v2"))
	value, ok, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, backend.Delete(ctx, "k"))
	require.NoError(t, backend.Delete(ctx, "k"))
	_, ok, err = backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	backend, err := NewFile(path)
	require.NoError(t, err)
	exerciseBackend(t, backend)
}

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	first, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(context.Background(), "k", "kept"))

	second, err := NewFile(path)
	require.NoError(t, err)
	value, ok, err := second.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", value)
}

func TestFileTreatsCorruptDocumentAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o600))
	backend, err := NewFile(path)
	require.NoError(t, err)
	_, ok, err := backend.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileWritesOverNullDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))
	backend, err := NewFile(path)
	require.NoError(t, err)

	require.NoError(t, backend.Set(ctx, "k", "v"))
	value, ok, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
	require.NoError(t, backend.Delete(ctx, "k"))
}

func TestSQLite(t *testing.T) {
	backend, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer backend.Close()
	exerciseBackend(t, backend)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StoreDriver: "etcd"})
	require.Error(t, err)
}

func TestOpenDefaultsToMemory(t *testing.T) {
	backend, err := Open(context.Background(), config.Config{})
	require.NoError(t, err)
	_, isMemory := backend.(*Memory)
	assert.True(t, isMemory)
}
