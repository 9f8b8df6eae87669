package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func TestNewPromptStore_Selection(t *testing.T) {
	dir := t.TempDir()

	s, err := NewPromptStore("")
	require.NoError(t, err)
	assert.IsType(t, NopPromptStore{}, s)

	s, err = NewPromptStore(filepath.Join(dir, "complete_prompt.txt"))
	require.NoError(t, err)
	assert.IsType(t, &FilePromptStore{}, s)

	s, err = NewPromptStore(filepath.Join(dir, "prompts.db"))
	require.NoError(t, err)
	assert.IsType(t, &BoltPromptStore{}, s)
	require.NoError(t, s.Close())
}

func TestFilePromptStore_OverwritesLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complete_prompt.txt")
	s := NewFilePromptStore(path)
	ctx := context.Background()

	require.NoError(t, s.SavePrompt(ctx, "req-1", "first prompt"))
	require.NoError(t, s.SavePrompt(ctx, "req-2", "second prompt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second prompt", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFilePromptStore_ConcurrentWritesStayWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complete_prompt.txt")
	s := NewFilePromptStore(path)

	prompts := make(map[string]bool)
	var wg sync.WaitGroup
	for i := range 20 {
		p := fmt.Sprintf("prompt number %d with some body text", i)
		prompts[p] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.SavePrompt(context.Background(), fmt.Sprint(i), p))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, prompts[string(data)], "file holds a torn write: %q", string(data))
}

func TestFilePromptStore_UnwritableDir(t *testing.T) {
	s := NewFilePromptStore(filepath.Join(t.TempDir(), "missing", "prompt.txt"))
	assert.Error(t, s.SavePrompt(context.Background(), "req", "prompt"))
}

func TestBoltPromptStore_KeepsPerRequestAndLatest(t *testing.T) {
	s := &BoltPromptStore{DBPath: filepath.Join(t.TempDir(), "debug", "prompts.db")}
	require.NoError(t, s.Init())
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SavePrompt(ctx, "req-1", "first prompt"))
	require.NoError(t, s.SavePrompt(ctx, "req-2", "second prompt"))

	assert.Equal(t, "first prompt", storedPrompt(t, s, "req:req-1"))
	assert.Equal(t, "second prompt", storedPrompt(t, s, "req:req-2"))
	assert.Equal(t, "second prompt", storedPrompt(t, s, "latest"))
	assert.Empty(t, storedPrompt(t, s, "req:req-unknown"))
}

func storedPrompt(t *testing.T, s *BoltPromptStore, key string) string {
	t.Helper()
	var prompt string
	require.NoError(t, s.db.View(func(tx *bolt.Tx) error {
		prompt = string(tx.Bucket(bucketName).Get([]byte(key)))
		return nil
	}))
	return prompt
}

func TestPromptStores_RespectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewFilePromptStore(filepath.Join(t.TempDir(), "p.txt"))
	assert.ErrorIs(t, s.SavePrompt(ctx, "req", "prompt"), context.Canceled)
}
