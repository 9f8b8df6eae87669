package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/renameio/v2"
)

// FilePromptStore overwrites a single file with the most recent prompt.
type FilePromptStore struct {
	path string
	mu   sync.Mutex
}

func NewFilePromptStore(path string) *FilePromptStore {
	return &FilePromptStore{path: path}
}

func (s *FilePromptStore) SavePrompt(ctx context.Context, requestID, prompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// readers see either the previous prompt or this one, never a mix
	if err := renameio.WriteFile(s.path, []byte(prompt), 0o644); err != nil {
		return fmt.Errorf("failed to write prompt to %s: %w", s.path, err)
	}
	return nil
}

func (s *FilePromptStore) Close() error { return nil }
