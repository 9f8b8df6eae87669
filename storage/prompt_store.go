package storage

import (
	"context"
	"strings"
)

// PromptStore keeps the assembled prompts for debugging. Saving is best
// effort: callers log failures and carry on.
type PromptStore interface {
	SavePrompt(ctx context.Context, requestID, prompt string) error
	Close() error
}

// NewPromptStore picks the store for path: nothing when path is empty, a
// BoltDB file for a .db path, a plain text file otherwise.
func NewPromptStore(path string) (PromptStore, error) {
	switch {
	case path == "":
		return NopPromptStore{}, nil
	case strings.HasSuffix(path, ".db"):
		s := &BoltPromptStore{DBPath: path}
		if err := s.Init(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return NewFilePromptStore(path), nil
	}
}

type NopPromptStore struct{}

func (NopPromptStore) SavePrompt(context.Context, string, string) error { return nil }

func (NopPromptStore) Close() error { return nil }
