package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketName = []byte("prompts")
	latestKey  = []byte("latest")
)

// BoltPromptStore keeps every prompt keyed by request id, plus a copy of the
// most recent one under "latest".
type BoltPromptStore struct {
	DBPath string
	db     *bolt.DB
}

// Init opens (or creates) the BoltDB database
func (s *BoltPromptStore) Init() error {
	dbDir := filepath.Dir(s.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}

	db, err := bolt.Open(s.DBPath, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	s.db = db
	return nil
}

func (s *BoltPromptStore) SavePrompt(ctx context.Context, requestID, prompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// bolt serialises writers itself
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Put([]byte("req:"+requestID), []byte(prompt)); err != nil {
			return err
		}
		return b.Put(latestKey, []byte(prompt))
	})
}

// Close closes the BoltDB database
func (s *BoltPromptStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
