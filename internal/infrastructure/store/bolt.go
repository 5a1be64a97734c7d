package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/gearcheck/backend/internal/domain"
)

var (
	bucketChecklist = []byte("checklist")
	keyState        = []byte("state")
)

// BoltStore persists checklist state in a bbolt database: one bucket, the
// whole state JSON-encoded under a fixed key. Checklist progress survives
// restarts without the torn-write risk of a loose JSON file.
type BoltStore struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening state database %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketChecklist)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing state database: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save stores the checklist state, replacing any previous one.
func (s *BoltStore) Save(ctx context.Context, state *domain.ChecklistState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding checklist state: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChecklist).Put(keyState, data)
	})
}

// Load returns the stored checklist state, or ErrNoChecklist when none is
// stored.
func (s *BoltStore) Load(ctx context.Context) (*domain.ChecklistState, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucketChecklist).Get(keyState); raw != nil {
			data = make([]byte, len(raw))
			copy(data, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, domain.ErrNoChecklist
	}

	var state domain.ChecklistState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding checklist state: %w", err)
	}
	return &state, nil
}

// Clear removes the stored checklist state.
func (s *BoltStore) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChecklist).Delete(keyState)
	})
}
