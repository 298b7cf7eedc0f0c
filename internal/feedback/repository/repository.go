// Package repository persists satisfaction feedback in a local bbolt database.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const bucketFeedback = "feedback"

// Record is one piece of customer satisfaction feedback.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository stores feedback records in a bbolt file.
type Repository struct {
	db *bolt.DB
}

// Open opens (or creates) the feedback database at the given path.
func Open(path string) (*Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("feedback db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure feedback dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open feedback db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketFeedback))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure feedback bucket: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save stores a record. Keys are timestamp-prefixed so cursor order is
// chronological.
func (r *Repository) Save(rec Record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal feedback record: %w", err)
	}
	key := rec.CreatedAt.UTC().Format(time.RFC3339Nano) + "_" + rec.ID.String()

	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketFeedback))
		if bucket == nil {
			return fmt.Errorf("feedback bucket missing")
		}
		return bucket.Put([]byte(key), value)
	})
}

// List returns all records, newest first.
func (r *Repository) List() ([]Record, error) {
	var records []Record
	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketFeedback))
		if bucket == nil {
			return nil
		}
		c := bucket.Cursor()
		for key, value := c.Last(); key != nil; key, value = c.Prev() {
			var rec Record
			if err := json.Unmarshal(value, &rec); err != nil {
				return fmt.Errorf("unmarshal feedback record %s: %w", key, err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
