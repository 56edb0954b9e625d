// Package store persists recent meter records in a local BoltDB file so the
// web API can serve history without holding it in memory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"TeleinfoBridge/internal/model"
)

var recordsBucket = []byte("records")

// Store is a capped archive of decoded records, keyed by arrival timestamp.
type Store struct {
	db   *bbolt.DB
	keep int
}

// Open opens (creating if needed) the archive at path, retaining at most
// keep records.
func Open(path string, keep int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o666, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init record store: %w", err)
	}
	if keep <= 0 {
		keep = 1000
	}
	return &Store{db: db, keep: keep}, nil
}

// Put appends a record, pruning the oldest entries beyond the cap.
func (s *Store) Put(rec model.TeleinfoRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := []byte(time.Now().UTC().Format(time.RFC3339Nano))
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(recordsBucket)
		if err := b.Put(key, payload); err != nil {
			return err
		}
		n := 0
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			n++
		}
		for n > s.keep {
			k, _ := b.Cursor().First()
			if k == nil {
				break
			}
			if err := b.Delete(k); err != nil {
				return err
			}
			n--
		}
		return nil
	})
}

// Latest returns the most recent record, found=false when the archive is
// empty.
func (s *Store) Latest() (rec model.TeleinfoRecord, found bool, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		_, v := tx.Bucket(recordsBucket).Cursor().Last()
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &rec)
	})
	return rec, found, err
}

// Recent returns up to n records, newest first. The archive never holds
// more than the cap, so n is clamped to it before sizing the result.
func (s *Store) Recent(n int) ([]model.TeleinfoRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > s.keep {
		n = s.keep
	}
	recs := make([]model.TeleinfoRecord, 0, n)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(recordsBucket).Cursor()
		for _, v := c.Last(); v != nil && len(recs) < n; _, v = c.Prev() {
			var rec model.TeleinfoRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	return recs, err
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}
