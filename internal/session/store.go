// Package session keeps the current Document of each session.
//
// Go Pattern: The store wraps an in-memory BadgerDB. Every entry is written
// with a TTL, so an abandoned session's text disappears on its own and
// nothing ever touches the disk. Like a *sql.DB, one *Store is created at
// startup and shared by all handlers; Badger is safe for concurrent use.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/models"
)

// ErrNoDocument means the session has no document (never uploaded, deleted,
// or expired).
var ErrNoDocument = errors.New("no document in session")

const keyPrefix = "session:"

// Store maps session IDs to Documents.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open creates an in-memory store whose entries expire after ttl.
func Open(ttl time.Duration) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Close releases the store. All sessions are lost.
func (s *Store) Close() error {
	return s.db.Close()
}

// TTL is how long a session lives after its last upload.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// HealthCheck reports whether the store can still serve requests.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("session store is closed")
	}
	return nil
}

func key(sessionID string) []byte {
	return []byte(keyPrefix + sessionID)
}

// Put stores doc as the session's document, replacing any previous one and
// restarting the session's TTL.
func (s *Store) Put(ctx context.Context, sessionID string, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key(sessionID), data).WithTTL(s.ttl))
	})
}

// Get returns the session's document, or ErrNoDocument.
func (s *Store) Get(ctx context.Context, sessionID string) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(sessionID))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// Delete drops the session's document. Deleting a missing session is not an
// error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(sessionID))
	})
}

// Count returns the number of live sessions.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
