// Package storage is the persistence layer of the storefront. It mirrors the
// browser localStorage model the shop was designed around: a flat namespace of
// keys, each holding one JSON document that is read once at startup and
// rewritten wholesale on every mutation. There are no partial updates and no
// transactions.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	dir string
	mu  sync.Mutex
}

// Open prepares the backing directory and returns a store bound to it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save overwrites the whole collection stored under key.
func (s *Store) Save(key string, val any) error {
	b, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling collection %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(key), b, 0o644); err != nil {
		return fmt.Errorf("writing collection %q: %w", key, err)
	}
	return nil
}

// Load reads the collection stored under key into val. It reports false with
// a nil error when the key has never been written.
func (s *Store) Load(key string, val any) (bool, error) {
	s.mu.Lock()
	b, err := os.ReadFile(s.path(key))
	s.mu.Unlock()

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading collection %q: %w", key, err)
	}

	if err := json.Unmarshal(b, val); err != nil {
		return false, fmt.Errorf("unmarshaling collection %q: %w", key, err)
	}
	return true, nil
}

// Delete drops the collection stored under key. Deleting an absent key is
// not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting collection %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
