package store

import (
	"os"
	"path/filepath"
	"sync"
)

// Store is the interface for month-keyed artifact storage. Names carry
// their extension (august.pdf, august.json); artifacts are written whole
// and never mutated in place.
type Store interface {
	Exists(name string) bool
	Get(name string) ([]byte, bool)
	Set(name string, data []byte) error
	Location(name string) string
}

// LocalStore is a directory-backed implementation of Store.
type LocalStore struct {
	dir string
	mu  sync.RWMutex
}

// NewLocal creates a new LocalStore rooted at the specified directory.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Exists reports whether an artifact with this name is already stored.
func (s *LocalStore) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// Get retrieves an artifact by name. Returns the data and true if found,
// or nil and false if not found.
func (s *LocalStore) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores an artifact under its name. The data goes to a temporary
// file in the same directory first and is renamed into place, so a crash
// mid-write never leaves a partial artifact under the final name.
func (s *LocalStore) Set(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

// Location returns the artifact's path, for logs and messages.
func (s *LocalStore) Location(name string) string {
	return filepath.Join(s.dir, name)
}
