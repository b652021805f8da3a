package ledger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// LocalLedger is a disk-based implementation of Ledger, one JSON file per
// month key.
type LocalLedger struct {
	dir string
	mu  sync.RWMutex
}

// NewLocal creates a new disk-based ledger.
func NewLocal(dir string) (*LocalLedger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalLedger{dir: dir}, nil
}

// Get returns the entry for a month key, or nil if none is recorded.
func (l *LocalLedger) Get(_ context.Context, monthKey string) (*Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	data, err := os.ReadFile(l.filePath(monthKey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Put records a completed publish, replacing any previous entry.
func (l *LocalLedger) Put(_ context.Context, monthKey string, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.filePath(monthKey), data, 0644)
}

// Months returns all recorded entries.
func (l *LocalLedger) Months(_ context.Context) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	files, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(l.dir, f.Name()))
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *LocalLedger) filePath(monthKey string) string {
	// Sanitize the key to be filesystem-safe
	safeName := ""
	for _, r := range monthKey {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			safeName += string(r)
		} else {
			safeName += "_"
		}
	}
	return filepath.Join(l.dir, safeName+".json")
}
