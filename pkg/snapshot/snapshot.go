// Package snapshot persists rendered HTML snapshots of a fern tree.
//
// The dev server writes a snapshot after each settle so that rendered
// output can be inspected or diffed later. The default FileStore keeps
// snapshots on the local filesystem; implement Store to use S3 or other
// remote storage.
package snapshot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot: not found")

// Snapshot is a single captured rendering.
type Snapshot struct {
	// ID is the unique identifier assigned by the store.
	ID string `json:"id"`

	// Label names the capture, e.g. the app or route it came from.
	Label string `json:"label"`

	// HTML is the serialized host tree at capture time.
	HTML string `json:"html"`

	// CapturedAt is when the snapshot was taken.
	CapturedAt time.Time `json:"captured_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save persists a snapshot of html under label and returns its ID.
	Save(label, html string) (string, error)

	// Load retrieves a snapshot by ID.
	Load(id string) (*Snapshot, error)

	// List returns all stored snapshots, newest first.
	List() ([]*Snapshot, error)

	// Prune removes snapshots older than maxAge.
	Prune(maxAge time.Duration) error
}

// FileStore stores snapshots as JSON files on the local filesystem.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Save persists a snapshot and returns its ID.
func (s *FileStore) Save(label, html string) (string, error) {
	snap := &Snapshot{
		ID:         uuid.NewString(),
		Label:      label,
		HTML:       html,
		CapturedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(s.path(snap.ID), data, 0644); err != nil {
		return "", err
	}
	return snap.ID, nil
}

// Load retrieves a snapshot by ID.
func (s *FileStore) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns all stored snapshots, newest first.
func (s *FileStore) List() ([]*Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var snaps []*Snapshot
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		snap, err := s.Load(id)
		if err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].CapturedAt.After(snaps[j].CapturedAt)
	})
	return snaps, nil
}

// Prune removes snapshots older than maxAge.
func (s *FileStore) Prune(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	snaps, err := s.List()
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		if snap.CapturedAt.Before(cutoff) {
			if err := os.Remove(s.path(snap.ID)); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
