package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// WorktreeMeta is the bookkeeping record for one secondary worktree.
type WorktreeMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Branch    string    `json:"branch"`
	CreatedAt time.Time `json:"created_at"`
}

// MetadataStore persists worktree bookkeeping in .wt/metadata.json.
// Entries survive informational failures of the external tools: list output
// is matched by name, and an entry with no matching directory is pruned on
// the next mutation.
type MetadataStore struct {
	mu       sync.Mutex
	filePath string
	entries  []WorktreeMeta
}

// LoadMetadata reads the metadata store for the given scaffold directory,
// returning an empty store if the file does not exist.
func LoadMetadata(wtDir string) (*MetadataStore, error) {
	s := &MetadataStore{filePath: filepath.Join(wtDir, MetadataFileName)}

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		// A corrupt metadata file is not fatal: creation times degrade to
		// directory mtimes and the file is rewritten on the next mutation.
		s.entries = nil
	}
	return s, nil
}

func (s *MetadataStore) save() error {
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].Name < s.entries[j].Name
	})
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, append(data, '\n'), 0o644)
}

// Add records a newly created worktree and persists the store.
func (s *MetadataStore) Add(name, branch string) (WorktreeMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := WorktreeMeta{
		ID:        uuid.New().String(),
		Name:      name,
		Branch:    branch,
		CreatedAt: time.Now().UTC(),
	}

	// Replace any stale entry with the same name
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	s.entries = append(kept, meta)

	return meta, s.save()
}

// Remove drops the entry for name. Removing an unknown name is a no-op.
func (s *MetadataStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := false
	for _, e := range s.entries {
		if e.Name == name {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	if !removed {
		return nil
	}
	return s.save()
}

// Get returns the entry for name, or false if absent.
func (s *MetadataStore) Get(name string) (WorktreeMeta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}
	return WorktreeMeta{}, false
}

// CreatedAt returns the recorded creation time for name, falling back to the
// modification time of dirPath when no record exists (worktrees created by
// older versions or by git directly).
func (s *MetadataStore) CreatedAt(name, dirPath string) time.Time {
	if meta, ok := s.Get(name); ok {
		return meta.CreatedAt
	}
	if info, err := os.Stat(dirPath); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}
