package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/openclaw-hq/claw-digest/internal/logger"
)

// stateFile is the persisted shape of the JSON backend.
type stateFile struct {
	CoveredItems []string `json:"covered_items"`
	LastRun      string   `json:"last_run,omitempty"`
}

// jsonStore implements Store backed by a single JSON file.
type jsonStore struct {
	mu         sync.RWMutex
	path       string
	maxEntries int
	covered    map[string]struct{}
	lastRun    string
}

// openJSON loads the state file, substituting fresh empty state when the
// file is missing or unreadable. Corrupt state must never block a run.
func openJSON(path string, opts Options) *jsonStore {
	s := &jsonStore{
		path:       path,
		maxEntries: opts.MaxEntries,
		covered:    make(map[string]struct{}),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.WarnObj("state file unreadable; starting fresh", "state_error", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		}
		return s
	}

	var loaded stateFile
	if err := json.Unmarshal(raw, &loaded); err != nil {
		logger.WarnObj("state file corrupt; starting fresh", "state_error", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return s
	}

	for _, id := range loaded.CoveredItems {
		s.covered[id] = struct{}{}
	}
	s.lastRun = loaded.LastRun
	return s
}

func (s *jsonStore) IsCovered(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.covered[id]
	return ok
}

func (s *jsonStore) MarkCovered(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	s.covered[id] = struct{}{}
	s.mu.Unlock()
}

func (s *jsonStore) MarkAllCovered(ids []string) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	for _, id := range ids {
		if id != "" {
			s.covered[id] = struct{}{}
		}
	}
	s.mu.Unlock()
}

func (s *jsonStore) LastRun() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}

func (s *jsonStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.covered)
}

// Save stamps the run timestamp, prunes to the bound, and writes the file
// atomically. A write failure propagates: worst case today's items resurface
// tomorrow, which is degraded but safe.
func (s *jsonStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = time.Now().UTC().Format(time.RFC3339)
	pruneSet(s.covered, s.maxEntries)

	out := stateFile{
		CoveredItems: make([]string, 0, len(s.covered)),
		LastRun:      s.lastRun,
	}
	for id := range s.covered {
		out.CoveredItems = append(out.CoveredItems, id)
	}

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (s *jsonStore) Close() error { return nil }
