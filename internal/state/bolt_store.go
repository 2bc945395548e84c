package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/openclaw-hq/claw-digest/internal/logger"
	bolt "go.etcd.io/bbolt"
)

const (
	coveredBucket = "covered"
	metaBucket    = "meta"
	lastRunKey    = "last_run"
)

// boltStore implements a Store backed by BoltDB. The covered set is held in
// memory (it is bounded by maxEntries anyway) and flushed on Save.
type boltStore struct {
	mu         sync.RWMutex
	db         *bolt.DB
	maxEntries int
	covered    map[string]struct{}
	lastRun    string
}

// openBolt initializes a BoltDB-backed Store. A file that cannot be opened
// as a bolt database is treated as corrupt: it is moved aside and a fresh
// database is created in its place.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		logger.WarnObj("state db unreadable; starting fresh", "state_error", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		if renameErr := os.Rename(path, path+".corrupt"); renameErr != nil {
			return nil, fmt.Errorf("open bbolt db: %w", err)
		}
		db, err = bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, fmt.Errorf("open bbolt db: %w", err)
		}
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(coveredBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	store := &boltStore{
		db:         db,
		maxEntries: opts.MaxEntries,
		covered:    make(map[string]struct{}),
	}

	err = db.View(func(tx *bolt.Tx) error {
		if bucket := tx.Bucket([]byte(coveredBucket)); bucket != nil {
			if err := bucket.ForEach(func(k, _ []byte) error {
				store.covered[string(k)] = struct{}{}
				return nil
			}); err != nil {
				return err
			}
		}
		if meta := tx.Bucket([]byte(metaBucket)); meta != nil {
			store.lastRun = string(meta.Get([]byte(lastRunKey)))
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}

	return store, nil
}

func (b *boltStore) IsCovered(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.covered[id]
	return ok
}

func (b *boltStore) MarkCovered(id string) {
	if id == "" {
		return
	}
	b.mu.Lock()
	b.covered[id] = struct{}{}
	b.mu.Unlock()
}

func (b *boltStore) MarkAllCovered(ids []string) {
	if len(ids) == 0 {
		return
	}
	b.mu.Lock()
	for _, id := range ids {
		if id != "" {
			b.covered[id] = struct{}{}
		}
	}
	b.mu.Unlock()
}

func (b *boltStore) LastRun() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastRun
}

func (b *boltStore) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.covered)
}

// Save stamps the run timestamp, prunes, and rewrites the covered bucket.
func (b *boltStore) Save() error {
	if b == nil || b.db == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastRun = time.Now().UTC().Format(time.RFC3339)
	pruneSet(b.covered, b.maxEntries)

	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(coveredBucket)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket([]byte(coveredBucket))
		if err != nil {
			return err
		}
		for id := range b.covered {
			if err := bucket.Put([]byte(id), nil); err != nil {
				return err
			}
		}
		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return err
		}
		return meta.Put([]byte(lastRunKey), []byte(b.lastRun))
	})
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
