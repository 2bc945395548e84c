package state

import (
	"fmt"
	"strings"
)

// Package state provides the persistent dedup store of previously-covered
// item ids.

// Store tracks which item ids have already appeared in a published digest.
//
// Mutations are in-memory until Save, which stamps the run timestamp, prunes
// to the configured bound, and persists. Membership checks are O(1).
type Store interface {
	IsCovered(id string) bool
	MarkCovered(id string)
	MarkAllCovered(ids []string)
	LastRun() string
	Count() int
	Save() error
	Close() error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	MaxEntries int
}

const defaultMaxEntries = 500

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "json":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("json state requires a path")
		}
		return openJSON(path, opts), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt state requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported state type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = defaultMaxEntries
	}
	return opts
}

// pruneSet trims the covered set in place to at most max entries.
// The retained subset is arbitrary: the set carries no per-id ordering, so
// eviction under the bound may forget any entry, not the oldest.
func pruneSet(covered map[string]struct{}, max int) {
	if len(covered) <= max {
		return
	}
	excess := len(covered) - max
	for id := range covered {
		if excess == 0 {
			break
		}
		delete(covered, id)
		excess--
	}
}

type noopStore struct{}

func (noopStore) IsCovered(string) bool      { return false }
func (noopStore) MarkCovered(string)         {}
func (noopStore) MarkAllCovered([]string)    {}
func (noopStore) LastRun() string            { return "" }
func (noopStore) Count() int                 { return 0 }
func (noopStore) Save() error                { return nil }
func (noopStore) Close() error               { return nil }
