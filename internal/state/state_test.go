package state

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestNewStoreBackendSelection(t *testing.T) {
	for _, typ := range []string{"", "none", "disabled", "NONE"} {
		st, err := NewStore(typ, "", Options{})
		if err != nil {
			t.Fatalf("NewStore(%q): %v", typ, err)
		}
		if _, ok := st.(noopStore); !ok {
			t.Fatalf("NewStore(%q) = %T, want noopStore", typ, st)
		}
	}

	if _, err := NewStore("json", "", Options{}); err == nil {
		t.Fatal("json store without a path should fail")
	}
	if _, err := NewStore("postgres", "x", Options{}); err == nil {
		t.Fatal("unsupported type should fail")
	}
}

func TestJSONStoreDedupAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := NewStore("json", path, Options{MaxEntries: 100})
	if err != nil {
		t.Fatal(err)
	}
	st.MarkAllCovered([]string{"hn:1", "tweet:2", ""})
	st.MarkCovered("release:v2.1.0")
	if !st.IsCovered("hn:1") || !st.IsCovered("release:v2.1.0") {
		t.Fatal("marked ids should be covered before save")
	}
	if st.IsCovered("") {
		t.Fatal("empty id must never be covered")
	}
	if err := st.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reloaded, err := NewStore("json", path, Options{MaxEntries: 100})
	if err != nil {
		t.Fatal(err)
	}
	defer reloaded.Close()

	if reloaded.Count() != 3 {
		t.Fatalf("Count = %d, want 3", reloaded.Count())
	}
	for _, id := range []string{"hn:1", "tweet:2", "release:v2.1.0"} {
		if !reloaded.IsCovered(id) {
			t.Errorf("%s lost across reload", id)
		}
	}
	if reloaded.IsCovered("hn:999") {
		t.Error("unknown id reported covered")
	}
	if reloaded.LastRun() == "" {
		t.Error("LastRun should be stamped by Save")
	}
}

func TestJSONStoreBoundedGrowth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st, err := NewStore("json", path, Options{MaxEntries: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	ids := make([]string, 20)
	for i := range ids {
		ids[i] = fmt.Sprintf("hn:%d", i)
	}
	st.MarkAllCovered(ids)
	if err := st.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if st.Count() != 10 {
		t.Fatalf("Count after prune = %d, want 10", st.Count())
	}
}

func TestJSONStoreCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := NewStore("json", path, Options{})
	if err != nil {
		t.Fatalf("corrupt state must not block: %v", err)
	}
	defer st.Close()

	if st.Count() != 0 {
		t.Fatalf("Count = %d, want 0", st.Count())
	}
	st.MarkCovered("hn:1")
	if err := st.Save(); err != nil {
		t.Fatalf("Save over corrupt file: %v", err)
	}
}

func TestBoltStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	st, err := NewStore("bbolt", path, Options{MaxEntries: 100})
	if err != nil {
		t.Fatal(err)
	}
	st.MarkAllCovered([]string{"reddit:abc", "so:42"})
	if err := st.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reloaded, err := NewStore("bbolt", path, Options{MaxEntries: 100})
	if err != nil {
		t.Fatal(err)
	}
	defer reloaded.Close()

	if !reloaded.IsCovered("reddit:abc") || !reloaded.IsCovered("so:42") {
		t.Fatal("covered ids lost across reopen")
	}
	if reloaded.LastRun() == "" {
		t.Fatal("LastRun should survive reopen")
	}
}

func TestNoopStoreNeverCovers(t *testing.T) {
	st, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatal(err)
	}
	st.MarkCovered("hn:1")
	if st.IsCovered("hn:1") {
		t.Fatal("noop store must not track coverage")
	}
	if err := st.Save(); err != nil {
		t.Fatal(err)
	}
}

func TestPruneSetKeepsBound(t *testing.T) {
	covered := make(map[string]struct{})
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		covered[id] = struct{}{}
	}
	pruneSet(covered, 3)
	if len(covered) != 3 {
		t.Fatalf("len = %d, want 3", len(covered))
	}
	pruneSet(covered, 3)
	if len(covered) != 3 {
		t.Fatalf("prune at bound must be a no-op, len = %d", len(covered))
	}
}
