package store

import (
	"reflect"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// Store is a reactive state tree addressed by dot-separated paths.
//
// Every observed path owns a revision cell in the reactive graph. Reading a
// path through Get subscribes the current listener to that cell; writing a
// path bumps the cells of the path itself, of every ancestor (their
// container changed identity), and of every observed descendant (their
// subtree was replaced). All bumps for one write happen in a single batch.
type Store struct {
	mu   sync.RWMutex
	root map[string]any

	// cells interns one revision cell per observed path, keyed by the
	// 64-bit hash of the path. Buckets carry the full path so hash
	// collisions resolve by string comparison.
	cellsMu sync.Mutex
	cells   map[uint64][]*pathCell
}

type pathCell struct {
	path string
	rev  *neoflux.Signal[uint64]
}

// New creates a store holding a deep copy of initial. A nil initial starts
// an empty tree.
func New(initial map[string]any) *Store {
	return &Store{
		root:  copyTree(initial),
		cells: make(map[uint64][]*pathCell),
	}
}

// Get returns the value at path and whether it exists. The read is tracked:
// inside a memo or effect it subscribes to that path. Missing paths and
// paths through non-container values return (nil, false).
func (s *Store) Get(path string) (any, bool) {
	segs, ok := splitPath(path)
	if !ok {
		return nil, false
	}

	// Subscribe before reading. A write landing between the two steps
	// makes this reader rerun once redundantly, never miss an update.
	s.cellFor(path).rev.Get()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return valueAt(s.root, segs)
}

// Peek returns the value at path without tracking.
func (s *Store) Peek(path string) (any, bool) {
	segs, ok := splitPath(path)
	if !ok {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return valueAt(s.root, segs)
}

// Set writes v at path, creating intermediate containers as needed. An
// intermediate that exists but is not a container is replaced by one. A
// write whose value equals the current one is dropped without waking any
// reader. Invalid paths are ignored.
func (s *Store) Set(path string, v any) {
	segs, ok := splitPath(path)
	if !ok {
		return
	}

	s.mu.Lock()
	if old, exists := valueAt(s.root, segs); exists && reflect.DeepEqual(old, v) {
		s.mu.Unlock()
		return
	}
	s.root = setAt(s.root, segs, v)
	s.mu.Unlock()

	s.invalidate(path)
}

// Update atomically replaces the value at path with fn(old). fn receives
// nil when the path has no value yet. fn runs while the store lock is held
// and must not call back into the store.
func (s *Store) Update(path string, fn func(old any) any) {
	segs, ok := splitPath(path)
	if !ok {
		return
	}

	s.mu.Lock()
	old, _ := valueAt(s.root, segs)
	v := fn(old)
	if reflect.DeepEqual(old, v) {
		s.mu.Unlock()
		return
	}
	s.root = setAt(s.root, segs, v)
	s.mu.Unlock()

	s.invalidate(path)
}

// Subscribe runs fn with the value at path, immediately and again after
// every write that touches the path. The subscription lives under the
// current owner; the returned function removes it early.
func (s *Store) Subscribe(path string, fn func(any)) (unsubscribe func()) {
	effect := neoflux.CreateEffect(func() neoflux.Cleanup {
		v, _ := s.Get(path)
		fn(v)
		return nil
	})
	return effect.Dispose
}

// Snapshot returns a deep copy of the whole tree. The copy is untracked
// and safe to mutate.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTree(s.root)
}

// Replace swaps the entire tree for a deep copy of next and wakes every
// observed path.
func (s *Store) Replace(next map[string]any) {
	s.mu.Lock()
	s.root = copyTree(next)
	s.mu.Unlock()

	s.cellsMu.Lock()
	cells := make([]*pathCell, 0)
	for _, bucket := range s.cells {
		cells = append(cells, bucket...)
	}
	s.cellsMu.Unlock()

	bump(cells)
}

// cellFor returns the revision cell for path, creating it on first use.
func (s *Store) cellFor(path string) *pathCell {
	key := xxhash.Sum64String(path)

	s.cellsMu.Lock()
	defer s.cellsMu.Unlock()
	for _, c := range s.cells[key] {
		if c.path == path {
			return c
		}
	}
	c := &pathCell{
		path: path,
		rev:  neoflux.NewSignal(uint64(0)).WithName("store:" + path),
	}
	s.cells[key] = append(s.cells[key], c)
	return c
}

// invalidate bumps the cells affected by a write to path: the path itself,
// observed ancestors, and observed descendants.
func (s *Store) invalidate(path string) {
	prefix := path + "."

	s.cellsMu.Lock()
	affected := make([]*pathCell, 0, 4)
	for _, bucket := range s.cells {
		for _, c := range bucket {
			switch {
			case c.path == path:
				affected = append(affected, c)
			case strings.HasPrefix(c.path, prefix):
				// Observed path below the written subtree.
				affected = append(affected, c)
			case strings.HasPrefix(path, c.path+"."):
				// Observed ancestor whose container was rebuilt.
				affected = append(affected, c)
			}
		}
	}
	s.cellsMu.Unlock()

	bump(affected)
}

// bump advances revision cells in one batch so readers of several affected
// paths rerun once.
func bump(cells []*pathCell) {
	if len(cells) == 0 {
		return
	}
	neoflux.Batch(func() {
		for _, c := range cells {
			c.rev.Update(func(r uint64) uint64 { return r + 1 })
		}
	})
}

// splitPath validates and splits a dot-separated path. Empty paths and
// empty segments are invalid.
func splitPath(path string) ([]string, bool) {
	if path == "" {
		return nil, false
	}
	segs := strings.Split(path, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, false
		}
	}
	return segs, true
}

// valueAt walks the tree along segs.
func valueAt(node map[string]any, segs []string) (any, bool) {
	for i, seg := range segs {
		v, ok := node[seg]
		if !ok {
			return nil, false
		}
		if i == len(segs)-1 {
			return v, true
		}
		node, ok = v.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// setAt returns a new tree with v placed at segs. Containers along the
// path are copied, not mutated; missing or non-container intermediates
// become fresh maps.
func setAt(node map[string]any, segs []string, v any) map[string]any {
	out := make(map[string]any, len(node)+1)
	for k, val := range node {
		out[k] = val
	}
	if len(segs) == 1 {
		out[segs[0]] = v
		return out
	}
	child, _ := node[segs[0]].(map[string]any)
	out[segs[0]] = setAt(child, segs[1:], v)
	return out
}

// copyTree deep-copies the container structure of a tree. Leaf values are
// carried over as-is.
func copyTree(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for k, v := range node {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyTree(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
