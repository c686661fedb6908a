package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/neoflux-dev/neoflux/pkg/features/store"
)

// ErrNotFound is returned when a key does not exist in the backend.
var ErrNotFound = errors.New("neoflux: snapshot not found")

// Backend stores named snapshot blobs. Implementations must be safe for
// concurrent use.
type Backend interface {
	// Save writes the blob under key, replacing any previous content.
	Save(ctx context.Context, key string, r io.Reader) error

	// Load opens the blob stored under key. Returns ErrNotFound when the
	// key does not exist. The caller closes the reader.
	Load(ctx context.Context, key string) (io.ReadCloser, error)

	// List returns the keys beginning with prefix, in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the blob under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// SaveStore marshals the store's current snapshot as JSON and writes it
// under key.
func SaveStore(ctx context.Context, b Backend, key string, s *store.Store) error {
	payload, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store snapshot: %w", err)
	}
	if err := b.Save(ctx, key, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("save store snapshot: %w", err)
	}
	return nil
}

// LoadStore reads the snapshot under key and builds a fresh store from
// it.
func LoadStore(ctx context.Context, b Backend, key string) (*store.Store, error) {
	rc, err := b.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load store snapshot: %w", err)
	}
	defer rc.Close()

	var tree map[string]any
	if err := json.NewDecoder(rc).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode store snapshot: %w", err)
	}
	return store.New(tree), nil
}
