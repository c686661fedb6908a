package persist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirBackend stores snapshots as files under a local directory. Keys may
// contain forward slashes, which map to subdirectories.
type DirBackend struct {
	dir string
}

// NewDirBackend creates a backend rooted at dir, creating it if needed.
func NewDirBackend(dir string) (*DirBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &DirBackend{dir: dir}, nil
}

// keyPath resolves key inside the root, rejecting keys that would escape
// it.
func (b *DirBackend) keyPath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty snapshot key")
	}
	path := filepath.Join(b.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(b.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("snapshot key %q escapes the backend root", key)
	}
	return path, nil
}

// Save implements Backend. The write is atomic: content lands in a temp
// file first and is renamed over the destination.
func (b *DirBackend) Save(ctx context.Context, key string, r io.Reader) error {
	path, err := b.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load implements Backend.
func (b *DirBackend) Load(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := b.keyPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

// List implements Backend.
func (b *DirBackend) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(b.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".snapshot-") {
			return nil
		}
		rel, err := filepath.Rel(b.dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete implements Backend. Deleting a missing key is a no-op.
func (b *DirBackend) Delete(ctx context.Context, key string) error {
	path, err := b.keyPath(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
