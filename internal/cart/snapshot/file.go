// Package snapshot provides durable stores for the cart line-item
// collection: a single-file JSON store for standalone use and a Redis store
// for deployments that already run one.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZeyadMohamed5/Morph/internal/cart"
)

// FileStore persists the cart as a single JSON file. It is the moral
// equivalent of the browser's local storage: one key, overwritten on every
// mutation, read once at startup.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed snapshot store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted collection.
func (f *FileStore) Load(_ context.Context) ([]cart.LineItem, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cart.ErrNoSnapshot
		}
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}

	var items []cart.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}
	return items, nil
}

// Save overwrites the persisted collection. The write goes through a temp
// file and rename so a crash mid-write cannot corrupt the snapshot.
func (f *FileStore) Save(_ context.Context, items []cart.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close cart snapshot: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cart snapshot: %w", err)
	}
	return nil
}
