package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileAdapter persists the key-value namespace as a single JSON document,
// rewritten atomically on every mutation. The snapshot payload is one small
// record, so rewriting the whole file is cheaper than anything smarter.
type FileAdapter struct {
	mu   sync.Mutex
	path string
}

func NewFileAdapter(path string) (*FileAdapter, error) {
	if path == "" {
		return nil, errors.New("file adapter path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating snapshot dir: %w", err)
		}
	}
	return &FileAdapter{path: path}, nil
}

func (f *FileAdapter) Read(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (f *FileAdapter) Write(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		// A corrupt file is replaced rather than kept broken.
		values = map[string]string{}
	}
	values[key] = value
	return f.store(values)
}

func (f *FileAdapter) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.store(values)
}

func (f *FileAdapter) Close() error {
	return nil
}

func (f *FileAdapter) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	values := map[string]string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decoding snapshot file: %w", err)
	}
	return values, nil
}

func (f *FileAdapter) store(values map[string]string) error {
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot file: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing snapshot file: %w", err)
	}
	return nil
}
