// Package spill provides an append-only list that keeps its items on disk
// instead of in memory.
package spill

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// ErrClosed is returned when a closed list is used.
var ErrClosed = errors.New("spill closed")

// List is an append-only sequence of T backed by a gob file.
// It is safe for concurrent use.
type List[T any] interface {
	Len() int
	Path() string
	Append(item T) error
	Range(fn func(index int, item T) error) error
	Collect() ([]T, error)
	Close() error
}

type fileList[T any] struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *gob.Encoder
	length  int
}

// New creates a List whose backing file lives in dir. An empty dir uses the
// system temporary directory.
func New[T any](dir string) (List[T], error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("Failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "cs2kt-spill-*.gob")
	if err != nil {
		slog.Error("Failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	slog.Debug("created spill", "path", file.Name())

	return &fileList[T]{path: file.Name(), file: file, encoder: gob.NewEncoder(file)}, nil
}

func (f *fileList[T]) Path() string {
	return f.path
}

func (f *fileList[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

func (f *fileList[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return ErrClosed
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("Failed to encode spill item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("encode item %d: %w", f.length, err)
	}

	f.length++

	return nil
}

// Range decodes the items in append order. It stops at the first error fn
// returns.
func (f *fileList[T]) Range(fn func(index int, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return ErrClosed
	}

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("Failed to open spill file", "path", f.path, "error", err)
		return fmt.Errorf("open spill: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close spill file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range f.length {
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("Failed to decode spill item", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("decode item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

func (f *fileList[T]) Collect() ([]T, error) {
	out := make([]T, 0, f.Len())

	err := f.Range(func(_ int, item T) error {
		out = append(out, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Close closes and removes the backing file.
func (f *fileList[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil

	if rmErr := os.Remove(f.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		err = errors.Join(err, rmErr)
	}

	if err != nil {
		slog.Error("Failed to close spill", "path", f.path, "error", err)
		return fmt.Errorf("close spill: %w", err)
	}

	slog.Debug("closed spill", "path", f.path, "length", f.length)

	return nil
}
