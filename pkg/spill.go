// Package pkg provides small reusable utilities for gnaw.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Spill is a disk-backed append-only sequence of items of type T. Execution
// results accumulate here instead of in memory so a large mutant batch with
// captured test output never grows the process heap.
type Spill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Range(f func(index uint64, item T) error) error
	Drain() ([]T, error)
	Close() error
}

type spillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewSpill creates a Spill backed by a fresh temp file.
func NewSpill[T any]() (Spill[T], error) {
	file, err := os.CreateTemp("", "gnaw-spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created spill", "path", file.Name())

	return &spillImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append encodes one item at the tail. Safe for concurrent use.
func (s *spillImpl[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.encoder.Encode(item); err != nil {
		slog.Error("failed to encode spill item", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	s.length++

	return nil
}

// Len reports how many items have been appended.
func (s *spillImpl[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Path returns the backing file path.
func (s *spillImpl[T]) Path() string {
	return s.path
}

// Range decodes items in append order and hands each to fn. A callback error
// stops the walk and is returned as-is.
func (s *spillImpl[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		slog.Error("failed to open spill for range", "path", s.path, "error", err)
		return fmt.Errorf("failed to open spill: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close spill file", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); i < s.length; i++ {
		// Fresh value per item: gob skips zero-valued fields, so reusing
		// one variable would leak fields from the previous item.
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode spill item", "path", s.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Drain reads everything back into memory in append order.
func (s *spillImpl[T]) Drain() ([]T, error) {
	items := make([]T, 0, s.Len())

	err := s.Range(func(_ uint64, item T) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Close releases the backing file and deletes it.
func (s *spillImpl[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			slog.Error("failed to close spill", "path", s.path, "error", err)
			return err
		}

		s.file = nil
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove spill file", "path", s.path, "error", err)
		return err
	}

	slog.Debug("closed spill", "path", s.path, "length", s.length)

	return nil
}
