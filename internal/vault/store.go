// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"password-manager/internal/logger"
)

var (
	// ErrInvalidIndex is returned when an index falls outside the stored entries.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrMalformed is returned when the data file cannot be read or decoded.
	ErrMalformed = errors.New("error loading data from file")

	// ErrSave is returned when the data file cannot be written.
	ErrSave = errors.New("error saving data to file")
)

// Store reads and writes the entry list. It keeps no state between calls:
// every mutation reloads the file, so edits made by other programs are
// picked up by the next operation.
type Store struct {
	path string

	// LoadErrorHandler receives load failures hit during a mutation. The
	// mutation then continues against an empty entry list.
	LoadErrorHandler func(error)
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Init loads the data file, creating it as an empty array when absent.
// created reports whether the file had to be created.
func (s *Store) Init() (created bool, err error) {
	if _, statErr := os.Stat(s.path); os.IsNotExist(statErr) {
		created = true
	}
	_, err = s.Load()
	return created, err
}

// Load returns every stored entry. A missing file is created empty. A file
// that cannot be read or parsed yields an empty list and an error wrapping
// ErrMalformed.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Data file missing, creating it.", "path", s.path)
			if err := s.Save([]Entry{}); err != nil {
				return []Entry{}, err
			}
			return []Entry{}, nil
		}
		return []Entry{}, fmt.Errorf("%w %s: %v", ErrMalformed, s.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []Entry{}, fmt.Errorf("%w %s: %v", ErrMalformed, s.path, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Save overwrites the data file with entries as compact JSON.
func (s *Store) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("%w %s: encoding entries: %w", ErrSave, s.path, err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("%w %s: creating directory: %w", ErrSave, s.path, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSave, s.path, err)
	}
	logger.Debug("Data file written.", "path", s.path, "entries", len(entries))
	return nil
}

// Get returns the entry at the zero-based index.
func (s *Store) Get(index int) (Entry, error) {
	entries := s.loadForMutation()
	if index < 0 || index >= len(entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index+1)
	}
	return entries[index], nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.loadForMutation())
}

// Append adds e to the end of the list.
func (s *Store) Append(e Entry) error {
	entries := s.loadForMutation()
	entries = append(entries, e)
	return s.Save(entries)
}

// Replace overwrites the entry at the zero-based index. Nothing is written
// when the index is out of range.
func (s *Store) Replace(index int, e Entry) error {
	entries := s.loadForMutation()
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index+1)
	}
	entries[index] = e
	return s.Save(entries)
}

// RemoveAt deletes the entry at the zero-based index and returns it.
func (s *Store) RemoveAt(index int) (Entry, error) {
	entries := s.loadForMutation()
	if index < 0 || index >= len(entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index+1)
	}
	removed := entries[index]
	entries = append(entries[:index], entries[index+1:]...)
	return removed, s.Save(entries)
}

// Clear empties the data file.
func (s *Store) Clear() error {
	return s.Save([]Entry{})
}

func (s *Store) loadForMutation() []Entry {
	entries, err := s.Load()
	if err != nil {
		logger.Error("Failed to load data file.", "path", s.path, "error", err)
		if s.LoadErrorHandler != nil {
			s.LoadErrorHandler(err)
		}
	}
	return entries
}
