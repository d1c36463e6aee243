/*
Package jsonfile persists the whole accounting document as one JSON file.

PURPOSE:
  The engine's only durable artifact is a single JSON document holding
  every employee and application. This store reads and writes it whole,
  and serializes every caller behind one process-wide mutex so that a
  load-modify-save cycle can never interleave with another.

ATOMICITY:
  Save marshals to <path>.tmp in the same directory and renames it over
  the canonical file. A crash mid-save leaves either the old document or
  the new one, never a torn write; the file is valid JSON at all times.

CRITICAL SECTIONS:
  View and Update run the supplied function with the mutex held across
  the entire load-fn-save sequence. Update persists only when fn returns
  nil; any error discards the in-memory mutation. This is the mutual
  exclusion the engine's balance checks depend on.

LIMITS:
  Single process only. The mutex does not coordinate separate processes
  sharing the same file; run exactly one instance per data file.
*/
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/novellusaahmad/HolidayDashboard/leave"
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the canonical location of the document file.
func (s *Store) Path() string { return s.path }

// =============================================================================
// PUBLIC CONTRACT - Load / Save
// =============================================================================

// Load returns the latest durably committed document. A missing file is
// initialized to an empty document on disk before returning.
func (s *Store) Load() (*leave.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save atomically replaces the document file.
func (s *Store) Save(doc *leave.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(doc)
}

// =============================================================================
// CRITICAL SECTIONS - View / Update
// =============================================================================

// View runs fn on a freshly loaded document under the lock. Mutations fn
// makes are never persisted.
func (s *Store) View(fn func(*leave.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs fn on a freshly loaded document under the lock and persists
// the result when fn returns nil. On error nothing is written; the next
// load observes the previous state.
func (s *Store) Update(fn func(*leave.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.saveLocked(doc)
}

// =============================================================================
// FILE OPERATIONS
// =============================================================================

func (s *Store) loadLocked() (*leave.Document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := leave.NewDocument()
		if err := s.saveLocked(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var doc leave.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", s.path, err)
	}
	doc.Link()
	return &doc, nil
}

func (s *Store) saveLocked(doc *leave.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
