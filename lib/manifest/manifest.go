// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Entry is the split record for one original file.
type Entry struct {
	// OriginalPath is the manifest key. It is not serialized inside
	// the entry; Load fills it from the map key.
	OriginalPath string `json:"-"`

	// SplitCount is the number of chunks. Always len(SplitFiles) in a
	// well-formed entry.
	SplitCount int `json:"split_count"`

	// SplitFiles lists chunk paths in concatenation order.
	SplitFiles []string `json:"split_files"`

	// OriginalSize is the byte length of the original at split time.
	OriginalSize int64 `json:"original_size"`

	// Checksum is the digest of the original ("blake3:<hex>"). Empty
	// for entries written by tooling that did not record one.
	Checksum string `json:"checksum,omitempty"`
}

// Validate checks the entry's internal consistency. It does not touch
// the filesystem.
func (e *Entry) Validate() error {
	if e.SplitCount != len(e.SplitFiles) {
		return fmt.Errorf("split_count is %d but %d split_files are listed", e.SplitCount, len(e.SplitFiles))
	}
	if e.SplitCount == 0 {
		return fmt.Errorf("entry has no chunks")
	}
	if e.OriginalSize < 0 {
		return fmt.Errorf("original_size is negative (%d)", e.OriginalSize)
	}
	seen := make(map[string]struct{}, len(e.SplitFiles))
	for index, chunk := range e.SplitFiles {
		if chunk == "" {
			return fmt.Errorf("split_files[%d] is empty", index)
		}
		if _, duplicate := seen[chunk]; duplicate {
			return fmt.Errorf("split_files lists %s twice", chunk)
		}
		seen[chunk] = struct{}{}
	}
	return nil
}

// LocalSplitFiles returns SplitFiles converted to native paths.
func (e *Entry) LocalSplitFiles() []string {
	paths := make([]string, len(e.SplitFiles))
	for i, chunk := range e.SplitFiles {
		paths[i] = LocalPath(chunk)
	}
	return paths
}

// Manifest maps original paths to their split records.
type Manifest struct {
	entries map[string]*Entry
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{entries: make(map[string]*Entry)}
}

// Get returns the entry for key, or false if there is none.
func (m *Manifest) Get(key string) (*Entry, bool) {
	entry, ok := m.entries[key]
	return entry, ok
}

// Put records entry under entry.OriginalPath, replacing any previous
// entry for that key.
func (m *Manifest) Put(entry *Entry) {
	m.entries[entry.OriginalPath] = entry
}

// Delete removes the entry for key. Deleting an absent key is a no-op.
func (m *Manifest) Delete(key string) {
	delete(m.entries, key)
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Keys returns every original path in sorted order. Operations walk
// entries in this order so that logs and reports are reproducible.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Key converts a native path to its stored manifest form: cleaned and
// slash-separated.
func Key(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// LocalPath converts a stored manifest path to a native path.
func LocalPath(key string) string {
	return filepath.FromSlash(key)
}
