// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Load reads the manifest at path. A missing file yields an empty
// manifest. A file that exists but does not decode to a JSON object of
// entries yields a *CorruptError.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	entries, err := decode(data)
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	return &Manifest{entries: entries}, nil
}

// decode parses manifest bytes and applies the structural checks that
// make a document unusable as a whole. Per-entry inconsistencies
// (count mismatches) are left for [Entry.Validate] so that one bad
// entry does not block operations on the others.
func decode(data []byte) (map[string]*Entry, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	if stripped[0] != '{' {
		return nil, fmt.Errorf("top level is not a JSON object")
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(stripped, &entries); err != nil {
		return nil, err
	}

	for key, entry := range entries {
		if key == "" {
			return nil, fmt.Errorf("entry with empty original path")
		}
		if entry == nil {
			return nil, fmt.Errorf("entry %q is null", key)
		}
		if entry.OriginalSize < 0 {
			return nil, fmt.Errorf("entry %q has negative original_size %d", key, entry.OriginalSize)
		}
		if entry.SplitCount < 0 {
			return nil, fmt.Errorf("entry %q has negative split_count %d", key, entry.SplitCount)
		}
		entry.OriginalPath = key
	}
	if entries == nil {
		entries = make(map[string]*Entry)
	}
	return entries, nil
}

// Encode returns the on-disk JSON form of m: an indented object with
// keys in sorted order and a trailing newline.
func Encode(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save atomically replaces the manifest at path with m. The document
// is written to a temp file in the same directory, synced, and renamed
// over path; the directory is then synced so the rename is durable.
func Save(path string, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating manifest directory %s: %w", directory, err)
	}

	tmpFile, err := os.CreateTemp(directory, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp manifest: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp manifest: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting temp manifest permissions: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp manifest: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp manifest: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming manifest to %s: %w", path, err)
	}
	success = true

	// Best effort: some filesystems refuse fsync on directories.
	_ = syncDirectory(directory)
	return nil
}

// Remove deletes the manifest file. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing manifest %s: %w", path, err)
	}
	return nil
}

func syncDirectory(directory string) error {
	handle, err := os.Open(directory)
	if err != nil {
		return err
	}
	defer handle.Close()
	return handle.Sync()
}
