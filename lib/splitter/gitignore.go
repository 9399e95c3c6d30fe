// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// updateGitignore appends an entry for each original not already
// listed in the .gitignore at gitignorePath, creating the file if
// needed. Entries are written relative to the file's directory;
// originals outside that directory are left out. Existing lines are
// preserved in order. Returns the number of lines added.
func updateGitignore(gitignorePath string, originals []string) (int, error) {
	existing, err := os.ReadFile(gitignorePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("reading: %w", err)
	}

	listed := make(map[string]struct{})
	for line := range strings.Lines(string(existing)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		listed[line] = struct{}{}
	}

	base, err := filepath.Abs(filepath.Dir(gitignorePath))
	if err != nil {
		return 0, fmt.Errorf("resolving directory: %w", err)
	}

	var additions []string
	for _, original := range originals {
		absolute, err := filepath.Abs(original)
		if err != nil {
			return 0, fmt.Errorf("resolving %s: %w", original, err)
		}
		relative, err := filepath.Rel(base, absolute)
		if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
			continue
		}
		line := filepath.ToSlash(relative)
		if _, ok := listed[line]; ok {
			continue
		}
		if _, ok := listed["/"+line]; ok {
			continue
		}
		listed[line] = struct{}{}
		additions = append(additions, line)
	}
	if len(additions) == 0 {
		return 0, nil
	}
	sort.Strings(additions)

	var content bytes.Buffer
	content.Write(existing)
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		content.WriteByte('\n')
	}
	for _, line := range additions {
		content.WriteString(line)
		content.WriteByte('\n')
	}

	if err := writeFileAtomic(gitignorePath, content.Bytes()); err != nil {
		return 0, err
	}
	return len(additions), nil
}

// writeFileAtomic replaces path with data via a synced temp file and
// rename.
func writeFileAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(directory, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
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
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	success = true
	return nil
}
