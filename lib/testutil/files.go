// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// patternReader emits an xorshift byte stream. The stream has no short
// period, so a chunk moved to the wrong offset never reads back equal.
type patternReader struct {
	state uint64
}

func (r *patternReader) Read(p []byte) (int, error) {
	for i := range p {
		r.state ^= r.state << 13
		r.state ^= r.state >> 7
		r.state ^= r.state << 17
		p[i] = byte(r.state >> 32)
	}
	return len(p), nil
}

// PatternReader returns a reader producing exactly size deterministic
// bytes derived from seed.
func PatternReader(size int64, seed uint64) io.Reader {
	return io.LimitReader(&patternReader{state: seed*0x9E3779B97F4A7C15 | 1}, size)
}

// PatternBytes returns the same bytes PatternReader would produce.
func PatternBytes(size int, seed uint64) []byte {
	content, _ := io.ReadAll(PatternReader(int64(size), seed))
	return content
}

// WritePatternFile creates path (and its parent directories) holding
// size bytes of pattern content.
func WritePatternFile(t TB, path string, size int64, seed uint64) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	if _, err := io.Copy(file, PatternReader(size, seed)); err != nil {
		file.Close()
		t.Fatalf("writing %s: %v", path, err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
}

// WriteFile creates path (and its parent directories) with content.
func WriteFile(t TB, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// ReadFile returns the content of path.
func ReadFile(t TB, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return content
}

// RequireFileContent fails unless path holds exactly want.
func RequireFileContent(t TB, path string, want []byte) {
	t.Helper()
	got := ReadFile(t, path)
	if !bytes.Equal(got, want) {
		t.Fatalf("%s: content differs (got %d bytes, want %d)", path, len(got), len(want))
	}
}

// RequireFileSize fails unless path exists with the given size.
func RequireFileSize(t TB, path string, size int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() != size {
		t.Fatalf("%s: size = %d, want %d", path, info.Size(), size)
	}
}

// RequireExists fails unless path exists.
func RequireExists(t TB, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("%s should exist: %v", path, err)
	}
}

// RequireNotExist fails if path exists.
func RequireNotExist(t TB, path string) {
	t.Helper()
	_, err := os.Stat(path)
	if err == nil {
		t.Fatalf("%s should not exist", path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("stat %s: %v", path, err)
	}
}
