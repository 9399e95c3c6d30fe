// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. Each matches the corresponding error type
// below; manifest.ErrCorruptManifest completes the taxonomy.
var (
	ErrIO           = errors.New("i/o error")
	ErrMissingChunk = errors.New("missing chunk")
	ErrIntegrity    = errors.New("integrity check failed")
)

// IOError is a read, write, rename or permission failure scoped to one
// file.
type IOError struct {
	// Op is a gerund phrase such as "writing chunk".
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// MissingChunkError lists the chunk files of one entry that are absent.
type MissingChunkError struct {
	Original string
	Missing  []string
	Total    int
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("%s: %d of %d chunks missing: %s",
		e.Original, len(e.Missing), e.Total, strings.Join(e.Missing, ", "))
}

func (e *MissingChunkError) Is(target error) bool { return target == ErrMissingChunk }

// IntegrityError reports content that does not match its manifest
// entry: a size or checksum mismatch, or an entry that is internally
// inconsistent.
type IntegrityError struct {
	Original string
	Reason   string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	if e.Expected == "" && e.Actual == "" {
		return fmt.Sprintf("%s: %s", e.Original, e.Reason)
	}
	return fmt.Sprintf("%s: %s (expected %s, got %s)", e.Original, e.Reason, e.Expected, e.Actual)
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

func sizeMismatch(original, reason string, expected, actual int64) *IntegrityError {
	return &IntegrityError{
		Original: original,
		Reason:   reason,
		Expected: fmt.Sprintf("%d bytes", expected),
		Actual:   fmt.Sprintf("%d bytes", actual),
	}
}
