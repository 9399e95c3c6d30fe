// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptManifest matches a manifest file that exists but cannot
	// be parsed as the expected structure.
	ErrCorruptManifest = errors.New("corrupt manifest")

	// ErrLocked matches an attempt to lock a manifest that another
	// process holds.
	ErrLocked = errors.New("manifest is locked")
)

// CorruptError describes why a manifest file could not be loaded.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt manifest %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorruptManifest }

// LockedError reports the current holder of a manifest lock. Holder is
// nil when the lock file could not be decoded (for example, the holder
// has the file open but has not written its record yet).
type LockedError struct {
	Path   string
	Holder *LockRecord
}

func (e *LockedError) Error() string {
	if e.Holder == nil {
		return fmt.Sprintf("manifest lock %s is held by another process", e.Path)
	}
	return fmt.Sprintf("manifest lock %s is held by pid %d on %s (%s, run %s, since %s)",
		e.Path, e.Holder.PID, e.Holder.Hostname, e.Holder.Operation, e.Holder.RunID,
		e.Holder.AcquiredAt.Format("2006-01-02T15:04:05Z07:00"))
}

func (e *LockedError) Is(target error) bool { return target == ErrLocked }
