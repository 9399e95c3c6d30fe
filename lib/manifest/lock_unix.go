// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/bureau-split/lib/codec"
)

// maxLockAttempts bounds the retry loop for the unlink race described
// in AcquireLock.
const maxLockAttempts = 5

// Lock is a held advisory lock on a manifest.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock takes an exclusive, non-blocking flock(2) on the lock
// file next to manifestPath and writes record into it. If another
// process holds the lock, the returned error is a *LockedError
// carrying that process's record.
//
// Release unlinks the lock file before unlocking. A competitor that
// opened the old file before the unlink could then lock an orphaned
// inode, so after locking we confirm that the path still names the
// file we hold and retry otherwise.
func AcquireLock(manifestPath string, record LockRecord) (*Lock, error) {
	path := LockPath(manifestPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for range maxLockAttempts {
		file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening lock file %s: %w", path, err)
		}

		if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			holder := readLockRecord(file)
			file.Close()
			if errors.Is(err, unix.EWOULDBLOCK) {
				return nil, &LockedError{Path: path, Holder: holder}
			}
			return nil, fmt.Errorf("locking %s: %w", path, err)
		}

		if !stillLinked(file, path) {
			file.Close()
			continue
		}

		if err := writeLockRecord(file, record); err != nil {
			unix.Flock(int(file.Fd()), unix.LOCK_UN)
			file.Close()
			return nil, err
		}
		return &Lock{path: path, file: file}, nil
	}
	return nil, fmt.Errorf("locking %s: lock file kept changing underneath us", path)
}

// Release removes the lock file and drops the lock. Safe to call on a
// nil Lock and more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	removeErr := os.Remove(l.path)
	unlockErr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return fmt.Errorf("removing lock file %s: %w", l.path, removeErr)
	}
	if unlockErr != nil {
		return fmt.Errorf("unlocking %s: %w", l.path, unlockErr)
	}
	return closeErr
}

func stillLinked(file *os.File, path string) bool {
	held, err := file.Stat()
	if err != nil {
		return false
	}
	current, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(held, current)
}

func writeLockRecord(file *os.File, record LockRecord) error {
	data, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding lock record: %w", err)
	}
	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("truncating lock file: %w", err)
	}
	if _, err := file.WriteAt(data, 0); err != nil {
		return fmt.Errorf("writing lock record: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing lock file: %w", err)
	}
	return nil
}

func readLockRecord(file *os.File) *LockRecord {
	data, err := io.ReadAll(io.NewSectionReader(file, 0, 1<<16))
	if err != nil || len(data) == 0 {
		return nil
	}
	var record LockRecord
	if err := codec.Unmarshal(data, &record); err != nil {
		return nil
	}
	return &record
}
