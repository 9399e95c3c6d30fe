// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/bureau-foundation/bureau-split/lib/digest"
)

// writeChunk copies exactly length bytes from source into path. The
// bytes go to path's temp sibling first, which is synced and renamed
// into place, so path either holds a complete chunk or does not exist.
func writeChunk(path string, source io.Reader, length int64, buffer []byte) error {
	tmpPath := tempPath(path)
	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &IOError{Op: "creating chunk", Path: tmpPath, Err: err}
	}

	success := false
	defer func() {
		if !success {
			out.Close()
			os.Remove(tmpPath)
		}
	}()

	// Hide ReaderFrom so the copy goes through buffer.
	written, err := io.CopyBuffer(struct{ io.Writer }{out}, io.LimitReader(source, length), buffer)
	if err != nil {
		return &IOError{Op: "writing chunk", Path: path, Err: err}
	}
	if written != length {
		return &IOError{Op: "reading source for chunk", Path: path, Err: io.ErrUnexpectedEOF}
	}
	if err := out.Sync(); err != nil {
		return &IOError{Op: "syncing chunk", Path: tmpPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Op: "closing chunk", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &IOError{Op: "renaming chunk", Path: path, Err: err}
	}
	success = true
	return nil
}

// concatenate streams chunks in order into w, returning the number of
// bytes and the digest of the concatenation.
func concatenate(w io.Writer, original string, chunks []string, buffer []byte) (int64, digest.Digest, error) {
	hasher := digest.NewHasher()
	sink := io.MultiWriter(w, hasher)
	for _, chunk := range chunks {
		if err := appendChunk(sink, original, chunk, buffer); err != nil {
			return 0, digest.Digest{}, err
		}
	}
	return hasher.Written(), hasher.Digest(), nil
}

func appendChunk(sink io.Writer, original, chunk string, buffer []byte) error {
	in, err := os.Open(chunk)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingChunkError{Original: original, Missing: []string{chunk}, Total: 1}
		}
		return &IOError{Op: "opening chunk", Path: chunk, Err: err}
	}
	defer in.Close()

	// Hide WriterTo so the copy goes through buffer.
	if _, err := io.CopyBuffer(sink, struct{ io.Reader }{in}, buffer); err != nil {
		return &IOError{Op: "reading chunk", Path: chunk, Err: err}
	}
	return nil
}

// chunkScan is the on-disk state of an entry's chunk files.
type chunkScan struct {
	missing   []string
	totalSize int64
}

// statChunks stats every chunk. Absent chunks are collected rather
// than returned as errors; any other stat failure is an IOError.
func statChunks(chunks []string) (chunkScan, error) {
	var result chunkScan
	for _, chunk := range chunks {
		info, err := os.Stat(chunk)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				result.missing = append(result.missing, chunk)
				continue
			}
			return chunkScan{}, &IOError{Op: "inspecting chunk", Path: chunk, Err: err}
		}
		if !info.Mode().IsRegular() {
			return chunkScan{}, &IOError{Op: "inspecting chunk", Path: chunk, Err: fmt.Errorf("not a regular file (%s)", info.Mode().Type())}
		}
		result.totalSize += info.Size()
	}
	return result, nil
}

// removeFiles deletes each path, treating absence as success. It
// attempts every path and returns the number removed along with the
// joined errors of the removals that failed.
func removeFiles(paths []string) (int, error) {
	removed := 0
	var errs []error
	for _, p := range paths {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			errs = append(errs, &IOError{Op: "removing", Path: p, Err: err})
		}
	}
	return removed, errors.Join(errs...)
}

// removeWithTemps deletes each chunk and its temp sibling.
func removeWithTemps(paths []string) error {
	all := make([]string, 0, 2*len(paths))
	for _, p := range paths {
		all = append(all, p, tempPath(p))
	}
	_, err := removeFiles(all)
	return err
}
