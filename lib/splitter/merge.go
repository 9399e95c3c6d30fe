// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bureau-foundation/bureau-split/lib/digest"
	"github.com/bureau-foundation/bureau-split/lib/manifest"
)

// MergeOptions configures Engine.Merge.
type MergeOptions struct {
	ManifestPath string

	// KeepChunks leaves chunk files and manifest entries in place
	// after a successful reconstruction.
	KeepChunks bool
}

// Merge reconstructs every original recorded in the manifest by
// concatenating its chunks in order. Each reconstruction is written to
// a temp file, checked against the recorded size and checksum, and
// only then renamed over the original path. After a verified
// reconstruction the chunks are removed and the entry dropped (unless
// KeepChunks), with the manifest saved after every entry and removed
// once its last entry is gone.
//
// An entry whose chunks are missing, or whose reconstruction fails
// verification, is reported and left untouched; the remaining entries
// are still processed. The returned error covers only failures that
// stop the whole operation.
func (e *Engine) Merge(ctx context.Context, options MergeOptions) (*Report, error) {
	if options.ManifestPath == "" {
		return nil, errors.New("invalid merge options: manifest path is required")
	}

	r, err := e.begin("merge", options.ManifestPath, true)
	if err != nil {
		return nil, err
	}
	defer r.end()

	m, err := manifest.Load(options.ManifestPath)
	if err != nil {
		return r.report, err
	}

	for _, key := range m.Keys() {
		if err := ctx.Err(); err != nil {
			return r.report, err
		}
		entry, _ := m.Get(key)

		status, err := r.mergeEntry(entry, options.KeepChunks)
		if err != nil {
			r.logger.Error("merge failed", "path", key, "error", err)
			r.report.add(Outcome{Path: key, SplitCount: entry.SplitCount, Size: entry.OriginalSize, Err: err})
			continue
		}

		if !options.KeepChunks {
			if err := removeWithTemps(entry.LocalSplitFiles()); err != nil {
				// The original is verified, so the entry can go; the
				// leftover chunks are reported for manual cleanup.
				r.logger.Warn("removing merged chunks", "path", key, "error", err)
			}
			m.Delete(key)
			if m.Len() == 0 {
				// Nothing left to reconstruct: the manifest goes with the
				// last chunks, as after clean.
				if err := manifest.Remove(options.ManifestPath); err != nil {
					return r.report, err
				}
			} else if err := manifest.Save(options.ManifestPath, m); err != nil {
				return r.report, fmt.Errorf("saving manifest after merging %s: %w", key, err)
			}
		}

		r.logger.Info("merged file", "path", key, "status", string(status), "chunks", entry.SplitCount, "size", entry.OriginalSize)
		r.report.add(Outcome{
			Path:       key,
			Status:     status,
			SplitCount: entry.SplitCount,
			Size:       entry.OriginalSize,
			Checksum:   entry.Checksum,
		})
	}
	return r.report, nil
}

// mergeEntry reconstructs one original. It returns the status to
// report on success.
func (r *run) mergeEntry(entry *manifest.Entry, keepChunks bool) (Status, error) {
	key := entry.OriginalPath
	if err := entry.Validate(); err != nil {
		return "", &IntegrityError{Original: key, Reason: err.Error()}
	}

	var expected digest.Digest
	if entry.Checksum != "" {
		parsed, err := digest.Parse(entry.Checksum)
		if err != nil {
			return "", &IntegrityError{Original: key, Reason: fmt.Sprintf("unusable checksum: %v", err)}
		}
		expected = parsed
	}

	original := manifest.LocalPath(key)
	present, err := originalMatches(original, entry.OriginalSize, expected)
	if err != nil {
		return "", err
	}
	if present {
		r.logger.Debug("original already present", "path", key)
		return StatusAlreadyPresent, nil
	}

	chunks := entry.LocalSplitFiles()
	scanned, err := statChunks(chunks)
	if err != nil {
		return "", err
	}
	if len(scanned.missing) > 0 {
		return "", &MissingChunkError{Original: key, Missing: scanned.missing, Total: len(chunks)}
	}

	if err := r.reconstruct(original, key, chunks, entry.OriginalSize, expected); err != nil {
		return "", err
	}
	if keepChunks {
		return StatusReconstructed, nil
	}
	return StatusMerged, nil
}

// reconstruct concatenates chunks into original's temp sibling,
// verifies the result, and renames it over original. On any failure
// the temp file is removed and original is not touched.
func (r *run) reconstruct(original, key string, chunks []string, size int64, expected digest.Digest) error {
	tmpPath := tempPath(original)
	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &IOError{Op: "creating reconstruction", Path: tmpPath, Err: err}
	}

	success := false
	defer func() {
		if !success {
			out.Close()
			os.Remove(tmpPath)
		}
	}()

	written, actual, err := concatenate(out, key, chunks, r.copyBuffer())
	if err != nil {
		return err
	}
	if written != size {
		return sizeMismatch(key, "reconstructed size does not match the manifest", size, written)
	}
	if !expected.IsZero() && actual != expected {
		return &IntegrityError{
			Original: key,
			Reason:   "reconstructed checksum does not match the manifest",
			Expected: expected.String(),
			Actual:   actual.String(),
		}
	}

	if err := out.Sync(); err != nil {
		return &IOError{Op: "syncing reconstruction", Path: tmpPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Op: "closing reconstruction", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, original); err != nil {
		return &IOError{Op: "renaming reconstruction", Path: original, Err: err}
	}
	success = true
	return nil
}

// originalMatches reports whether a regular file at path already has
// the recorded size and, when one is recorded, the recorded checksum.
func originalMatches(path string, size int64, expected digest.Digest) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &IOError{Op: "inspecting original", Path: path, Err: err}
	}
	if !info.Mode().IsRegular() || info.Size() != size {
		return false, nil
	}
	if expected.IsZero() {
		return true, nil
	}
	actual, _, err := digest.HashFile(path)
	if err != nil {
		return false, &IOError{Op: "hashing original", Path: path, Err: err}
	}
	return actual == expected, nil
}
