// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/bureau-foundation/bureau-split/lib/digest"
	"github.com/bureau-foundation/bureau-split/lib/manifest"
)

// BuildOptions configures Engine.Build.
type BuildOptions struct {
	// Root is the directory to scan. Empty means ".".
	Root string

	// SizeLimit is the largest size in bytes a file may have without
	// being split, and the size of every chunk but the last. Must be
	// at least 1.
	SizeLimit int64

	// ManifestPath is where split records are kept.
	ManifestPath string

	// KeepOriginals leaves originals in place after splitting. A kept
	// original is re-split when its size or checksum no longer matches
	// its entry, or when its chunks are missing or truncated.
	KeepOriginals bool

	// GitignorePath, when set, names a .gitignore file that gains one
	// line per newly split original.
	GitignorePath string

	// Exclude holds path.Match patterns tested against each path
	// relative to Root and against its base name.
	Exclude []string
}

func (o *BuildOptions) validate() error {
	var errs []error
	if o.SizeLimit < 1 {
		errs = append(errs, fmt.Errorf("size limit must be at least 1 byte, got %d", o.SizeLimit))
	}
	if o.ManifestPath == "" {
		errs = append(errs, errors.New("manifest path is required"))
	}
	for _, pattern := range o.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("exclude pattern %q: %w", pattern, err))
		}
	}
	return errors.Join(errs...)
}

// Build splits every regular file under Root larger than SizeLimit
// into chunks of at most SizeLimit bytes and records each in the
// manifest. Files already recorded are skipped, so running Build again
// is a no-op.
//
// The manifest is saved after every file, before the original is
// removed. A failure on one file removes that file's partial chunks,
// leaves its original untouched, and moves on; the returned Report
// carries the failure. The returned error is reserved for failures
// that stop the whole operation: an unreadable root, a corrupt or
// unwritable manifest, a held lock, or context cancellation.
func (e *Engine) Build(ctx context.Context, options BuildOptions) (*Report, error) {
	if options.Root == "" {
		options.Root = "."
	}
	if err := options.validate(); err != nil {
		return nil, fmt.Errorf("invalid build options: %w", err)
	}

	r, err := e.begin("build", options.ManifestPath, true)
	if err != nil {
		return nil, err
	}
	defer r.end()

	m, err := manifest.Load(options.ManifestPath)
	if err != nil {
		return r.report, err
	}

	walk := &scan{
		root:      options.Root,
		sizeLimit: options.SizeLimit,
		exclude:   options.Exclude,
		ignore:    ignoreSet(options.ManifestPath, manifest.LockPath(options.ManifestPath)),
		logger:    r.logger,
	}
	candidates, failures, err := walk.discover()
	if err != nil {
		return r.report, err
	}
	for _, failure := range failures {
		r.logger.Warn("skipping unreadable path", "path", failure.Path, "error", failure.Err)
		r.report.add(failure)
	}
	r.logger.Debug("discovered candidates", "root", options.Root, "count", len(candidates), "size_limit", options.SizeLimit)

	var split []string
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return r.report, err
		}

		status := StatusSplit
		if existing, ok := m.Get(c.key); ok {
			reason := ""
			if options.KeepOriginals {
				var err error
				reason, err = staleReason(existing, c)
				if err != nil {
					r.logger.Error("checking recorded split", "path", c.key, "error", err)
					r.report.add(Outcome{Path: c.key, Err: err})
					continue
				}
			}
			if reason == "" {
				r.logger.Debug("already split", "path", c.key)
				r.report.add(Outcome{
					Path:       c.key,
					Status:     StatusSkipped,
					SplitCount: existing.SplitCount,
					Size:       existing.OriginalSize,
					Checksum:   existing.Checksum,
				})
				continue
			}

			r.logger.Warn("recorded split is stale, re-splitting", "path", c.key, "reason", reason)
			if err := removeWithTemps(existing.LocalSplitFiles()); err != nil {
				r.logger.Error("removing stale chunks", "path", c.key, "error", err)
				r.report.add(Outcome{Path: c.key, Err: err})
				continue
			}
			m.Delete(c.key)
			if err := manifest.Save(options.ManifestPath, m); err != nil {
				return r.report, fmt.Errorf("saving manifest after dropping stale entry %s: %w", c.key, err)
			}
			status = StatusResplit
		}

		entry, err := r.splitFile(c, options.SizeLimit)
		if err != nil {
			r.logger.Error("split failed", "path", c.key, "error", err)
			r.report.add(Outcome{Path: c.key, Err: err})
			continue
		}
		if entry == nil {
			// Shrank below the limit between discovery and open.
			continue
		}

		m.Put(entry)
		if err := manifest.Save(options.ManifestPath, m); err != nil {
			// The entry never became durable, so its chunks would be
			// untracked. The original is still intact.
			if removeErr := removeWithTemps(entry.LocalSplitFiles()); removeErr != nil {
				r.logger.Warn("removing chunks of unrecorded split", "path", c.key, "error", removeErr)
			}
			return r.report, fmt.Errorf("saving manifest after splitting %s: %w", c.key, err)
		}

		if !options.KeepOriginals {
			if err := os.Remove(c.path); err != nil {
				r.logger.Error("removing original after split", "path", c.key, "error", err)
				r.report.add(Outcome{Path: c.key, Err: &IOError{Op: "removing original", Path: c.path, Err: err}})
				continue
			}
		}

		r.logger.Info("split file", "path", c.key, "chunks", entry.SplitCount, "size", entry.OriginalSize)
		r.report.add(Outcome{
			Path:       c.key,
			Status:     status,
			SplitCount: entry.SplitCount,
			Size:       entry.OriginalSize,
			Checksum:   entry.Checksum,
		})
		split = append(split, c.path)
	}

	if options.GitignorePath != "" && len(split) > 0 {
		added, err := updateGitignore(options.GitignorePath, split)
		if err != nil {
			return r.report, fmt.Errorf("updating %s: %w", options.GitignorePath, err)
		}
		if added > 0 {
			r.logger.Info("updated gitignore", "path", options.GitignorePath, "added", added)
		}
	}
	return r.report, nil
}

// staleReason reports why the recorded split of a kept original no
// longer matches it, or "" when the chunks still reproduce it: the
// original changed size or content, a chunk is missing, or the chunk
// sizes no longer add up.
func staleReason(existing *manifest.Entry, c candidate) (string, error) {
	if existing.OriginalSize != c.size {
		return fmt.Sprintf("original size changed from %d to %d bytes", existing.OriginalSize, c.size), nil
	}
	if err := existing.Validate(); err != nil {
		return fmt.Sprintf("inconsistent entry: %v", err), nil
	}

	scanned, err := statChunks(existing.LocalSplitFiles())
	if err != nil {
		return "", err
	}
	if len(scanned.missing) > 0 {
		return fmt.Sprintf("%d of %d chunks missing", len(scanned.missing), existing.SplitCount), nil
	}
	if scanned.totalSize != existing.OriginalSize {
		return fmt.Sprintf("chunk sizes sum to %d bytes, not %d", scanned.totalSize, existing.OriginalSize), nil
	}

	if existing.Checksum == "" {
		return "", nil
	}
	expected, err := digest.Parse(existing.Checksum)
	if err != nil {
		return fmt.Sprintf("unusable checksum: %v", err), nil
	}
	actual, _, err := digest.HashFile(c.path)
	if err != nil {
		return "", &IOError{Op: "hashing original", Path: c.path, Err: err}
	}
	if actual != expected {
		return "original content changed", nil
	}
	return "", nil
}

// splitFile streams c into chunks and returns the entry describing
// them. On any error every chunk written so far is removed. A nil
// entry with a nil error means the file no longer exceeds limit.
func (r *run) splitFile(c candidate, limit int64) (*manifest.Entry, error) {
	file, err := os.Open(c.path)
	if err != nil {
		return nil, &IOError{Op: "opening original", Path: c.path, Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, &IOError{Op: "inspecting original", Path: c.path, Err: err}
	}
	size := info.Size()
	if size <= limit {
		return nil, nil
	}

	count := int((size + limit - 1) / limit)
	keys := ChunkPaths(c.key, count)
	local := make([]string, count)
	for index, key := range keys {
		local[index] = manifest.LocalPath(key)
	}

	success := false
	defer func() {
		if !success {
			if err := removeWithTemps(local); err != nil {
				r.logger.Warn("removing partial chunks", "path", c.key, "error", err)
			}
		}
	}()

	hasher := digest.NewHasher()
	source := io.TeeReader(file, hasher)
	buffer := r.copyBuffer()
	for index, chunk := range local {
		length := min(limit, size-int64(index)*limit)
		if err := writeChunk(chunk, source, length, buffer); err != nil {
			return nil, err
		}
	}

	// A writer appending to the original while we read would make
	// the recorded size a lie.
	var probe [1]byte
	if n, _ := file.Read(probe[:]); n > 0 {
		return nil, &IntegrityError{Original: c.key, Reason: "original grew while it was being split"}
	}

	chunks, err := statChunks(local)
	if err != nil {
		return nil, err
	}
	if len(chunks.missing) > 0 {
		return nil, &MissingChunkError{Original: c.key, Missing: chunks.missing, Total: count}
	}
	if chunks.totalSize != size {
		return nil, sizeMismatch(c.key, "chunk sizes do not sum to the original size", size, chunks.totalSize)
	}
	if hasher.Written() != size {
		return nil, sizeMismatch(c.key, "bytes hashed differ from the original size", size, hasher.Written())
	}

	success = true
	return &manifest.Entry{
		OriginalPath: c.key,
		SplitCount:   count,
		SplitFiles:   keys,
		OriginalSize: size,
		Checksum:     hasher.Digest().String(),
	}, nil
}
