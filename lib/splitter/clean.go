// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bureau-foundation/bureau-split/lib/manifest"
)

// CleanOptions configures Engine.Clean.
type CleanOptions struct {
	ManifestPath string
}

// Clean deletes every chunk listed in the manifest and then the
// manifest itself. Chunks already absent are not an error, so Clean
// is safe to repeat. Originals are never touched; an entry whose
// original is absent is logged, since its content existed only in the
// chunks being removed.
//
// Entries whose chunks could not all be removed stay in the manifest,
// which is then saved instead of removed, so that nothing on disk
// becomes untracked.
func (e *Engine) Clean(ctx context.Context, options CleanOptions) (*Report, error) {
	if options.ManifestPath == "" {
		return nil, errors.New("invalid clean options: manifest path is required")
	}

	r, err := e.begin("clean", options.ManifestPath, true)
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

		if _, err := os.Stat(manifest.LocalPath(key)); errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("original is absent; its content is being discarded with its chunks", "path", key)
		}

		chunks := entry.LocalSplitFiles()
		removed, err := removeFiles(chunks)
		if err != nil {
			r.logger.Error("removing chunks", "path", key, "error", err)
			r.report.add(Outcome{Path: key, SplitCount: entry.SplitCount, Err: err})
			continue
		}
		// Stray temp siblings from an interrupted run.
		if _, err := removeFiles(tempChunks(chunks)); err != nil {
			r.logger.Warn("removing leftover temp chunks", "path", key, "error", err)
		}

		m.Delete(key)
		r.logger.Info("cleaned chunks", "path", key, "removed", removed, "listed", len(chunks))
		r.report.add(Outcome{Path: key, Status: StatusCleaned, SplitCount: removed, Size: entry.OriginalSize})
	}

	if m.Len() > 0 {
		if err := manifest.Save(options.ManifestPath, m); err != nil {
			return r.report, fmt.Errorf("saving manifest with uncleaned entries: %w", err)
		}
		return r.report, nil
	}
	if err := manifest.Remove(options.ManifestPath); err != nil {
		return r.report, err
	}
	return r.report, nil
}

func tempChunks(chunks []string) []string {
	temps := make([]string, len(chunks))
	for i, chunk := range chunks {
		temps[i] = tempPath(chunk)
	}
	return temps
}
