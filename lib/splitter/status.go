// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"github.com/bureau-foundation/bureau-split/lib/manifest"
)

// StatusEntry summarizes one manifest entry.
type StatusEntry struct {
	Path       string `json:"path"`
	SplitCount int    `json:"split_count"`
	Size       int64  `json:"size"`
	Checksum   string `json:"checksum,omitempty"`
}

// StatusReport summarizes a manifest.
type StatusReport struct {
	Manifest    string        `json:"manifest"`
	TotalSize   int64         `json:"total_size"`
	TotalChunks int           `json:"total_chunks"`
	Entries     []StatusEntry `json:"entries"`
}

// Status reads the manifest and summarizes it. It touches nothing
// but the manifest file.
func (e *Engine) Status(manifestPath string) (*StatusReport, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	report := &StatusReport{Manifest: manifestPath, Entries: make([]StatusEntry, 0, m.Len())}
	for _, key := range m.Keys() {
		entry, _ := m.Get(key)
		report.Entries = append(report.Entries, StatusEntry{
			Path:       key,
			SplitCount: entry.SplitCount,
			Size:       entry.OriginalSize,
			Checksum:   entry.Checksum,
		})
		report.TotalSize += entry.OriginalSize
		report.TotalChunks += entry.SplitCount
	}
	e.logger.Debug("read manifest", "path", manifestPath, "entries", len(report.Entries))
	return report, nil
}
