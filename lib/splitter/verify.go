// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/bureau-split/lib/digest"
	"github.com/bureau-foundation/bureau-split/lib/manifest"
)

// VerifyOptions configures Engine.Verify.
type VerifyOptions struct {
	ManifestPath string

	// Checksum additionally streams every entry's chunks through the
	// hash and compares against the recorded checksum. Entries
	// without a recorded checksum are checked by size only.
	Checksum bool
}

// IssueKind classifies a verification finding.
type IssueKind string

const (
	IssueMissingChunk IssueKind = "missing-chunk"
	IssueIntegrity    IssueKind = "integrity"
	IssueIO           IssueKind = "io"
)

// Issue is one problem found by Verify.
type Issue struct {
	Path          string    `json:"path"`
	Kind          IssueKind `json:"kind"`
	MissingChunks []string  `json:"missing_chunks,omitempty"`
	Detail        string    `json:"detail"`

	Err error `json:"-"`
}

// VerifyReport is the result of Engine.Verify.
type VerifyReport struct {
	RunID    string  `json:"run_id"`
	Manifest string  `json:"manifest"`
	Entries  int     `json:"entries"`
	Checksum bool    `json:"checksum"`
	Issues   []Issue `json:"issues"`
}

// OK reports whether every entry verified cleanly.
func (r *VerifyReport) OK() bool {
	return len(r.Issues) == 0
}

// Err joins the errors behind every issue.
func (r *VerifyReport) Err() error {
	var errs []error
	for _, issue := range r.Issues {
		errs = append(errs, issue.Err)
	}
	return errors.Join(errs...)
}

// Verify checks, without modifying anything, that every entry's chunks
// exist and add up to the recorded size, and with Checksum set that
// their concatenation hashes to the recorded checksum. Every problem
// found is reported; verification does not stop at the first.
func (e *Engine) Verify(ctx context.Context, options VerifyOptions) (*VerifyReport, error) {
	if options.ManifestPath == "" {
		return nil, errors.New("invalid verify options: manifest path is required")
	}

	r, err := e.begin("verify", options.ManifestPath, false)
	if err != nil {
		return nil, err
	}
	defer r.end()

	m, err := manifest.Load(options.ManifestPath)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{
		RunID:    r.id,
		Manifest: options.ManifestPath,
		Entries:  m.Len(),
		Checksum: options.Checksum,
	}
	for _, key := range m.Keys() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		entry, _ := m.Get(key)
		if issue := r.verifyEntry(entry, options.Checksum); issue != nil {
			r.logger.Warn("verification failed", "path", key, "kind", string(issue.Kind), "error", issue.Err)
			report.Issues = append(report.Issues, *issue)
			continue
		}
		r.logger.Debug("verified", "path", key)
	}
	return report, nil
}

func (r *run) verifyEntry(entry *manifest.Entry, checksum bool) *Issue {
	key := entry.OriginalPath
	if err := entry.Validate(); err != nil {
		return integrityIssue(&IntegrityError{Original: key, Reason: err.Error()})
	}

	chunks := entry.LocalSplitFiles()
	scanned, err := statChunks(chunks)
	if err != nil {
		return &Issue{Path: key, Kind: IssueIO, Detail: err.Error(), Err: err}
	}
	if len(scanned.missing) > 0 {
		missingErr := &MissingChunkError{Original: key, Missing: scanned.missing, Total: len(chunks)}
		return &Issue{
			Path:          key,
			Kind:          IssueMissingChunk,
			MissingChunks: scanned.missing,
			Detail:        missingErr.Error(),
			Err:           missingErr,
		}
	}
	if scanned.totalSize != entry.OriginalSize {
		return integrityIssue(sizeMismatch(key, "chunk sizes do not sum to the original size", entry.OriginalSize, scanned.totalSize))
	}

	if !checksum || entry.Checksum == "" {
		return nil
	}
	expected, err := digest.Parse(entry.Checksum)
	if err != nil {
		return integrityIssue(&IntegrityError{Original: key, Reason: fmt.Sprintf("unusable checksum: %v", err)})
	}
	_, actual, err := concatenate(io.Discard, key, chunks, r.copyBuffer())
	if err != nil {
		var missing *MissingChunkError
		if errors.As(err, &missing) {
			return &Issue{Path: key, Kind: IssueMissingChunk, MissingChunks: missing.Missing, Detail: err.Error(), Err: err}
		}
		return &Issue{Path: key, Kind: IssueIO, Detail: err.Error(), Err: err}
	}
	if actual != expected {
		return integrityIssue(&IntegrityError{
			Original: key,
			Reason:   "chunk checksum does not match the manifest",
			Expected: expected.String(),
			Actual:   actual.String(),
		})
	}
	return nil
}

func integrityIssue(err *IntegrityError) *Issue {
	return &Issue{Path: err.Original, Kind: IssueIntegrity, Detail: err.Error(), Err: err}
}
