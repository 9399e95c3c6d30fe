// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"errors"
	"time"
)

// Status is the result of one unit of work.
type Status string

const (
	// StatusSplit: the original was chunked and recorded.
	StatusSplit Status = "split"

	// StatusSkipped: the original is already recorded and unchanged.
	StatusSkipped Status = "skipped"

	// StatusResplit: a kept original no longer matched its chunks
	// (changed, or chunks missing), so its old chunks were replaced.
	StatusResplit Status = "resplit"

	// StatusMerged: the original was reconstructed and its chunks and
	// entry removed.
	StatusMerged Status = "merged"

	// StatusReconstructed: the original was reconstructed and its
	// chunks and entry kept.
	StatusReconstructed Status = "reconstructed"

	// StatusAlreadyPresent: a file matching the entry's size and
	// checksum was already at the original path.
	StatusAlreadyPresent Status = "already-present"

	// StatusCleaned: the entry's chunks were removed.
	StatusCleaned Status = "cleaned"

	StatusFailed Status = "failed"
)

// Outcome records what happened to one original during an operation.
type Outcome struct {
	Path       string `json:"path"`
	Status     Status `json:"status"`
	SplitCount int    `json:"split_count,omitempty"`
	Size       int64  `json:"size,omitempty"`
	Checksum   string `json:"checksum,omitempty"`
	Error      string `json:"error,omitempty"`

	// Err is the typed error behind a failed outcome.
	Err error `json:"-"`
}

// Report is the result of a build, merge or clean operation.
type Report struct {
	Operation  string    `json:"operation"`
	RunID      string    `json:"run_id"`
	Manifest   string    `json:"manifest"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
}

func (r *Report) add(outcome Outcome) {
	if outcome.Err != nil {
		outcome.Status = StatusFailed
		outcome.Error = outcome.Err.Error()
	}
	r.Outcomes = append(r.Outcomes, outcome)
}

// Failed returns the outcomes whose unit of work failed.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusFailed {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// Count returns how many outcomes have the given status.
func (r *Report) Count(status Status) int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Status == status {
			count++
		}
	}
	return count
}

// Err joins the errors of every failed outcome, or returns nil when
// all units succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, outcome := range r.Failed() {
		errs = append(errs, outcome.Err)
	}
	return errors.Join(errs...)
}

// Find returns the outcome for path, if the operation touched it.
func (r *Report) Find(path string) (Outcome, bool) {
	for _, outcome := range r.Outcomes {
		if outcome.Path == path {
			return outcome, true
		}
	}
	return Outcome{}, false
}
