// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/bureau-foundation/bureau-split/lib/clock"
	"github.com/bureau-foundation/bureau-split/lib/manifest"
)

// DefaultBufferSize is the streaming buffer used when Options leaves
// BufferSize unset. Memory use per operation is bounded by this value
// regardless of file size.
const DefaultBufferSize = 1 << 20

// Options configures an Engine.
type Options struct {
	// Logger receives one record per unit of work. Nil discards.
	Logger *slog.Logger

	// Clock stamps reports and lock records. Nil uses the wall clock.
	Clock clock.Clock

	// BufferSize is the copy buffer length in bytes. Zero or negative
	// selects DefaultBufferSize.
	BufferSize int

	// Lock takes an advisory lock next to the manifest for the
	// duration of each mutating operation (build, merge, clean).
	Lock bool
}

// Engine runs split, merge, clean, verify and status operations
// against a manifest. An Engine holds no per-operation state and may
// be reused; concurrent operations on the same manifest are only safe
// with Options.Lock set.
type Engine struct {
	logger     *slog.Logger
	clock      clock.Clock
	bufferSize int
	lock       bool
}

// New returns an Engine configured by options.
func New(options Options) *Engine {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	bufferSize := options.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Engine{
		logger:     logger,
		clock:      clk,
		bufferSize: bufferSize,
		lock:       options.Lock,
	}
}

// run is the per-invocation context shared by the operation methods.
type run struct {
	engine *Engine
	id     string
	logger *slog.Logger
	lock   *manifest.Lock
	buffer []byte
	report *Report
}

// begin starts an operation: it assigns a run ID, takes the manifest
// lock when the engine is configured to, and opens the report. The
// caller must call end.
func (e *Engine) begin(operation, manifestPath string, mutating bool) (*run, error) {
	id := uuid.NewString()
	r := &run{
		engine: e,
		id:     id,
		logger: e.logger.With("operation", operation, "run_id", id),
		report: &Report{
			Operation: operation,
			RunID:     id,
			Manifest:  manifestPath,
			StartedAt: e.clock.Now(),
		},
	}

	if e.lock && mutating {
		hostname, _ := os.Hostname()
		lock, err := manifest.AcquireLock(manifestPath, manifest.LockRecord{
			PID:        os.Getpid(),
			Hostname:   hostname,
			Operation:  operation,
			RunID:      id,
			AcquiredAt: e.clock.Now(),
		})
		if err != nil {
			return nil, err
		}
		r.lock = lock
	}
	return r, nil
}

func (r *run) end() {
	r.report.FinishedAt = r.engine.clock.Now()
	if err := r.lock.Release(); err != nil {
		r.logger.Warn("releasing manifest lock", "error", err)
	}
}

// copyBuffer returns the run's streaming buffer, allocating it on
// first use.
func (r *run) copyBuffer() []byte {
	if r.buffer == nil {
		r.buffer = make([]byte, r.engine.bufferSize)
	}
	return r.buffer
}
