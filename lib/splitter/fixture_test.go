// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/bureau-split/lib/clock"
	"github.com/bureau-foundation/bureau-split/lib/manifest"
	"github.com/bureau-foundation/bureau-split/lib/testutil"
)

// fixture is a scratch directory with an engine and a manifest inside
// it. Paths are absolute, so manifest keys are absolute as well.
type fixture struct {
	root         string
	manifestPath string
	engine       *Engine
	clock        *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	fake := clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return &fixture{
		root:         root,
		manifestPath: filepath.Join(root, "split_files_info.json"),
		clock:        fake,
		engine: New(Options{
			Clock:      fake,
			BufferSize: 4096,
			Lock:       true,
		}),
	}
}

// path returns the absolute path of name inside the fixture.
func (f *fixture) path(name string) string {
	return filepath.Join(f.root, filepath.FromSlash(name))
}

// key returns the manifest key for name.
func (f *fixture) key(name string) string {
	return manifest.Key(f.path(name))
}

// write creates name with size bytes of pattern content and returns
// that content.
func (f *fixture) write(t *testing.T, name string, size int, seed uint64) []byte {
	t.Helper()
	content := testutil.PatternBytes(size, seed)
	testutil.WriteFile(t, f.path(name), content)
	return content
}

func (f *fixture) build(t *testing.T, limit int64, modify ...func(*BuildOptions)) *Report {
	t.Helper()
	options := BuildOptions{Root: f.root, SizeLimit: limit, ManifestPath: f.manifestPath}
	for _, m := range modify {
		m(&options)
	}
	report, err := f.engine.Build(context.Background(), options)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return report
}

func (f *fixture) merge(t *testing.T, keepChunks bool) *Report {
	t.Helper()
	report, err := f.engine.Merge(context.Background(), MergeOptions{
		ManifestPath: f.manifestPath,
		KeepChunks:   keepChunks,
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	return report
}

func (f *fixture) loadManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Load(f.manifestPath)
	if err != nil {
		t.Fatalf("loading manifest: %v", err)
	}
	return m
}

func (f *fixture) entry(t *testing.T, name string) *manifest.Entry {
	t.Helper()
	entry, ok := f.loadManifest(t).Get(f.key(name))
	if !ok {
		t.Fatalf("no manifest entry for %s", name)
	}
	return entry
}

func keepOriginals(options *BuildOptions) { options.KeepOriginals = true }

func requireOutcome(t *testing.T, report *Report, path string, status Status) Outcome {
	t.Helper()
	outcome, ok := report.Find(path)
	if !ok {
		t.Fatalf("report has no outcome for %s: %+v", path, report.Outcomes)
	}
	if outcome.Status != status {
		t.Fatalf("outcome for %s = %s (error %q), want %s", path, outcome.Status, outcome.Error, status)
	}
	return outcome
}
