// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bureau-foundation/bureau-split/lib/manifest"
	"github.com/bureau-foundation/bureau-split/lib/testutil"
)

func (f *fixture) verify(t *testing.T, checksum bool) *VerifyReport {
	t.Helper()
	report, err := f.engine.Verify(context.Background(), VerifyOptions{
		ManifestPath: f.manifestPath,
		Checksum:     checksum,
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return report
}

func TestVerifyHealthy(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.bin", 250, 1)
	f.write(t, "b.bin", 1000, 2)
	f.build(t, 100)

	for _, checksum := range []bool{false, true} {
		report := f.verify(t, checksum)
		if !report.OK() {
			t.Errorf("checksum=%v: issues %+v", checksum, report.Issues)
		}
		if report.Entries != 2 {
			t.Errorf("Entries = %d, want 2", report.Entries)
		}
		if report.Err() != nil {
			t.Errorf("Err() = %v", report.Err())
		}
	}
}

func TestVerifyReportsEveryMissingChunk(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.bin", 450, 1)
	f.write(t, "b.bin", 250, 2)
	f.build(t, 100)
	for _, chunk := range []string{"a.bin_split_00", "a.bin_split_04", "b.bin_split_01"} {
		if err := os.Remove(f.path(chunk)); err != nil {
			t.Fatal(err)
		}
	}

	report := f.verify(t, false)
	if report.OK() {
		t.Fatal("verify passed with missing chunks")
	}
	if len(report.Issues) != 2 {
		t.Fatalf("issues = %+v, want one per broken entry", report.Issues)
	}
	first := report.Issues[0]
	if first.Path != f.key("a.bin") || first.Kind != IssueMissingChunk {
		t.Errorf("first issue = %+v", first)
	}
	if len(first.MissingChunks) != 2 {
		t.Errorf("MissingChunks = %v, want 2", first.MissingChunks)
	}
	if !errors.Is(report.Err(), ErrMissingChunk) {
		t.Errorf("Err() = %v, want ErrMissingChunk", report.Err())
	}
}

func TestVerifySizeMismatch(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.bin", 250, 1)
	f.build(t, 100)
	testutil.WriteFile(t, f.path("a.bin_split_02"), []byte("short"))

	report := f.verify(t, false)
	if len(report.Issues) != 1 || report.Issues[0].Kind != IssueIntegrity {
		t.Fatalf("issues = %+v, want one integrity issue", report.Issues)
	}
	if !errors.Is(report.Issues[0].Err, ErrIntegrity) {
		t.Errorf("issue error %v does not match ErrIntegrity", report.Issues[0].Err)
	}
}

func TestVerifyChecksumOnlyWhenRequested(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.bin", 250, 1)
	f.build(t, 100)

	chunk := f.path("a.bin_split_00")
	data := testutil.ReadFile(t, chunk)
	data[0] ^= 0x01
	testutil.WriteFile(t, chunk, data)

	if report := f.verify(t, false); !report.OK() {
		t.Errorf("size-only verify flagged a same-size change: %+v", report.Issues)
	}
	report := f.verify(t, true)
	if len(report.Issues) != 1 || report.Issues[0].Kind != IssueIntegrity {
		t.Fatalf("issues = %+v, want one integrity issue", report.Issues)
	}
}

func TestVerifyModifiesNothing(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.bin", 250, 1)
	f.build(t, 100)
	if err := os.Remove(f.path("a.bin_split_01")); err != nil {
		t.Fatal(err)
	}
	before := testutil.ReadFile(t, f.manifestPath)

	f.verify(t, true)

	testutil.RequireFileContent(t, f.manifestPath, before)
	testutil.RequireExists(t, f.path("a.bin_split_00"))
	testutil.RequireNotExist(t, f.path("a.bin"))
	testutil.RequireNotExist(t, manifest.LockPath(f.manifestPath))
}

func TestVerifyCorruptManifest(t *testing.T) {
	f := newFixture(t)
	testutil.WriteFile(t, f.manifestPath, []byte("[]"))
	_, err := f.engine.Verify(context.Background(), VerifyOptions{ManifestPath: f.manifestPath})
	if !errors.Is(err, manifest.ErrCorruptManifest) {
		t.Fatalf("Verify error = %v, want ErrCorruptManifest", err)
	}
}
