// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/bureau-split/lib/bytesize"
	"github.com/bureau-foundation/bureau-split/lib/digest"
	"github.com/bureau-foundation/bureau-split/lib/manifest"
	"github.com/bureau-foundation/bureau-split/lib/testutil"
)

// TestLargeFileScenario splits a 250 MiB file at the default 100 MiB
// limit next to a 50 MiB file that stays whole, then merges it back.
func TestLargeFileScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("writes 300 MiB of test data")
	}

	root := t.TempDir()
	manifestPath := filepath.Join(root, "split_files_info.json")
	large := filepath.Join(root, "large.bin")
	medium := filepath.Join(root, "medium.bin")
	limit := int64(100 * bytesize.MiB)
	largeSize := int64(250 * bytesize.MiB)
	mediumSize := int64(50 * bytesize.MiB)

	testutil.WritePatternFile(t, large, largeSize, 11)
	testutil.WritePatternFile(t, medium, mediumSize, 12)
	want, _, err := digest.HashReader(testutil.PatternReader(largeSize, 11))
	if err != nil {
		t.Fatal(err)
	}

	engine := New(Options{Lock: true})
	ctx := context.Background()

	report, err := engine.Build(ctx, BuildOptions{Root: root, SizeLimit: limit, ManifestPath: manifestPath})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	requireOutcome(t, report, manifest.Key(large), StatusSplit)

	testutil.RequireNotExist(t, large)
	testutil.RequireFileSize(t, large+"_split_00", limit)
	testutil.RequireFileSize(t, large+"_split_01", limit)
	testutil.RequireFileSize(t, large+"_split_02", 50*int64(bytesize.MiB))
	testutil.RequireNotExist(t, large+"_split_03")
	testutil.RequireFileSize(t, medium, mediumSize)
	testutil.RequireNotExist(t, medium+"_split_00")

	verified, err := engine.Verify(ctx, VerifyOptions{ManifestPath: manifestPath, Checksum: true})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !verified.OK() {
		t.Fatalf("verify issues: %+v", verified.Issues)
	}

	merged, err := engine.Merge(ctx, MergeOptions{ManifestPath: manifestPath})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	requireOutcome(t, merged, manifest.Key(large), StatusMerged)

	got, size, err := digest.HashFile(large)
	if err != nil {
		t.Fatal(err)
	}
	if size != largeSize || got != want {
		t.Fatalf("reconstructed %d bytes with digest %s, want %d bytes with %s", size, got, largeSize, want)
	}
	testutil.RequireNotExist(t, large+"_split_00")
}
