// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/bureau-split/lib/testutil"
)

func TestUpdateGitignoreCreatesFile(t *testing.T) {
	directory := t.TempDir()
	gitignore := filepath.Join(directory, ".gitignore")

	added, err := updateGitignore(gitignore, []string{
		filepath.Join(directory, "z.bin"),
		filepath.Join(directory, "models", "a.bin"),
	})
	if err != nil {
		t.Fatalf("updateGitignore: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	testutil.RequireFileContent(t, gitignore, []byte("models/a.bin\nz.bin\n"))
}

func TestUpdateGitignoreSkipsListedAndOutside(t *testing.T) {
	parent := t.TempDir()
	directory := filepath.Join(parent, "repo")
	gitignore := filepath.Join(directory, ".gitignore")
	testutil.WriteFile(t, gitignore, []byte("/anchored.bin\nplain.bin\n"))

	added, err := updateGitignore(gitignore, []string{
		filepath.Join(directory, "anchored.bin"),
		filepath.Join(directory, "plain.bin"),
		filepath.Join(parent, "outside.bin"),
		filepath.Join(directory, "fresh.bin"),
		filepath.Join(directory, "fresh.bin"),
	})
	if err != nil {
		t.Fatalf("updateGitignore: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	testutil.RequireFileContent(t, gitignore, []byte("/anchored.bin\nplain.bin\nfresh.bin\n"))
}

func TestUpdateGitignoreNothingToAdd(t *testing.T) {
	directory := t.TempDir()
	gitignore := filepath.Join(directory, ".gitignore")
	testutil.WriteFile(t, gitignore, []byte("a.bin"))

	added, err := updateGitignore(gitignore, []string{filepath.Join(directory, "a.bin")})
	if err != nil {
		t.Fatalf("updateGitignore: %v", err)
	}
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	// Untouched, including the missing trailing newline.
	testutil.RequireFileContent(t, gitignore, []byte("a.bin"))
}
