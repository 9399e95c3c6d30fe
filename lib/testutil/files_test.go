// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
)

func TestPatternReaderIsDeterministic(t *testing.T) {
	first := PatternBytes(4096, 7)
	second := PatternBytes(4096, 7)
	if !bytes.Equal(first, second) {
		t.Fatal("same seed produced different content")
	}
	if bytes.Equal(first, PatternBytes(4096, 8)) {
		t.Fatal("different seeds produced identical content")
	}
}

func TestPatternReaderLength(t *testing.T) {
	n, err := io.Copy(io.Discard, PatternReader(123457, 1))
	if err != nil {
		t.Fatal(err)
	}
	if n != 123457 {
		t.Errorf("read %d bytes, want 123457", n)
	}
}

func TestPatternHasNoShortPeriod(t *testing.T) {
	content := PatternBytes(64*1024, 3)
	half := len(content) / 2
	if bytes.Equal(content[:1024], content[half:half+1024]) {
		t.Error("pattern repeats within 32 KiB")
	}
}

func TestWritePatternFileMatchesBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.bin")
	WritePatternFile(t, path, 10000, 42)

	RequireExists(t, path)
	RequireFileSize(t, path, 10000)
	RequireFileContent(t, path, PatternBytes(10000, 42))
	RequireNotExist(t, path+".missing")
}
