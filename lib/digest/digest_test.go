// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// BLAKE3 of the empty input, from the reference test vectors.
const emptyBLAKE3 = "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"

func TestEmptyInputMatchesReferenceVector(t *testing.T) {
	d, n, err := HashReader(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("HashReader: %v", err)
	}
	if n != 0 {
		t.Errorf("length = %d, want 0", n)
	}
	if got, want := d.String(), "blake3:"+emptyBLAKE3; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestHasherMatchesOneShot(t *testing.T) {
	content := bytes.Repeat([]byte("split me into pieces "), 10000)

	oneShot, _, err := HashReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("HashReader: %v", err)
	}

	// Feed the same bytes in uneven slices, the way a chunked writer would.
	hasher := NewHasher()
	for offset := 0; offset < len(content); {
		end := min(offset+777, len(content))
		hasher.Write(content[offset:end])
		offset = end
	}

	if hasher.Written() != int64(len(content)) {
		t.Errorf("Written() = %d, want %d", hasher.Written(), len(content))
	}
	if hasher.Digest() != oneShot {
		t.Errorf("incremental digest %s != one-shot digest %s", hasher.Digest(), oneShot)
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.bin")
	content := []byte("the quick brown fox")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fromFile, size, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}

	fromReader, _, _ := HashReader(bytes.NewReader(content))
	if fromFile != fromReader {
		t.Errorf("HashFile = %s, HashReader = %s", fromFile, fromReader)
	}
}

func TestHashFileMissing(t *testing.T) {
	_, _, err := HashFile(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap a not-exist error", err)
	}
}

func TestParseRoundtrip(t *testing.T) {
	d, _, _ := HashReader(strings.NewReader("roundtrip"))

	parsed, err := Parse(d.String())
	if err != nil {
		t.Fatalf("Parse(%q): %v", d.String(), err)
	}
	if parsed != d {
		t.Errorf("Parse roundtrip = %s, want %s", parsed, d)
	}

	bare, err := Parse(strings.TrimPrefix(d.String(), "blake3:"))
	if err != nil {
		t.Fatalf("Parse bare hex: %v", err)
	}
	if bare != d {
		t.Errorf("bare hex parse = %s, want %s", bare, d)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong algorithm", "sha256:" + emptyBLAKE3},
		{"not hex", "blake3:zz"},
		{"short", "blake3:abcd"},
		{"empty", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Parse(test.input); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", test.input)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	var zero Digest
	if !zero.IsZero() {
		t.Error("zero digest reports IsZero() = false")
	}
	d, _, _ := HashReader(strings.NewReader("x"))
	if d.IsZero() {
		t.Error("real digest reports IsZero() = true")
	}
}
