// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes the content checksums recorded for split
// originals.
//
// Checksums are unkeyed 256-bit BLAKE3, so they match the output of
// b3sum and can be checked by hand. The canonical string form carries
// the algorithm name ("blake3:<64 hex chars>") so the manifest stays
// self-describing if the algorithm ever changes.
//
// All hashing is streamed: [Hasher] is an io.Writer that sits
// alongside the chunk writers during a split or merge, and [HashFile]
// copies through a fixed buffer. Memory use is constant regardless of
// file size.
package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"
)

// Algorithm is the prefix of the canonical string form.
const Algorithm = "blake3"

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// String returns the canonical "blake3:<hex>" form.
func (d Digest) String() string {
	return Algorithm + ":" + hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero value (no digest computed).
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Parse parses the canonical "blake3:<hex>" form. A bare 64-character
// hex string is also accepted and assumed to be BLAKE3.
func Parse(s string) (Digest, error) {
	var d Digest

	hexString := s
	if algorithm, rest, found := strings.Cut(s, ":"); found {
		if algorithm != Algorithm {
			return d, fmt.Errorf("unsupported checksum algorithm %q (want %s)", algorithm, Algorithm)
		}
		hexString = rest
	}

	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return d, fmt.Errorf("parsing checksum: %w", err)
	}
	if len(decoded) != len(d) {
		return d, fmt.Errorf("checksum is %d bytes, want %d", len(decoded), len(d))
	}
	copy(d[:], decoded)
	return d, nil
}

// Hasher accumulates a digest over everything written to it and
// counts the bytes. It never returns a write error.
type Hasher struct {
	hasher  *blake3.Hasher
	written int64
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{hasher: blake3.New()}
}

func (h *Hasher) Write(p []byte) (int, error) {
	n, _ := h.hasher.Write(p)
	h.written += int64(n)
	return n, nil
}

// Written returns the number of bytes hashed so far.
func (h *Hasher) Written() int64 {
	return h.written
}

// Digest returns the digest of the bytes written so far. The Hasher
// can keep accepting writes afterwards.
func (h *Hasher) Digest() Digest {
	var d Digest
	copy(d[:], h.hasher.Sum(nil))
	return d
}

// HashReader streams r to EOF and returns its digest and length.
func HashReader(r io.Reader) (Digest, int64, error) {
	hasher := NewHasher()
	if _, err := io.Copy(hasher, r); err != nil {
		return Digest{}, hasher.Written(), err
	}
	return hasher.Digest(), hasher.Written(), nil
}

// HashFile streams the file at path and returns its digest and size.
func HashFile(path string) (Digest, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, 0, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	d, n, err := HashReader(file)
	if err != nil {
		return Digest{}, n, fmt.Errorf("hashing %s: %w", path, err)
	}
	return d, n, nil
}
