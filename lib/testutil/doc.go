// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for bureau-split
// packages.
//
// [PatternReader] and [WritePatternFile] generate deterministic,
// non-periodic file content of any size without holding it in memory,
// so round-trip tests can use files far larger than a chunk buffer.
// Different seeds produce different content, which lets tests detect
// chunks concatenated in the wrong order.
//
// [RequireFileContent], [RequireFileSize], [RequireExists] and
// [RequireNotExist] are filesystem assertions.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no bureau-split dependencies.
package testutil
