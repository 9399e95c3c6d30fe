// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package splitter splits files that exceed a size limit into
// fixed-size chunks and reconstructs them later, keeping a manifest of
// what was split.
//
// Chunks are named "<original>_split_<NN>" beside the original. Every
// chunk and every reconstructed original is written to a ".splitpart"
// temp file, synced and renamed into place, so an interrupted run
// leaves either complete files or temp files that the next run
// overwrites. The manifest (see package manifest) is saved after each
// original is processed and before any original is deleted, so a
// crash never loses the only copy of a file's content.
//
// [Engine.Build] splits, [Engine.Merge] reconstructs, [Engine.Clean]
// discards chunks, [Engine.Verify] checks chunks against the manifest
// and [Engine.Status] summarizes it. Operations process one original
// at a time and report per-original outcomes in a [Report]; a failure
// on one original does not stop the others. Streaming is done through
// a single fixed-size buffer, so memory use does not grow with file
// size.
package splitter
