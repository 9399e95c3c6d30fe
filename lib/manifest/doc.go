// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest is the durable record of which files have been
// split, into how many chunks, and where those chunks live.
//
// The manifest is a single JSON document mapping each original path to
// an [Entry]:
//
//	{
//	  "models/weights.bin": {
//	    "split_count": 3,
//	    "split_files": ["models/weights.bin_split_00", ...],
//	    "original_size": 262144000,
//	    "checksum": "blake3:9f0c..."
//	  }
//	}
//
// Paths are stored slash-separated so a manifest committed from one
// operating system is usable on another; [Key] and [LocalPath] convert
// between the stored and native forms.
//
// A [Manifest] is a plain value. Callers [Load] it at the start of an
// operation, mutate it, and [Save] it at each checkpoint. Save writes
// a temp file in the same directory and renames it into place, so a
// reader never observes a partially written manifest. There is no
// coordination between concurrent writers beyond the optional advisory
// lock ([AcquireLock]), which writes a CBOR [LockRecord] identifying
// the holder.
//
// Load accepts JSONC (comments and trailing commas) so that a manifest
// annotated by hand still loads. Save always writes plain JSON.
package manifest
