// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration used for
// bureau-split's internal on-disk state.
//
// The split manifest itself is JSON: it is an external interface,
// committed alongside the chunk files and read by other tooling. CBOR
// is reserved for state that only this tool reads back, such as the
// advisory lock record written next to the manifest.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items. Timestamps are encoded as RFC 3339 strings with nanosecond
// precision so that they survive a round trip exactly.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types that are only ever CBOR carry `cbor` struct tags. Types that
// are also emitted as JSON carry `json` tags, which fxamacker/cbor
// reads as a fallback. Never put both on the same field.
package codec
