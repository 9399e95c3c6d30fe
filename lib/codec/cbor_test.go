// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
	"time"
)

type sampleRecord struct {
	Operation  string    `cbor:"operation"`
	PID        int       `cbor:"pid"`
	Host       string    `cbor:"host,omitempty"`
	AcquiredAt time.Time `cbor:"acquired_at"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRecord{
		Operation:  "build",
		PID:        4242,
		Host:       "workstation",
		AcquiredAt: time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC),
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Operation != original.Operation || decoded.PID != original.PID || decoded.Host != original.Host {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
	if !decoded.AcquiredAt.Equal(original.AcquiredAt) {
		t.Errorf("AcquiredAt = %v, want %v (nanoseconds must survive)", decoded.AcquiredAt, original.AcquiredAt)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	record := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}

	first, err := Marshal(record)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(record)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	type newer struct {
		Operation string `cbor:"operation"`
		Extra     string `cbor:"extra"`
	}
	data, err := Marshal(newer{Operation: "merge", Extra: "from the future"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal with unknown field: %v", err)
	}
	if decoded.Operation != "merge" {
		t.Errorf("Operation = %q, want merge", decoded.Operation)
	}
}
