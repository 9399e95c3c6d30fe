// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestReportAccounting(t *testing.T) {
	report := &Report{Operation: "merge"}
	report.add(Outcome{Path: "a", Status: StatusMerged})
	report.add(Outcome{Path: "b", Err: &MissingChunkError{Original: "b", Missing: []string{"b_split_01"}, Total: 2}})
	report.add(Outcome{Path: "c", Status: StatusMerged})
	report.add(Outcome{Path: "d", Status: StatusSplit, Err: &IntegrityError{Original: "d", Reason: "bad"}})

	if report.Count(StatusMerged) != 2 {
		t.Errorf("Count(merged) = %d", report.Count(StatusMerged))
	}
	failed := report.Failed()
	if len(failed) != 2 || failed[0].Path != "b" || failed[1].Path != "d" {
		t.Fatalf("Failed() = %+v", failed)
	}
	if failed[1].Status != StatusFailed {
		t.Errorf("an outcome with an error kept status %s", failed[1].Status)
	}

	err := report.Err()
	if !errors.Is(err, ErrMissingChunk) || !errors.Is(err, ErrIntegrity) {
		t.Errorf("Err() = %v, want both failures joined", err)
	}
	if (&Report{}).Err() != nil {
		t.Error("empty report has an error")
	}
}

func TestReportJSONCarriesErrorText(t *testing.T) {
	report := &Report{Operation: "build", RunID: "r1"}
	report.add(Outcome{Path: "x", Err: &IOError{Op: "opening original", Path: "x", Err: errors.New("permission denied")}})

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, `"status":"failed"`) || !strings.Contains(text, `"error":"opening original x: permission denied"`) {
		t.Errorf("JSON = %s", text)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			&IOError{Op: "writing chunk", Path: "a_split_00", Err: errors.New("disk full")},
			"writing chunk a_split_00: disk full",
		},
		{
			&MissingChunkError{Original: "a", Missing: []string{"a_split_01", "a_split_02"}, Total: 3},
			"a: 2 of 3 chunks missing: a_split_01, a_split_02",
		},
		{
			sizeMismatch("a", "size differs", 10, 9),
			"a: size differs (expected 10 bytes, got 9 bytes)",
		},
		{
			&IntegrityError{Original: "a", Reason: "entry has no chunks"},
			"a: entry has no chunks",
		},
	}
	for _, test := range tests {
		if got := test.err.Error(); got != test.want {
			t.Errorf("Error() = %q, want %q", got, test.want)
		}
	}

	wrapped := &IOError{Op: "reading", Path: "p", Err: errors.ErrUnsupported}
	if !errors.Is(wrapped, ErrIO) || !errors.Is(wrapped, errors.ErrUnsupported) {
		t.Error("IOError does not match both its sentinel and its cause")
	}
}
