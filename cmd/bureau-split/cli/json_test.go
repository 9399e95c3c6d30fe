// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{}

	done, err := output.EmitJSON(&buffer, map[string]int{"entries": 2})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json = (%v, %v), wrote %q", done, err, buffer.String())
	}

	output.OutputJSON = true
	done, err = output.EmitJSON(&buffer, map[string]int{"entries": 2})
	if !done || err != nil {
		t.Fatalf("EmitJSON with --json = (%v, %v)", done, err)
	}
	if buffer.String() != "{\n  \"entries\": 2\n}\n" {
		t.Errorf("output = %q", buffer.String())
	}
}

func TestEmitJSON_NilSliceIsEmptyArray(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{OutputJSON: true}

	var entries []string
	if _, err := output.EmitJSON(&buffer, entries); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("output = %q, want []", buffer.String())
	}
}

func TestNewLoggerFormats(t *testing.T) {
	var jsonBuffer bytes.Buffer
	newLogger(&jsonBuffer, false, false).Info("split file", "path", "a.bin")
	var record map[string]any
	if err := json.Unmarshal(jsonBuffer.Bytes(), &record); err != nil {
		t.Fatalf("non-terminal output is not JSON: %v (%q)", err, jsonBuffer.String())
	}
	if record["msg"] != "split file" || record["path"] != "a.bin" {
		t.Errorf("record = %v", record)
	}

	var textBuffer bytes.Buffer
	logger := newLogger(&textBuffer, true, false)
	logger.Debug("hidden")
	logger.Info("shown", "path", "a.bin")
	if strings.Contains(textBuffer.String(), "hidden") {
		t.Error("debug record emitted without verbose")
	}
	if !strings.Contains(textBuffer.String(), "path=a.bin") {
		t.Errorf("text output = %q", textBuffer.String())
	}

	var verboseBuffer bytes.Buffer
	verbose := newLogger(&verboseBuffer, true, true)
	verbose.Debug("detail")
	if !strings.Contains(verboseBuffer.String(), "detail") {
		t.Error("debug record suppressed with verbose")
	}
	if !verbose.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("verbose logger not enabled at debug")
	}
}
