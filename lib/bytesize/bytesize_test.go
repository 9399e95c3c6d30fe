// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bytesize

import (
	"encoding/json"
	"testing"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Size
	}{
		{"0", 0},
		{"2048", 2048},
		{"512K", 512 * KiB},
		{"512k", 512 * KiB},
		{"100M", 100 * MiB},
		{"100 M", 100 * MiB},
		{"2G", 2 * GiB},
		{"1.5G", GiB + GiB/2},
		{"1T", TiB},
		{"64MiB", 64 * MiB},
		{"64mib", 64 * MiB},
		{"100MB", 100 * 1000 * 1000},
		{"1kB", 1000},
		{"  7  ", 7},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := Parse(test.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", test.input, err)
			}
			if got != test.want {
				t.Errorf("Parse(%q) = %d, want %d", test.input, got, test.want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, input := range []string{"", "   ", "M", "-5M", "12Q", "ten"} {
		t.Run(input, func(t *testing.T) {
			if got, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) = %d, want error", input, got)
			}
		})
	}
}

func TestStringRoundtrip(t *testing.T) {
	for _, size := range []Size{0, 1, 1000, KiB, 3 * KiB, 100 * MiB, 250 * MiB, 5 * GiB, 1536, 123456789} {
		text := size.String()
		parsed, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) for %d: %v", text, size, err)
		}
		if parsed != size {
			t.Errorf("Parse(String(%d)) = %d via %q", size, parsed, text)
		}
	}

	if got := (100 * MiB).String(); got != "100M" {
		t.Errorf("String(100MiB) = %q, want 100M", got)
	}
	if got := Size(1500).String(); got != "1500" {
		t.Errorf("String(1500) = %q, want 1500", got)
	}
}

func TestHumanize(t *testing.T) {
	if got := (250 * MiB).Humanize(); got != "250 MiB" {
		t.Errorf("Humanize(250MiB) = %q", got)
	}
	if got := Size(-2048).Humanize(); got != "-2.0 KiB" {
		t.Errorf("Humanize(-2048) = %q", got)
	}
}

func TestPflagValue(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	limit := 100 * MiB
	flagSet.Var(&limit, "size-limit", "maximum chunk size")

	if err := flagSet.Parse([]string{"--size-limit", "25M"}); err != nil {
		t.Fatalf("Parse flags: %v", err)
	}
	if limit != 25*MiB {
		t.Errorf("limit = %d, want %d", limit, 25*MiB)
	}

	if err := flagSet.Parse([]string{"--size-limit", "lots"}); err == nil {
		t.Error("expected error for unparseable size flag")
	}
}

func TestYAML(t *testing.T) {
	var config struct {
		Limit  Size `yaml:"limit"`
		Buffer Size `yaml:"buffer"`
	}
	input := "limit: 100M\nbuffer: 65536\n"
	if err := yaml.Unmarshal([]byte(input), &config); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if config.Limit != 100*MiB {
		t.Errorf("limit = %d, want %d", config.Limit, 100*MiB)
	}
	if config.Buffer != 64*KiB {
		t.Errorf("buffer = %d, want %d", config.Buffer, 64*KiB)
	}

	output, err := yaml.Marshal(config)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	if got, want := string(output), "limit: 100M\nbuffer: 64K\n"; got != want {
		t.Errorf("yaml.Marshal = %q, want %q", got, want)
	}

	if err := yaml.Unmarshal([]byte("limit: [1, 2]\n"), &config); err == nil {
		t.Error("expected error for sequence value")
	}
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Limit Size `json:"limit"`
	}{Limit: 2 * GiB})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if got, want := string(data), `{"limit":"2G"}`; got != want {
		t.Errorf("json.Marshal = %s, want %s", got, want)
	}

	var decoded struct {
		Limit Size `json:"limit"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if decoded.Limit != 2*GiB {
		t.Errorf("decoded limit = %d", decoded.Limit)
	}
}
