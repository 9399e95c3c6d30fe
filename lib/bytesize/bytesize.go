// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bytesize parses and formats the human-readable byte sizes
// accepted for --size-limit and the size_limit config key.
//
// Single-letter suffixes follow split(1) and are 1024-based: "100M"
// is 100 MiB, "2G" is 2 GiB. Explicit IEC suffixes ("64MiB") mean the
// same thing. Two-letter SI suffixes ("100MB") are 1000-based. A bare
// number is a byte count. Suffixes are case-insensitive and may be
// separated from the number by whitespace; fractional values ("1.5G")
// are allowed and rounded down to a whole byte.
//
// [Size] implements pflag.Value, yaml.Unmarshaler and
// encoding.TextMarshaler so the same type works on the command line,
// in the config file and in --json output.
package bytesize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Binary unit multiples.
const (
	KiB Size = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
	PiB
)

// Size is a byte count.
type Size int64

// Parse converts a human-readable size to bytes.
func Parse(text string) (Size, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("empty size")
	}

	parsed, err := humanize.ParseBytes(binarySingleLetter(trimmed))
	if err != nil {
		return 0, fmt.Errorf("parsing size %q: %w", text, err)
	}
	if parsed > math.MaxInt64 {
		return 0, fmt.Errorf("size %q overflows int64", text)
	}
	return Size(parsed), nil
}

// binarySingleLetter rewrites a trailing single-letter unit ("100M",
// "4 k") to its IEC form ("100Mi") so humanize applies a 1024 base.
// humanize alone treats a bare "M" as SI.
func binarySingleLetter(text string) string {
	last := text[len(text)-1]
	switch last {
	case 'k', 'K', 'm', 'M', 'g', 'G', 't', 'T', 'p', 'P', 'e', 'E':
	default:
		return text
	}
	if len(text) < 2 {
		return text
	}
	previous := text[len(text)-2]
	if previous == '.' || previous == ' ' || (previous >= '0' && previous <= '9') {
		return text + "i"
	}
	return text
}

// Bytes returns the size as an int64 byte count.
func (s Size) Bytes() int64 {
	return int64(s)
}

// String returns a form that Parse maps back to exactly s: the largest
// whole binary unit ("100M", "3G") when s is an exact multiple, the
// plain byte count otherwise.
func (s Size) String() string {
	units := []struct {
		size   Size
		letter string
	}{
		{PiB, "P"}, {TiB, "T"}, {GiB, "G"}, {MiB, "M"}, {KiB, "K"},
	}
	for _, unit := range units {
		if s != 0 && s%unit.size == 0 {
			return strconv.FormatInt(int64(s/unit.size), 10) + unit.letter
		}
	}
	return strconv.FormatInt(int64(s), 10)
}

// Humanize returns a rounded display form such as "1.5 GiB". Not
// guaranteed to parse back to the same value; use String for that.
func (s Size) Humanize() string {
	if s < 0 {
		return "-" + humanize.IBytes(uint64(-s))
	}
	return humanize.IBytes(uint64(s))
}

// Set implements pflag.Value.
func (s *Size) Set(text string) error {
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Size) Type() string {
	return "size"
}

// UnmarshalYAML accepts either a quoted string ("100M") or a plain
// integer byte count.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: size must be a scalar, got %s", node.Line, kindName(node.Kind))
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = parsed
	return nil
}

// MarshalYAML writes the exact String form.
func (s Size) MarshalYAML() (any, error) {
	return s.String(), nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	return s.Set(string(text))
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}
