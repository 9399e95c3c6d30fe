// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestionDistance is the largest edit distance still treated as
// a typo rather than a different word.
const maxSuggestionDistance = 3

// closest returns the candidate nearest to input, or "" when none is
// within maxSuggestionDistance. Ties go to the earlier candidate.
func closest(input string, candidates []string) (string, int) {
	best, bestDistance := "", maxSuggestionDistance+1
	for _, candidate := range candidates {
		if distance := levenshtein(input, candidate); distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best, bestDistance
}

// suggestCommand returns the subcommand the user most likely meant by
// unknown. Aliases are matched too, but the canonical name is returned.
func suggestCommand(unknown string, commands []*Command) string {
	suggestion, bestDistance := "", maxSuggestionDistance+1
	for _, command := range commands {
		names := append([]string{command.Name}, command.Aliases...)
		if _, distance := closest(unknown, names); distance < bestDistance {
			suggestion, bestDistance = command.Name, distance
		}
	}
	return suggestion
}

// suggestFlag finds the first flag in args that flagSet does not define
// and returns the nearest defined flag, with its dash prefix.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var defined []string
	flagSet.VisitAll(func(flag *pflag.Flag) {
		defined = append(defined, flag.Name)
	})

	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if flagSet.Lookup(name) != nil {
			continue
		}

		suggestion, _ := closest(name, defined)
		switch {
		case suggestion == "":
			return ""
		case len(suggestion) == 1:
			return "-" + suggestion
		default:
			return "--" + suggestion
		}
	}
	return ""
}

// levenshtein is the edit distance between a and b counting single-byte
// insertions, deletions, and substitutions.
func levenshtein(a, b string) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	// row[i] holds the distance between the current prefix of a and b[:i].
	row := make([]int, len(b)+1)
	for i := range row {
		row[i] = i
	}
	for _, ca := range []byte(a) {
		diagonal := row[0]
		row[0]++
		for i, cb := range []byte(b) {
			substitution := diagonal
			if ca != cb {
				substitution++
			}
			diagonal = row[i+1]
			row[i+1] = min(row[i+1]+1, row[i]+1, substitution)
		}
	}
	return row[len(b)]
}
