// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// chunkInfix separates the original path from the chunk index.
const chunkInfix = "_split_"

// TempSuffix marks a chunk or reconstructed file that is still being
// written. Such files are never trusted; the next attempt truncates
// and rewrites them.
const TempSuffix = ".splitpart"

// minIndexWidth is the minimum number of digits in a chunk index.
const minIndexWidth = 2

var chunkPattern = regexp.MustCompile(`^(.+)` + chunkInfix + `(\d{2,})$`)

// ChunkPath returns the path of chunk index (0-based) of an original
// split into count chunks: "<original>_split_<NN>". The index is
// zero-padded to two digits, or more when count needs them, so the
// chunks of one original sort lexically in concatenation order.
func ChunkPath(original string, index, count int) string {
	return fmt.Sprintf("%s%s%0*d", original, chunkInfix, indexWidth(count), index)
}

// ChunkPaths returns the paths of all count chunks of original, in
// index order.
func ChunkPaths(original string, count int) []string {
	paths := make([]string, count)
	for index := range count {
		paths[index] = ChunkPath(original, index, count)
	}
	return paths
}

// ParseChunkPath splits a chunk path back into its original path and
// index. ok is false when path does not follow the chunk naming
// convention.
func ParseChunkPath(path string) (original string, index int, ok bool) {
	match := chunkPattern.FindStringSubmatch(path)
	if match == nil {
		return "", 0, false
	}
	index, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}
	return match[1], index, true
}

// IsChunkPath reports whether path follows the chunk naming convention.
func IsChunkPath(path string) bool {
	_, _, ok := ParseChunkPath(path)
	return ok
}

// IsTempPath reports whether path is an in-progress write.
func IsTempPath(path string) bool {
	return strings.HasSuffix(path, TempSuffix)
}

func tempPath(path string) string {
	return path + TempSuffix
}

func indexWidth(count int) int {
	if count <= 1 {
		return minIndexWidth
	}
	return max(minIndexWidth, len(strconv.Itoa(count-1)))
}
