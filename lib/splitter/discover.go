// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bureau-foundation/bureau-split/lib/manifest"
)

// candidate is a regular file larger than the size limit.
type candidate struct {
	// path is the native path used for I/O.
	path string
	// key is the manifest form of path.
	key  string
	size int64
}

// scan describes one discovery walk.
type scan struct {
	root      string
	sizeLimit int64
	exclude   []string
	// ignore holds absolute paths that are never candidates: the
	// manifest and its lock file.
	ignore map[string]struct{}
	logger *slog.Logger
}

// discover walks root and returns the files larger than sizeLimit in
// lexical path order. Hidden directories below root, chunk files,
// in-progress temp files, excluded paths and anything that is not a
// regular file are skipped. Entries that cannot be read are returned
// as failed outcomes; only an unreadable root is an error.
func (s *scan) discover() ([]candidate, []Outcome, error) {
	var candidates []candidate
	var failures []Outcome

	err := filepath.WalkDir(s.root, func(current string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if current == s.root {
				return walkErr
			}
			failures = append(failures, Outcome{
				Path: manifest.Key(current),
				Err:  &IOError{Op: "reading", Path: current, Err: walkErr},
			})
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := entry.Name()
		relative := s.relative(current)

		if entry.IsDir() {
			if current == s.root {
				return nil
			}
			if strings.HasPrefix(name, ".") || s.excluded(relative, name) {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}
		if IsChunkPath(name) || IsTempPath(name) {
			s.logger.Debug("skipping file named like a chunk", "path", manifest.Key(current))
			return nil
		}
		if s.excluded(relative, name) || s.ignored(current) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			failures = append(failures, Outcome{
				Path: manifest.Key(current),
				Err:  &IOError{Op: "inspecting", Path: current, Err: err},
			})
			return nil
		}
		if info.Size() <= s.sizeLimit {
			return nil
		}
		candidates = append(candidates, candidate{
			path: current,
			key:  manifest.Key(current),
			size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, nil, &IOError{Op: "walking", Path: s.root, Err: err}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].key < candidates[j].key })
	return candidates, failures, nil
}

// relative returns current relative to the walk root in slash form,
// the form exclude patterns are written against.
func (s *scan) relative(current string) string {
	relative, err := filepath.Rel(s.root, current)
	if err != nil {
		return filepath.ToSlash(current)
	}
	return filepath.ToSlash(relative)
}

// excluded reports whether a pattern matches either the path relative
// to root or the bare name.
func (s *scan) excluded(relative, name string) bool {
	for _, pattern := range s.exclude {
		if matched, _ := path.Match(pattern, relative); matched {
			return true
		}
		if matched, _ := path.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func (s *scan) ignored(current string) bool {
	if len(s.ignore) == 0 {
		return false
	}
	absolute, err := filepath.Abs(current)
	if err != nil {
		return false
	}
	_, ok := s.ignore[absolute]
	return ok
}

// ignoreSet builds the absolute-path set for scan.ignore.
func ignoreSet(paths ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if absolute, err := filepath.Abs(p); err == nil {
			set[absolute] = struct{}{}
		}
	}
	return set
}
