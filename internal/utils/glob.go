package utils

import (
	"io/fs"
	"path/filepath"

	ds "github.com/bmatcuk/doublestar/v4"
)

// skippedDirs are never descended into while globbing; they hold build output and
// installed packages, not source manifests.
var skippedDirs = map[string]struct{}{
	"node_modules": {},
	".serverless":  {},
	".git":         {},
}

// GlobRecursive walks base and matches files against a doublestar pattern (supports ** and {a,b}).
func GlobRecursive(base, pattern string) ([]string, error) {
	if !ds.ValidatePattern(pattern) {
		return nil, ds.ErrBadPattern
	}
	matches := []string{}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skippedDirs[d.Name()]; skip && path != base {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(base, path)
		ok, err := ds.PathMatch(pattern, rel)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}
