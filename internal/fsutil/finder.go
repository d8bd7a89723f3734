// Package fsutil provides file system discovery helpers for raw
// acquisition trees.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FindAcquisitions recursively searches rootPath for per-frame stack files
// named <prefix>*_<suffix>.<extension>. Results come back sorted so that
// repeated discovery over the same tree is deterministic.
func FindAcquisitions(rootPath, prefix, suffix, extension string) ([]string, error) {
	if suffix == "" || extension == "" {
		panic("suffix and extension must not be empty")
	}
	tail := "_" + suffix + "." + extension

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, tail) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// FindFirstMatch searches rootPath for the first file whose base name
// matches the glob pattern. Used to locate one-per-dataset inputs like the
// raw gain reference and defect map.
func FindFirstMatch(rootPath, pattern string) (string, error) {
	var matches []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(pattern, d.Name())
		if matchErr != nil {
			return matchErr
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[0], nil
}
