package generator

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// Matcher selects files below a root by root-relative glob.
type Matcher struct {
	Include []string
	Exclude []string
}

// Validate checks every pattern.
func (m Matcher) Validate() error {
	for _, pattern := range m.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Newf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range m.Include {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Newf("invalid include pattern: %s", pattern)
		}
	}
	return nil
}

// Match reports whether the slash-separated relative path is selected.
func (m Matcher) Match(rel string) bool {
	if m.excluded(rel) {
		return false
	}
	if len(m.Include) == 0 {
		return true
	}
	for _, pattern := range m.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (m Matcher) excluded(rel string) bool {
	for _, pattern := range m.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// DiscoverFiles walks root and returns the files m selects, joined onto root
// and sorted so every run visits them in the same order.
func DiscoverFiles(root string, m Matcher) ([]string, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "component root %s", root),
			"pass an existing directory with --dir")
	}
	if !info.IsDir() {
		return nil, errors.Newf("component root %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDir(d.Name()) || m.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.Match(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}

	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	switch name {
	case "node_modules", ".git":
		return true
	}
	return false
}
