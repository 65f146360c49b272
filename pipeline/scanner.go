package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/viant/archmap/extractor"
)

// skipDirs are directory names never worth descending into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	".venv":        true,
}

// scanner enumerates extractable source files under a root.
type scanner struct {
	factory   *extractor.Factory
	include   []glob.Glob
	exclude   []glob.Glob
	skipTests bool
}

func newScanner(factory *extractor.Factory, options *Options) (*scanner, error) {
	s := &scanner{factory: factory, skipTests: options.SkipTests}
	for _, pattern := range options.Include {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		s.include = append(s.include, matcher)
	}
	for _, pattern := range options.Exclude {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		s.exclude = append(s.exclude, matcher)
	}
	return s, nil
}

// scan returns the matching files under root, sorted for deterministic feed
// order.
func (s *scanner) scan(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var files []string
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != absRoot && (skipDirs[info.Name()] || strings.HasPrefix(info.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		relative, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		relative = filepath.ToSlash(relative)
		if !s.matches(relative, info.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (s *scanner) matches(relative, name string) bool {
	if !s.factory.Supported(name) {
		return false
	}
	if s.skipTests && isTestFile(name) {
		return false
	}
	if len(s.include) > 0 {
		matched := false
		for _, matcher := range s.include {
			if matcher.Match(relative) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, matcher := range s.exclude {
		if matcher.Match(relative) {
			return false
		}
	}
	return true
}

// isTestFile recognizes the conventional test names of the supported
// languages.
func isTestFile(name string) bool {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "_test.go"),
		strings.HasSuffix(lower, "_test.py"),
		strings.HasPrefix(lower, "test_") && strings.HasSuffix(lower, ".py"),
		strings.HasSuffix(lower, ".test.ts"), strings.HasSuffix(lower, ".test.tsx"),
		strings.HasSuffix(lower, ".test.js"), strings.HasSuffix(lower, ".test.jsx"),
		strings.HasSuffix(lower, ".spec.ts"), strings.HasSuffix(lower, ".spec.tsx"),
		strings.HasSuffix(lower, ".spec.js"), strings.HasSuffix(lower, ".spec.jsx"):
		return true
	}
	return false
}
