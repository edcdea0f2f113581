package core

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreFilter decides whether a path should be skipped during scanning,
// per spec.md §4.2 rules (i)-(iv).
type IgnoreFilter struct {
	extensions      []string
	filenamesPrefix []string
	filenamesExact  map[string]struct{}
	directories     map[string]struct{}
	patterns        []string
}

// NewIgnoreFilter builds a filter from the configuration lists. Directory
// names are matched case-insensitively (lowercased here); extensions,
// prefixes, and exact names are matched case-sensitively against the
// basename, per spec.md §4.2.
func NewIgnoreFilter(extensions, filenamesPrefix, filenamesExact, directories, patterns []string) *IgnoreFilter {
	exact := make(map[string]struct{}, len(filenamesExact))
	for _, name := range filenamesExact {
		exact[name] = struct{}{}
	}
	dirs := make(map[string]struct{}, len(directories))
	for _, name := range directories {
		dirs[strings.ToLower(name)] = struct{}{}
	}
	return &IgnoreFilter{
		extensions:      extensions,
		filenamesPrefix: filenamesPrefix,
		filenamesExact:  exact,
		directories:     dirs,
		patterns:        patterns,
	}
}

// IgnoreDirectory reports whether a directory basename matches the
// case-insensitive ignore-directories set (spec.md §4.2 rule (i)).
func (f *IgnoreFilter) IgnoreDirectory(basename string) bool {
	if f == nil {
		return false
	}
	_, ignored := f.directories[strings.ToLower(basename)]
	return ignored
}

// IgnoreFile reports whether relativePath (forward-slash, relative to the
// scan root) should be skipped: its basename matches a configured
// extension, prefix, or exact name (rules ii-iv, case-sensitive), or it
// matches a supplemental glob pattern (SPEC_FULL.md §C).
func (f *IgnoreFilter) IgnoreFile(relativePath string) bool {
	if f == nil {
		return false
	}
	basename := path.Base(relativePath)

	if _, ignored := f.filenamesExact[basename]; ignored {
		return true
	}
	for _, prefix := range f.filenamesPrefix {
		if strings.HasPrefix(basename, prefix) {
			return true
		}
	}
	for _, ext := range f.extensions {
		if strings.HasSuffix(basename, ext) {
			return true
		}
	}
	for _, pattern := range f.patterns {
		if matched, _ := doublestar.Match(pattern, relativePath); matched {
			return true
		}
	}
	return false
}
