package main

import (
	"fmt"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// RecordFilter drops records whose filename matches a gitignore-style file.
type RecordFilter struct {
	matcher gitignore.IgnoreMatcher
}

// LoadRecordFilter reads patterns from path. Patterns are matched against the
// collector's relative filenames.
func LoadRecordFilter(path string) (*RecordFilter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open ignore file: %v", ErrInvalidOption, err)
	}
	defer f.Close()
	return &RecordFilter{matcher: gitignore.NewGitIgnoreFromReader(".", f)}, nil
}

// Keep reports whether rec survives the filter.
func (f *RecordFilter) Keep(rec FileRecord) bool {
	if f == nil || f.matcher == nil {
		return true
	}
	return !f.matcher.Match(filepath.Clean(filepath.FromSlash(rec.Filename)), false)
}

// Apply returns the records that survive, in their original order.
func (f *RecordFilter) Apply(records []FileRecord) []FileRecord {
	if f == nil {
		return records
	}
	kept := records[:0:0]
	for _, rec := range records {
		if f.Keep(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}
