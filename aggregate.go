package main

import (
	"strings"
)

// CountLines returns the number of '\n'-separated lines in s. A trailing
// newline does not start a new line, and the empty string has none.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// ParentDir returns every path segment of name except the last, or "" for
// a file at the root. Both '/' and '\' are treated as separators.
func ParentDir(name string) string {
	i := strings.LastIndexAny(name, `/\`)
	switch {
	case i < 0:
		return ""
	case i == 0:
		return name[:1]
	default:
		return name[:i]
	}
}

// Aggregate computes per-file, per-directory and run totals. Each file is
// credited to its immediate parent directory only.
func Aggregate(records []FileRecord) Stats {
	stats := Stats{
		Files: make([]FileStat, 0, len(records)),
	}
	dirIndex := make(map[string]int)

	var combined strings.Builder
	for _, rec := range records {
		lines := CountLines(rec.Content)
		stats.Files = append(stats.Files, FileStat{
			Filename: rec.Filename,
			Chars:    len(rec.Content),
			Lines:    lines,
			Tokens:   EstimateTokens(rec.Content),
		})
		stats.Run.Lines += lines
		combined.WriteString(rec.Content)

		dir := ParentDir(rec.Filename)
		idx, ok := dirIndex[dir]
		if !ok {
			idx = len(stats.Dirs)
			dirIndex[dir] = idx
			stats.Dirs = append(stats.Dirs, DirStat{Path: dir})
		}
		stats.Dirs[idx].Chars += len(rec.Content)
		stats.Dirs[idx].Lines += lines
	}

	stats.Run.Files = len(records)
	// Estimated over the concatenation, not summed per file: the two differ
	// after integer division.
	stats.Run.Tokens = EstimateTokens(combined.String())
	return stats
}

// Tokens is the estimate printed for a directory, derived from its byte count.
func (d DirStat) Tokens() int {
	return d.Chars / 4
}
