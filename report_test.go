package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultReportOptions() ReportOptions {
	return ReportOptions{TopFileCount: 9, TopDirCount: 6, WarnLines: 300}
}

func TestSummaryLine_GroupsThousands(t *testing.T) {
	t.Parallel()

	line := SummaryLine(RunStats{Files: 1234, Lines: 1234567, Tokens: 999})

	assert.Equal(t, "~999 tokens / 1,234 files / 1,234,567 lines", line)
}

func TestTopFiles_TiesKeepOneOfEqualSize(t *testing.T) {
	t.Parallel()

	files := []FileStat{
		{Filename: "small", Chars: 10},
		{Filename: "mid1", Chars: 50},
		{Filename: "big", Chars: 100},
		{Filename: "mid2", Chars: 50},
	}

	top := TopFiles(files, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "big", top[0].Filename)
	assert.Equal(t, 50, top[1].Chars)
	assert.Contains(t, []string{"mid1", "mid2"}, top[1].Filename)
	// Input is left untouched.
	assert.Equal(t, "small", files[0].Filename)
}

func TestTopFiles_FewerThanRequested(t *testing.T) {
	t.Parallel()

	top := TopFiles([]FileStat{{Filename: "a", Chars: 1}}, 9)

	assert.Len(t, top, 1)
	assert.Empty(t, TopFiles([]FileStat{{Filename: "a", Chars: 1}}, 0))
}

func TestTopDirs_SortedBySize(t *testing.T) {
	t.Parallel()

	dirs := []DirStat{
		{Path: "", Chars: 5},
		{Path: "src", Chars: 500},
		{Path: "docs", Chars: 50},
	}

	top := TopDirs(dirs, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "src", top[0].Path)
	assert.Equal(t, "docs", top[1].Path)
}

func TestReporter_Print(t *testing.T) {
	t.Parallel()

	records := []FileRecord{
		{Filename: "main.go", Content: strings.Repeat("x", 4000) + "\n"},
		{Filename: "pkg/util.go", Content: "package pkg\n"},
		{Filename: "pkg/empty.go", Content: ""},
		{Filename: "empty/none.txt", Content: ""},
	}
	var out bytes.Buffer
	r := NewReporter(&out, defaultReportOptions())
	r.Warn.DisableColor()

	r.Print(Aggregate(records))

	want := `~1,003 tokens / 4 files / 2 lines

Largest directories
- . (~1,000 tokens, 1 lines, 4,001 chars)
- pkg (~3 tokens, 1 lines, 12 chars)
- empty (empty)

Largest files
- main.go (~1,000 tokens, 1 lines, 4,001 chars)
- pkg/util.go (~3 tokens, 1 lines, 12 chars)
- pkg/empty.go (empty)
- empty/none.txt (empty)
`
	assert.Equal(t, want, out.String())
}

func TestReporter_RespectsTopCounts(t *testing.T) {
	t.Parallel()

	records := []FileRecord{
		{Filename: "a/1", Content: "1111"},
		{Filename: "b/2", Content: "22"},
		{Filename: "c/3", Content: "333"},
	}
	var out bytes.Buffer
	r := NewReporter(&out, ReportOptions{TopFileCount: 1, TopDirCount: 2, WarnLines: 300})

	r.Print(Aggregate(records))

	text := out.String()
	assert.Contains(t, text, "- a (")
	assert.Contains(t, text, "- c (")
	assert.NotContains(t, text, "- b (")
	assert.Contains(t, text, "- a/1 (")
	assert.NotContains(t, text, "- c/3 (")
}

func TestReporter_HighlightsAtThreshold(t *testing.T) {
	t.Parallel()

	records := []FileRecord{
		{Filename: "at.txt", Content: strings.Repeat("line\n", 5)},
		{Filename: "below.txt", Content: strings.Repeat("l\n", 4)},
	}
	var out bytes.Buffer
	r := NewReporter(&out, ReportOptions{TopFileCount: 9, TopDirCount: 6, WarnLines: 5})
	r.Warn.EnableColor()

	r.PrintFiles(Aggregate(records).Files)

	text := out.String()
	assert.Contains(t, text, "\x1b[93m- at.txt (~6 tokens, 5 lines, 25 chars)\x1b[0m\n")
	assert.Contains(t, text, "\n- below.txt (~2 tokens, 4 lines, 8 chars)\n")
}

func TestReportOptions_IsLarge(t *testing.T) {
	t.Parallel()

	opts := ReportOptions{WarnLines: 300}

	assert.True(t, opts.IsLarge(FileStat{Lines: 300}))
	assert.True(t, opts.IsLarge(FileStat{Lines: 301}))
	assert.False(t, opts.IsLarge(FileStat{Lines: 299}))
}

func TestReporter_Languages(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewReporter(&out, ReportOptions{TopLangCount: 1})

	r.PrintLanguages([]LanguageStat{
		{Language: "Markdown", Files: 1, Lines: 2, Chars: 20},
		{Language: "Go", Files: 2, Lines: 1200, Chars: 12000},
	})

	assert.Equal(t, "\nLargest languages\n- Go (2 files, 1,200 lines, 12,000 chars)\n", out.String())
}

func TestReporter_LanguagesHiddenByDefault(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	NewReporter(&out, defaultReportOptions()).PrintLanguages([]LanguageStat{{Language: "Go", Files: 1}})

	assert.Empty(t, out.String())
}

func TestNewReporter_WarnStyle(t *testing.T) {
	t.Parallel()

	r := NewReporter(&bytes.Buffer{}, defaultReportOptions())

	assert.True(t, r.Warn.Equals(color.New(color.FgHiYellow)))
}
