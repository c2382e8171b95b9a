package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// ReportOptions controls the console report.
type ReportOptions struct {
	TopFileCount int
	TopDirCount  int
	WarnLines    int // Files with at least this many lines are highlighted
	TopLangCount int
}

// Reporter renders Stats as human-readable text.
type Reporter struct {
	Out  io.Writer
	Opts ReportOptions
	Warn *color.Color
}

// NewReporter returns a Reporter that highlights large files in bright yellow.
func NewReporter(out io.Writer, opts ReportOptions) *Reporter {
	return &Reporter{
		Out:  out,
		Opts: opts,
		Warn: color.New(color.FgHiYellow),
	}
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

// dirLabel renders the root directory as ".".
func dirLabel(path string) string {
	if path == "" {
		return "."
	}
	return path
}

// TopDirs returns up to n directories ordered by size, largest first.
// Equal sizes keep first-seen order.
func TopDirs(dirs []DirStat, n int) []DirStat {
	sorted := append([]DirStat(nil), dirs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Chars > sorted[j].Chars
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TopFiles returns up to n files ordered by content length, largest first.
// Equal sizes keep collector order.
func TopFiles(files []FileStat, n int) []FileStat {
	sorted := append([]FileStat(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Chars > sorted[j].Chars
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// IsLarge reports whether a file should be rendered in the warning style.
func (o ReportOptions) IsLarge(f FileStat) bool {
	return f.Lines >= o.WarnLines
}

// SummaryLine is the first line of the report.
func SummaryLine(run RunStats) string {
	return fmt.Sprintf("~%s tokens / %s files / %s lines",
		comma(run.Tokens), comma(run.Files), comma(run.Lines))
}

func dirLine(d DirStat) string {
	if d.Chars == 0 {
		return fmt.Sprintf("- %s (empty)", dirLabel(d.Path))
	}
	return fmt.Sprintf("- %s (~%s tokens, %s lines, %s chars)",
		dirLabel(d.Path), comma(d.Tokens()), comma(d.Lines), comma(d.Chars))
}

func fileLine(f FileStat) string {
	if f.Chars == 0 {
		return fmt.Sprintf("- %s (empty)", f.Filename)
	}
	return fmt.Sprintf("- %s (~%s tokens, %s lines, %s chars)",
		f.Filename, comma(f.Tokens), comma(f.Lines), comma(f.Chars))
}

// PrintSummary writes the token/file/line totals.
func (r *Reporter) PrintSummary(run RunStats) {
	fmt.Fprintln(r.Out, SummaryLine(run))
}

// PrintExactTokens writes the count from a real tokenizer under the summary.
func (r *Reporter) PrintExactTokens(name string, n int) {
	fmt.Fprintf(r.Out, "%s tokens: %s\n", name, comma(n))
}

// PrintDirs writes the largest directories section.
func (r *Reporter) PrintDirs(dirs []DirStat) {
	fmt.Fprintln(r.Out, "\nLargest directories")
	for _, d := range TopDirs(dirs, r.Opts.TopDirCount) {
		fmt.Fprintln(r.Out, dirLine(d))
	}
}

// PrintFiles writes the largest files section, highlighting large files.
func (r *Reporter) PrintFiles(files []FileStat) {
	fmt.Fprintln(r.Out, "\nLargest files")
	for _, f := range TopFiles(files, r.Opts.TopFileCount) {
		line := fileLine(f)
		if f.Chars > 0 && r.Opts.IsLarge(f) {
			r.Warn.Fprintln(r.Out, line)
			continue
		}
		fmt.Fprintln(r.Out, line)
	}
}

// PrintLanguages writes the optional language breakdown.
func (r *Reporter) PrintLanguages(langs []LanguageStat) {
	if r.Opts.TopLangCount <= 0 {
		return
	}
	fmt.Fprintln(r.Out, "\nLargest languages")
	for _, l := range TopLanguages(langs, r.Opts.TopLangCount) {
		fmt.Fprintf(r.Out, "- %s (%s files, %s lines, %s chars)\n",
			l.Language, comma(l.Files), comma(l.Lines), comma(l.Chars))
	}
}

// Print writes the summary and both top-N sections.
func (r *Reporter) Print(stats Stats) {
	r.PrintSummary(stats.Run)
	r.PrintDirs(stats.Dirs)
	r.PrintFiles(stats.Files)
}
