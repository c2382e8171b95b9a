package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Options is the fully resolved run configuration
// (defaults < config file < YEKWRAP_* environment < flags).
type Options struct {
	Report ReportOptions

	FromClipboard bool
	Interactive   bool
	Path          string // Optional positional argument

	Collector     string
	IgnoreFile    string
	Tokenizer     string
	Model         string
	LanguagesFile string
	PDF           string
	OSC52         bool
	Verbose       bool
}

// Source reports how the collector target is chosen.
func (o Options) Source() TargetSource {
	switch {
	case o.FromClipboard:
		return TargetClipboard
	case o.Interactive:
		return TargetInteractive
	case o.Path != "":
		return TargetArgument
	default:
		return TargetCurrentDir
	}
}

// Validate rejects out-of-range counts and conflicting target selections.
func (o Options) Validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"top-file-count", o.Report.TopFileCount},
		{"top-dir-count", o.Report.TopDirCount},
		{"warn-large-files-by-line-count", o.Report.WarnLines},
		{"top-lang-count", o.Report.TopLangCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%w: --%s must not be negative (got %d)", ErrInvalidOption, c.name, c.value)
		}
	}

	selected := 0
	for _, set := range []bool{o.FromClipboard, o.Interactive, o.Path != ""} {
		if set {
			selected++
		}
	}
	if selected > 1 {
		return fmt.Errorf("%w: only one of PATH, --from-clipboard or --interactive may be used", ErrInvalidOption)
	}
	if o.OSC52 && o.FromClipboard {
		return fmt.Errorf("%w: --from-clipboard cannot read the clipboard in --osc52 mode", ErrInvalidOption)
	}
	return nil
}

// optionsFromViper reads the bound keys. path is the positional argument, if any.
func optionsFromViper(v *viper.Viper, path string) Options {
	return Options{
		Report: ReportOptions{
			TopFileCount: v.GetInt("top_file_count"),
			TopDirCount:  v.GetInt("top_dir_count"),
			WarnLines:    v.GetInt("warn_large_files_by_line_count"),
			TopLangCount: v.GetInt("top_lang_count"),
		},
		FromClipboard: v.GetBool("from_clipboard"),
		Interactive:   v.GetBool("interactive"),
		Path:          path,
		Collector:     v.GetString("collector"),
		IgnoreFile:    v.GetString("ignore_file"),
		Tokenizer:     v.GetString("tokenizer"),
		Model:         v.GetString("model"),
		LanguagesFile: v.GetString("languages_file"),
		PDF:           v.GetString("pdf"),
		OSC52:         v.GetBool("osc52"),
		Verbose:       v.GetBool("verbose"),
	}
}
