package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const otherLanguage = "Other"

//go:embed languages.yml
var builtinLanguages []byte

// LanguageInfo holds the fields of a Linguist languages.yml entry used for
// detection.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // e.g., programming, data, markup
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LanguageMap maps language names (e.g., "Go") to their details.
type LanguageMap map[string]LanguageInfo

// Languages resolves filenames to language names.
type Languages struct {
	extensionMap map[string]string // ".go" -> "Go"
	filenameMap  map[string]string // "Makefile" -> "Makefile"
}

// ParseLanguages builds the lookup tables from languages.yml content. When
// two languages claim the same extension or filename, the alphabetically
// first one wins.
func ParseLanguages(data []byte) (*Languages, error) {
	var langs LanguageMap
	if err := yaml.Unmarshal(data, &langs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Strings(names)

	l := &Languages{
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}
	for _, name := range names {
		info := langs[name]
		for _, ext := range info.Extensions {
			ext = strings.ToLower(ext)
			if _, taken := l.extensionMap[ext]; !taken {
				l.extensionMap[ext] = name
			}
		}
		for _, fname := range info.Filenames {
			if _, taken := l.filenameMap[fname]; !taken {
				l.filenameMap[fname] = name
			}
		}
	}
	return l, nil
}

// LoadLanguages reads a languages.yml file, or the built-in table when path
// is empty.
func LoadLanguages(path string) (*Languages, error) {
	if path == "" {
		langs, err := ParseLanguages(builtinLanguages)
		if err != nil {
			return nil, fmt.Errorf("error parsing built-in language table: %w", err)
		}
		return langs, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading language file %s: %v", ErrInvalidOption, path, err)
	}
	langs, err := ParseLanguages(data)
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing language file %s: %v", ErrInvalidOption, path, err)
	}
	return langs, nil
}

// Detect returns the language for filename. Exact filenames take precedence
// over extensions; anything unknown is "Other".
func (l *Languages) Detect(filename string) string {
	if l == nil {
		return otherLanguage
	}
	base := filepath.Base(filepath.FromSlash(filename))
	if lang, ok := l.filenameMap[base]; ok {
		return lang
	}
	if ext := strings.ToLower(filepath.Ext(base)); ext != "" {
		if lang, ok := l.extensionMap[ext]; ok {
			return lang
		}
	}
	return otherLanguage
}

// LanguageStat totals the files attributed to one language.
type LanguageStat struct {
	Language string
	Files    int
	Lines    int
	Chars    int
}

// AggregateLanguages groups records by detected language, in first-seen order.
func AggregateLanguages(records []FileRecord, langs *Languages) []LanguageStat {
	var stats []LanguageStat
	index := make(map[string]int)
	for _, rec := range records {
		lang := langs.Detect(rec.Filename)
		i, ok := index[lang]
		if !ok {
			i = len(stats)
			index[lang] = i
			stats = append(stats, LanguageStat{Language: lang})
		}
		stats[i].Files++
		stats[i].Lines += CountLines(rec.Content)
		stats[i].Chars += len(rec.Content)
	}
	return stats
}

// TopLanguages returns up to n languages by size, largest first.
func TopLanguages(langs []LanguageStat, n int) []LanguageStat {
	sorted := append([]LanguageStat(nil), langs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Chars > sorted[j].Chars
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
