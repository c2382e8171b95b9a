package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPDFReport(t *testing.T) {
	t.Parallel()

	records := []FileRecord{
		{Filename: "big.txt", Content: "a\nb\nc\n"},
		{Filename: "lib/small.txt", Content: "z"},
	}
	opts := ReportOptions{TopFileCount: 9, TopDirCount: 6, WarnLines: 3}

	report := NewPDFReport(Aggregate(records), records, opts)

	assert.Equal(t, "~1 tokens / 2 files / 4 lines", report.Summary)
	assert.Equal(t, []string{
		"- . (~1 tokens, 3 lines, 6 chars)",
		"- lib (~0 tokens, 1 lines, 1 chars)",
	}, report.Dirs)
	require.Len(t, report.Files, 2)
	assert.True(t, report.Large[report.Files[0]])
	assert.False(t, report.Large[report.Files[1]])
}

func TestWritePDF(t *testing.T) {
	t.Parallel()

	records := []FileRecord{
		{Filename: "main.go", Content: "package main\n\nfunc main() {\n\tprintln(\"héllo\")\n}\n"},
		{Filename: "empty.txt", Content: ""},
	}
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := WritePDF(NewPDFReport(Aggregate(records), records, defaultReportOptions()), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestWritePDF_BadPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "report.pdf")

	err := WritePDF(PDFReport{Summary: "x"}, path)

	require.Error(t, err)
}

func TestLexerFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Go", lexerFor(FileRecord{Filename: "cmd/main.go", Content: "package main\n"}).Config().Name)
	assert.Equal(t, "Python", lexerFor(FileRecord{Filename: "tool.py", Content: "print(1)\n"}).Config().Name)
	assert.NotNil(t, lexerFor(FileRecord{Filename: "blob.zzzunknown", Content: "???"}))
}
