package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210.0 // A4 width in mm
	pdfMargin     = 10.0  // Margin in mm
	pdfLineHeight = 5.0   // Line height in mm
	pdfFontSize   = 9
	pdfTabWidth   = 4 // Number of spaces for a tab
	pdfStyle      = "github"
)

// PDFReport holds what goes into the PDF export.
type PDFReport struct {
	Summary string
	Dirs    []string
	Files   []string
	Large   map[string]bool // Files drawn in the warning colour
	Records []FileRecord
}

// NewPDFReport renders stats with the same text as the console report.
func NewPDFReport(stats Stats, records []FileRecord, opts ReportOptions) PDFReport {
	report := PDFReport{
		Summary: SummaryLine(stats.Run),
		Large:   make(map[string]bool),
		Records: records,
	}
	for _, d := range TopDirs(stats.Dirs, opts.TopDirCount) {
		report.Dirs = append(report.Dirs, dirLine(d))
	}
	for _, f := range TopFiles(stats.Files, opts.TopFileCount) {
		line := fileLine(f)
		report.Files = append(report.Files, line)
		if f.Chars > 0 && opts.IsLarge(f) {
			report.Large[line] = true
		}
	}
	return report
}

// WritePDF saves the report, followed by one section per file, to path.
func WritePDF(report PDFReport, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	width := pdfPageWidth - 2*pdfMargin
	// Core fonts are cp1252; translate UTF-8 text where possible.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", pdfFontSize+1)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(width, pdfLineHeight, tr(text), "", "L", false)
		pdf.Ln(pdfLineHeight / 2)
	}

	heading(report.Summary)

	heading("Largest directories")
	pdf.SetFont("Courier", "", pdfFontSize)
	for _, line := range report.Dirs {
		pdf.MultiCell(width, pdfLineHeight, tr(line), "", "L", false)
	}
	pdf.Ln(pdfLineHeight)

	heading("Largest files")
	pdf.SetFont("Courier", "", pdfFontSize)
	for _, line := range report.Files {
		if report.Large[line] {
			pdf.SetTextColor(200, 120, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.MultiCell(width, pdfLineHeight, tr(line), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)

	style := styles.Get(pdfStyle)
	if style == nil {
		style = styles.Fallback
	}
	for _, rec := range report.Records {
		pdf.AddPage()
		heading(headerMarker + rec.Filename)
		pdf.Line(pdfMargin, pdf.GetY(), pdfPageWidth-pdfMargin, pdf.GetY())
		pdf.Ln(pdfLineHeight / 2)
		pdf.SetFont("Courier", "", pdfFontSize)
		if err := writeHighlighted(pdf, style, rec, tr); err != nil {
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(width, pdfLineHeight, tr(expandTabs(rec.Content)), "", "L", false)
		}
		pdf.SetFontStyle("")
		pdf.SetTextColor(0, 0, 0)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", path, err)
	}
	return nil
}

// lexerFor picks a chroma lexer by filename, then by content.
func lexerFor(rec FileRecord) chroma.Lexer {
	lexer := lexers.Match(rec.Filename)
	if lexer == nil {
		lexer = lexers.Analyse(rec.Content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// writeHighlighted writes rec's content token by token in the style's
// colours. Background colours are ignored.
func writeHighlighted(pdf *gofpdf.Fpdf, style *chroma.Style, rec FileRecord, tr func(string) string) error {
	iterator, err := lexerFor(rec).Tokenise(nil, rec.Content)
	if err != nil {
		return fmt.Errorf("tokenization failed for %s: %w", rec.Filename, err)
	}

	text := style.Get(chroma.Text).Colour
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := style.Get(token.Type)
		fontStyle := ""
		if entry.Bold == chroma.Yes {
			fontStyle += "B"
		}
		if entry.Italic == chroma.Yes {
			fontStyle += "I"
		}
		pdf.SetFontStyle(fontStyle)

		colour := entry.Colour
		if !colour.IsSet() {
			colour = text
		}
		if colour.IsSet() {
			pdf.SetTextColor(int(colour.Red()), int(colour.Green()), int(colour.Blue()))
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Write(pdfLineHeight, tr(expandTabs(token.Value)))
	}
	pdf.Ln(-1)
	return nil
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", pdfTabWidth))
}
