package main

import (
	"strings"
)

// headerMarker starts the line that names each file in the clipboard blob.
const headerMarker = ">>>> "

// BuildBlob concatenates records in order, each preceded by a
// ">>>> <filename>" line. Content without a trailing newline gets one, so
// every header starts on its own line.
func BuildBlob(records []FileRecord) string {
	var builder strings.Builder
	for _, rec := range records {
		builder.WriteString(headerMarker)
		builder.WriteString(rec.Filename)
		builder.WriteString("\n")
		builder.WriteString(rec.Content)
		if !strings.HasSuffix(rec.Content, "\n") {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}
