package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies a document format the analyzer can extract text from.
type Format string

const (
	FormatText        Format = "text"
	FormatWord        Format = "word"
	FormatSpreadsheet Format = "spreadsheet"
)

// Supported reports whether the format has an extractor.
func (f Format) Supported() bool {
	switch f {
	case FormatText, FormatWord, FormatSpreadsheet:
		return true
	}
	return false
}

// FormatFromPath derives the format from the file extension.
// Unrecognized extensions are returned verbatim so that validation
// errors can name what was actually seen.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		return FormatText
	case ".docx":
		return FormatWord
	case ".xlsx", ".xls":
		return FormatSpreadsheet
	}
	return Format(ext)
}

// ParseFormat resolves a user-supplied format tag. It accepts the
// canonical tags plus common extension aliases; anything else is
// returned verbatim for the controller to reject.
func ParseFormat(tag string) Format {
	switch strings.ToLower(strings.TrimPrefix(tag, ".")) {
	case "text", "txt", "plain-text":
		return FormatText
	case "word", "docx", "word-document":
		return FormatWord
	case "spreadsheet", "xlsx", "xls":
		return FormatSpreadsheet
	}
	return Format(tag)
}
