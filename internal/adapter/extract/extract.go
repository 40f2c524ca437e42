// Package extract pulls plain text out of supported document formats.
package extract

import (
	"fmt"

	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
)

// Error describes a failed extraction with a user-facing message. It is
// the only error type this package returns for malformed or unreadable
// files; nothing panics past the boundary.
type Error struct {
	Path    string
	Format  domain.Format
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("reading %s file %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("reading %s file %s: %v", e.Format, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Extractor dispatches extraction by format tag.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content.
func (e *Extractor) Extract(path string, format domain.Format) (string, error) {
	switch format {
	case domain.FormatText:
		return extractText(path)
	case domain.FormatWord:
		return extractWord(path)
	case domain.FormatSpreadsheet:
		return extractSpreadsheet(path)
	default:
		return "", &Error{Path: path, Format: format, Message: "no extractor for this format"}
	}
}
