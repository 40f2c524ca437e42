package extract

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
)

// extractText reads a plain-text file as UTF-8, falling back to a
// permissive Latin-1 decode when the content is not valid UTF-8.
func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Path: path, Format: domain.FormatText, Err: err}
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", &Error{Path: path, Format: domain.FormatText, Message: "could not decode file contents", Err: err}
	}
	return string(decoded), nil
}
