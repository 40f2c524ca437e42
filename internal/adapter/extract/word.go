package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
)

// extractWord pulls text from a .docx file: every non-empty body
// paragraph and every non-empty table cell, in document order, joined by
// newlines. OOXML keeps the document body in word/document.xml inside the
// zip container, so a streaming XML walk is all this needs.
func extractWord(path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", &Error{Path: path, Format: domain.FormatWord, Message: "not a valid Word document", Err: err}
	}
	defer reader.Close()

	var doc io.ReadCloser
	for _, file := range reader.File {
		if file.Name == "word/document.xml" {
			doc, err = file.Open()
			if err != nil {
				return "", &Error{Path: path, Format: domain.FormatWord, Err: err}
			}
			break
		}
	}
	if doc == nil {
		return "", &Error{Path: path, Format: domain.FormatWord, Message: "missing word/document.xml"}
	}
	defer doc.Close()

	text, err := collectDocumentText(doc)
	if err != nil {
		return "", &Error{Path: path, Format: domain.FormatWord, Message: "malformed document XML", Err: err}
	}
	return text, nil
}

// collectDocumentText walks the document body. Paragraph text outside
// tables accumulates per w:p element; inside tables it accumulates per
// w:tc cell, matching how word processors expose both collections.
func collectDocumentText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var parts []string
	var paragraph strings.Builder
	var cell strings.Builder
	tableDepth := 0
	inCell := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tc":
				if tableDepth > 0 {
					inCell = true
					cell.Reset()
				}
			case "t":
				var s string
				if err := decoder.DecodeElement(&s, &t); err != nil {
					return "", err
				}
				if inCell {
					cell.WriteString(s)
				} else if tableDepth == 0 {
					paragraph.WriteString(s)
				}
			case "br", "cr":
				if inCell {
					cell.WriteString("\n")
				} else if tableDepth == 0 {
					paragraph.WriteString("\n")
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "tc":
				if inCell {
					if text := cell.String(); strings.TrimSpace(text) != "" {
						parts = append(parts, text)
					}
					inCell = false
				}
			case "p":
				if tableDepth == 0 {
					if text := paragraph.String(); strings.TrimSpace(text) != "" {
						parts = append(parts, text)
					}
					paragraph.Reset()
				}
			}
		}
	}

	return strings.Join(parts, "\n"), nil
}
