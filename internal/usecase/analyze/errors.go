package analyze

import "fmt"

// ValidationReason identifies an input problem detected before any remote call.
type ValidationReason int

const (
	ReasonFileNotFound ValidationReason = iota
	ReasonEmptyDocument
	ReasonUnsupportedFormat
)

// ValidationError reports invalid input. It is always terminal and never
// triggers a retry or a remote call.
type ValidationError struct {
	Reason ValidationReason
	Path   string
	Detail string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonFileNotFound:
		return fmt.Sprintf("file not found: %s", e.Path)
	case ReasonEmptyDocument:
		return fmt.Sprintf("document appears to be empty: %s", e.Path)
	case ReasonUnsupportedFormat:
		return fmt.Sprintf("unsupported file type %s (supported: .txt, .docx, .xlsx, .xls)", e.Detail)
	default:
		return fmt.Sprintf("invalid input: %s", e.Path)
	}
}

// NewFileNotFound builds the validation error for a missing input file.
func NewFileNotFound(path string) *ValidationError {
	return &ValidationError{Reason: ReasonFileNotFound, Path: path}
}

// NewEmptyDocument builds the validation error for whitespace-only content.
func NewEmptyDocument(path string) *ValidationError {
	return &ValidationError{Reason: ReasonEmptyDocument, Path: path}
}

// NewUnsupportedFormat builds the validation error for an unknown format tag.
func NewUnsupportedFormat(tag string) *ValidationError {
	return &ValidationError{Reason: ReasonUnsupportedFormat, Detail: tag}
}
