// Package report persists analysis results as timestamped text files.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type clock func() time.Time

// Writer writes analysis reports into a target directory.
type Writer struct {
	dir string
	now clock
}

// NewWriter constructs a report writer with a timestamp supplier.
func NewWriter(dir string, now clock) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir, now: now}
}

// Write persists the analysis for the given source file and returns the
// report path. The filename carries the source's base name and a
// second-resolution timestamp. The file is created exclusively: an
// existing report is never overwritten, and a failed write never leaves
// a partial file behind.
func (w *Writer) Write(sourcePath, analysis string) (string, error) {
	if strings.TrimSpace(analysis) == "" {
		return "", fmt.Errorf("refusing to write empty analysis for %s", sourcePath)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	now := w.now()
	filename := fmt.Sprintf("analysis_%s_%s.txt", stem(sourcePath), now.Format("20060102_150405"))
	path := filepath.Join(w.dir, filename)

	content := buildContent(sourcePath, now, analysis)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close report: %w", err)
	}

	return path, nil
}

// buildContent renders the fixed 3-line header followed by the body.
func buildContent(sourcePath string, now time.Time, analysis string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("ANALYSIS OF: %s\n", sourcePath))
	builder.WriteString(fmt.Sprintf("GENERATED: %s\n", now.Format("2006-01-02 15:04:05")))
	builder.WriteString(strings.Repeat("=", 60) + "\n\n")
	builder.WriteString(analysis)
	return builder.String()
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
