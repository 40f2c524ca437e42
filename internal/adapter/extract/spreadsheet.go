package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
)

// extractSpreadsheet renders every sheet of an .xlsx/.xls workbook as
// text: a sheet delimiter line, a tab-separated dump of all rows, and a
// descriptive-statistics block for any numeric columns.
func extractSpreadsheet(path string) (string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return "", &Error{Path: path, Format: domain.FormatSpreadsheet, Message: "not a valid spreadsheet", Err: err}
	}
	defer file.Close()

	var builder strings.Builder
	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return "", &Error{Path: path, Format: domain.FormatSpreadsheet, Err: err}
		}

		builder.WriteString(fmt.Sprintf("\n=== SHEET: %s ===\n", sheet))
		for _, row := range rows {
			builder.WriteString(strings.Join(row, "\t"))
			builder.WriteString("\n")
		}

		stats := summarizeNumericColumns(rows)
		if len(stats) > 0 {
			builder.WriteString(fmt.Sprintf("\n--- Summary Statistics for %s ---\n", sheet))
			for _, s := range stats {
				builder.WriteString(s.render())
				builder.WriteString("\n")
			}
		}
	}

	return builder.String(), nil
}

// columnStats holds descriptive statistics for one numeric column.
type columnStats struct {
	name  string
	count int
	mean  float64
	std   float64
	min   float64
	max   float64
}

func (c columnStats) render() string {
	return fmt.Sprintf("%s: count=%d mean=%s std=%s min=%s max=%s",
		c.name, c.count,
		formatStat(c.mean), formatStat(c.std), formatStat(c.min), formatStat(c.max))
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// summarizeNumericColumns treats the first row as a header and reports
// statistics for every column whose remaining non-empty cells all parse
// as numbers. Columns with no numeric values are skipped.
func summarizeNumericColumns(rows [][]string) []columnStats {
	if len(rows) < 2 {
		return nil
	}

	header := rows[0]
	var stats []columnStats

	for col, name := range header {
		var values []float64
		numeric := true
		for _, row := range rows[1:] {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				break
			}
			values = append(values, v)
		}
		if !numeric || len(values) == 0 {
			continue
		}
		if name == "" {
			name = fmt.Sprintf("column %d", col+1)
		}
		stats = append(stats, describe(name, values))
	}

	return stats
}

// describe computes count, mean, sample standard deviation, min, and max.
func describe(name string, values []float64) columnStats {
	s := columnStats{name: name, count: len(values), min: values[0], max: values[0]}

	var sum float64
	for _, v := range values {
		sum += v
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.mean = sum / float64(len(values))

	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - s.mean
			sq += d * d
		}
		s.std = math.Sqrt(sq / float64(len(values)-1))
	}

	return s
}
