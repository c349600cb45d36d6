// Package csv implements the farm's CSV exchange format: lenient parsing of
// uploaded files, Excel-safe serialization, and import/export of production,
// sales, expense and feed records against a storage contract.
package csv

import (
	"strconv"
	"strings"
	"time"
)

// Row is a parsed CSV data line keyed by header name.
type Row map[string]string

// Parse splits CSV text into rows. The first line is the header; data lines
// with fewer fields than the header are dropped. Field values keep commas
// inside quoted sections, and are returned with surrounding whitespace and
// quote characters stripped. Fewer than two lines yields no rows.
func Parse(text string) []Row {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := strings.Split(lines[0], ",")
	for i, h := range headers {
		headers[i] = cleanField(h)
	}

	var rows []Row
	for _, line := range lines[1:] {
		values := parseLine(line)
		if len(values) < len(headers) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			row[h] = cleanField(values[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// parseLine splits one line on commas, honoring double-quoted fields. A quote
// opens a field only at line start or straight after a comma, and closes it
// only at line end or straight before a comma; any other quote is literal.
func parseLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && !inQuotes && (i == 0 || line[i-1] == ','):
			inQuotes = true
		case c == '"' && inQuotes && (i == len(line)-1 || line[i+1] == ','):
			inQuotes = false
		case c == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}

func cleanField(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}

// ParseDate normalizes an imported date value to ISO YYYY-MM-DD. Slashed
// dates are read day-first (21/07/2025 is July 21st). Blank or unparseable
// input falls back to today rather than failing, so a bad date never aborts
// an import row.
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().Format("2006-01-02")
	}

	if isISODate(s) {
		return s
	}

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		day, dayErr := strconv.Atoi(parts[0])
		month, monthErr := strconv.Atoi(parts[1])
		year, yearErr := strconv.Atoi(parts[2])
		if dayErr == nil && monthErr == nil && yearErr == nil && len(parts[2]) == 4 {
			return strconv.Itoa(year) + "-" + pad2(month) + "-" + pad2(day)
		}
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006/01/02",
		"2006-1-2",
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return time.Now().Format("2006-01-02")
}

func isISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
