package csv

import (
	"strconv"
	"strings"
)

// write serializes rows under the given header order. Values containing a
// comma, quote or newline are wrapped in double quotes with inner quotes
// doubled, so the output opens cleanly in Excel.
func write(headers []string, rows []Row) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, h := range headers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escape(row[h]))
		}
	}
	return b.String()
}

func escape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// formatInt renders n, or an empty cell when n is zero and blankZero is set.
func formatInt(n int, blankZero bool) string {
	if n == 0 && blankZero {
		return ""
	}
	return strconv.Itoa(n)
}

// formatFloat renders f with minimal digits, or an empty cell when f is zero
// and blankZero is set.
func formatFloat(f float64, blankZero bool) string {
	if f == 0 && blankZero {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseIntField coerces a CSV cell to an int, accepting float spellings like
// "85.0" and defaulting to zero on anything unparseable.
func parseIntField(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// parseFloatField coerces a CSV cell to a float, defaulting to zero.
func parseFloatField(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
