package csv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBasic(t *testing.T) {
	rows := Parse("Date,Cycle,Amount\n2025-07-21,Cycle 1,25.5\n2025-07-22,Cycle 1,26")
	assert.Len(t, rows, 2)
	assert.Equal(t, "2025-07-21", rows[0]["Date"])
	assert.Equal(t, "Cycle 1", rows[0]["Cycle"])
	assert.Equal(t, "26", rows[1]["Amount"])
}

func TestParseTooShort(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("Date,Cycle,Amount"))
	assert.Nil(t, Parse("   \n"))
}

func TestParseDropsShortRows(t *testing.T) {
	rows := Parse("Date,Cycle,Amount\n2025-07-21\n2025-07-22,Cycle 1,26")
	assert.Len(t, rows, 1)
	assert.Equal(t, "2025-07-22", rows[0]["Date"])
}

func TestParseQuotedComma(t *testing.T) {
	rows := Parse("Date,Notes,Amount\n2025-07-21,\"sold 1,200 eggs\",26")
	assert.Len(t, rows, 1)
	assert.Equal(t, "sold 1,200 eggs", rows[0]["Notes"])
	assert.Equal(t, "26", rows[0]["Amount"])
}

func TestParseStripsQuotesAndWhitespace(t *testing.T) {
	rows := Parse(`Date, Cycle ,Notes` + "\n" + `2025-07-21, "Cycle 1" , "ok" `)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Cycle 1", rows[0]["Cycle"])
	assert.Equal(t, "ok", rows[0]["Notes"])
}

func TestParseLiteralQuoteMidField(t *testing.T) {
	// A quote that neither follows a comma nor precedes one is literal and
	// then stripped by field cleaning.
	rows := Parse("Date,Notes\n2025-07-21,5\" eggs")
	assert.Len(t, rows, 1)
	assert.Equal(t, "5 eggs", rows[0]["Notes"])
}

func TestParseExtraColumnsKept(t *testing.T) {
	// Rows longer than the header keep the leading columns
	rows := Parse("Date,Cycle\n2025-07-21,Cycle 1,extra")
	assert.Len(t, rows, 1)
	assert.Equal(t, "Cycle 1", rows[0]["Cycle"])
}

func TestParseDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	assert.Equal(t, "2025-07-21", ParseDate("2025-07-21"))
	assert.Equal(t, "2025-07-21", ParseDate("21/07/2025"))
	assert.Equal(t, "2025-01-05", ParseDate("5/1/2025"))
	assert.Equal(t, "2025-07-21", ParseDate("2025/07/21"))
	assert.Equal(t, "2025-07-21", ParseDate("Jul 21, 2025"))

	assert.Equal(t, today, ParseDate(""))
	assert.Equal(t, today, ParseDate("   "))
	assert.Equal(t, today, ParseDate("not a date"))
	assert.Equal(t, today, ParseDate("21/07/25")) // two-digit year rejected
}
