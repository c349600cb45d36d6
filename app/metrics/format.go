package metrics

import (
	"fmt"
	"time"
)

// Display helpers shared by the dashboard and report surfaces.

// FormatPercent renders a percentage with the given number of decimals.
func FormatPercent(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// FormatCurrency renders an amount with a currency symbol prefix.
func FormatCurrency(value float64, symbol string) string {
	return fmt.Sprintf("%s%.2f", symbol, value)
}

// FormatWeight renders a weight with its unit.
func FormatWeight(value float64, unit string) string {
	return fmt.Sprintf("%.2f %s", value, unit)
}

// FormatDate renders a date for display at the given granularity
// ("day", "week", "month", "year"). Day and week use dd/mm/yyyy.
func FormatDate(t time.Time, period string) string {
	switch period {
	case "year":
		return t.Format("2006")
	case "month":
		return t.Format("01/2006")
	default:
		return t.Format("02/01/2006")
	}
}

// PeriodKey buckets a date into a grouping key for trend charts:
// "day" keeps the date, "week" snaps to the preceding Sunday, "month" to the
// first of the month, "quarter" to YYYY-Qn and "year" to January 1st.
func PeriodKey(t time.Time, period string) string {
	switch period {
	case "week":
		weekStart := t.AddDate(0, 0, -int(t.Weekday()))
		return weekStart.Format("2006-01-02")
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format("2006-01-02")
	case "quarter":
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", t.Year(), quarter)
	case "year":
		return fmt.Sprintf("%d-01-01", t.Year())
	default:
		return t.Format("2006-01-02")
	}
}
