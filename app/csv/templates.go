package csv

import "strings"

// Import templates: header row plus one sample row users can overwrite.

// ProductionLogTemplate returns the production log import template.
func ProductionLogTemplate() string {
	sample := []string{
		"2025-07-21", "Cycle 1", "Cage A1", "150", "100",
		"1", "0", "85", "99", "85.0", "Normal production day",
	}
	return strings.Join(productionHeaders, ",") + "\n" + strings.Join(sample, ",")
}

// SalesTemplate returns the sales import template.
func SalesTemplate() string {
	sample := []string{
		"2025-07-21", "Cycle 1", "eggs", "Local Market", "10", "40.00",
		"", "", "", "400.00", "cash", "Weekly egg sale",
	}
	return strings.Join(salesHeaders, ",") + "\n" + strings.Join(sample, ",")
}

// ExpensesTemplate returns the expenses import template.
func ExpensesTemplate() string {
	sample := []string{
		"2025-07-21", "Cycle 1", "feed", "Layer feed 50kg", "150.00",
		"cash", "Weekly feed purchase",
	}
	return strings.Join(expenseHeaders, ",") + "\n" + strings.Join(sample, ",")
}

// FeedLogTemplate returns the feed log import template.
func FeedLogTemplate() string {
	sample := []string{
		"2025-07-21", "Cycle 1", "25.5", "85.00", "Daily feed consumption",
	}
	return strings.Join(feedHeaders, ",") + "\n" + strings.Join(sample, ",")
}
