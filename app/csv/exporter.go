package csv

import (
	"fmt"
	"strconv"

	"PoultryApp/app/models"
)

// Export column orders. These are the file format; changing them breaks
// spreadsheets users have built against past exports.
var (
	productionHeaders = []string{
		"Date", "Cycle", "Cage", "Flock_Age_Days", "Opening_Birds",
		"Mortality", "Birds_Sold", "Eggs_Produced", "Closing_Birds",
		"Production_Percentage", "Notes",
	}
	salesHeaders = []string{
		"Date", "Cycle", "Sale_Type", "Customer", "Crates", "Price_Per_Crate",
		"Bird_Quantity", "Price_Per_Bird", "Weight_Kg", "Total_Amount",
		"Payment_Method", "Notes",
	}
	expenseHeaders = []string{
		"Date", "Cycle", "Category", "Description", "Amount",
		"Payment_Method", "Notes",
	}
	feedHeaders = []string{
		"Date", "Cycle", "Feed_Consumed_Kg", "Feed_Cost", "Notes",
	}
)

// cycleNames maps cycle ids to display names, defaulting to "Cycle <id>" for
// unnamed cycles.
func cycleNames(cycles []models.Cycle) map[uint]string {
	names := make(map[uint]string, len(cycles))
	for _, c := range cycles {
		if c.Name != "" {
			names[c.ID] = c.Name
		} else {
			names[c.ID] = fmt.Sprintf("Cycle %d", c.ID)
		}
	}
	return names
}

// lookupName resolves an id against a name map, falling back to the raw id
// string when the referenced record no longer exists.
func lookupName(names map[uint]string, id uint) string {
	if name, ok := names[id]; ok {
		return name
	}
	return strconv.FormatUint(uint64(id), 10)
}

// ExportProductionLogs serializes production logs, all cycles when cycleID is
// zero. An empty record set yields an empty string.
func (e *Exchange) ExportProductionLogs(cycleID uint) (string, error) {
	logs, err := e.store.ProductionLogs(cycleID)
	if err != nil {
		return "", fmt.Errorf("load production logs: %w", err)
	}
	cycles, err := e.store.Cycles()
	if err != nil {
		return "", fmt.Errorf("load cycles: %w", err)
	}
	cages, err := e.store.Cages()
	if err != nil {
		return "", fmt.Errorf("load cages: %w", err)
	}

	cycleName := cycleNames(cycles)
	cageName := make(map[uint]string, len(cages))
	for _, c := range cages {
		cageName[c.ID] = c.Name
	}

	rows := make([]Row, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, Row{
			"Date":                  log.Date,
			"Cycle":                 lookupName(cycleName, log.CycleID),
			"Cage":                  lookupName(cageName, log.CageID),
			"Flock_Age_Days":        formatInt(log.FlockAge, true),
			"Opening_Birds":         formatInt(log.OpeningBirds, true),
			"Mortality":             formatInt(log.Mortality, false),
			"Birds_Sold":            formatInt(log.BirdsSold, false),
			"Eggs_Produced":         formatInt(log.EggsCollected, false),
			"Closing_Birds":         formatInt(log.ClosingBirds, true),
			"Production_Percentage": formatFloat(log.ProductionPercent, true),
			"Notes":                 log.Notes,
		})
	}
	return write(productionHeaders, rows), nil
}

// ExportSales serializes sales, all cycles when cycleID is zero.
func (e *Exchange) ExportSales(cycleID uint) (string, error) {
	sales, err := e.store.Sales(cycleID)
	if err != nil {
		return "", fmt.Errorf("load sales: %w", err)
	}
	cycles, err := e.store.Cycles()
	if err != nil {
		return "", fmt.Errorf("load cycles: %w", err)
	}
	cycleName := cycleNames(cycles)

	rows := make([]Row, 0, len(sales))
	for _, sale := range sales {
		saleType := sale.SaleType
		if saleType == "" {
			saleType = "eggs"
		}
		rows = append(rows, Row{
			"Date":            sale.Date,
			"Cycle":           lookupName(cycleName, sale.CycleID),
			"Sale_Type":       saleType,
			"Customer":        sale.Customer,
			"Crates":          formatFloat(sale.Crates, true),
			"Price_Per_Crate": formatFloat(sale.PricePerCrate, true),
			"Bird_Quantity":   formatInt(sale.BirdQuantity, true),
			"Price_Per_Bird":  formatFloat(sale.PricePerBird, true),
			"Weight_Kg":       formatFloat(sale.Weight, true),
			"Total_Amount":    formatFloat(sale.Amount, false),
			"Payment_Method":  sale.PaymentMethod,
			"Notes":           sale.Notes,
		})
	}
	return write(salesHeaders, rows), nil
}

// ExportExpenses serializes expenses, all cycles when cycleID is zero.
func (e *Exchange) ExportExpenses(cycleID uint) (string, error) {
	expenses, err := e.store.Expenses(cycleID)
	if err != nil {
		return "", fmt.Errorf("load expenses: %w", err)
	}
	cycles, err := e.store.Cycles()
	if err != nil {
		return "", fmt.Errorf("load cycles: %w", err)
	}
	cycleName := cycleNames(cycles)

	rows := make([]Row, 0, len(expenses))
	for _, expense := range expenses {
		rows = append(rows, Row{
			"Date":           expense.Date,
			"Cycle":          lookupName(cycleName, expense.CycleID),
			"Category":       expense.Category,
			"Description":    expense.Description,
			"Amount":         formatFloat(expense.Amount, false),
			"Payment_Method": expense.PaymentMethod,
			"Notes":          expense.Notes,
		})
	}
	return write(expenseHeaders, rows), nil
}

// ExportFeedLogs serializes feed logs, all cycles when cycleID is zero.
func (e *Exchange) ExportFeedLogs(cycleID uint) (string, error) {
	logs, err := e.store.FeedLogs(cycleID)
	if err != nil {
		return "", fmt.Errorf("load feed logs: %w", err)
	}
	cycles, err := e.store.Cycles()
	if err != nil {
		return "", fmt.Errorf("load cycles: %w", err)
	}
	cycleName := cycleNames(cycles)

	rows := make([]Row, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, Row{
			"Date":             log.Date,
			"Cycle":            lookupName(cycleName, log.CycleID),
			"Feed_Consumed_Kg": formatFloat(log.Amount, false),
			"Feed_Cost":        formatFloat(log.Cost, false),
			"Notes":            log.Notes,
		})
	}
	return write(feedHeaders, rows), nil
}
