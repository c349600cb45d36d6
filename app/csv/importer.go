package csv

import (
	"fmt"
	"strconv"
	"time"

	"PoultryApp/app/models"
)

// ImportResult summarises one import run. Row-level failures are collected in
// Errors and never abort the batch; the importer always returns a summary.
type ImportResult struct {
	Success   int      `json:"success"`
	NewCycles int      `json:"new_cycles"`
	NewCages  int      `json:"new_cages"`
	Errors    []string `json:"errors"`
}

func newImportResult() *ImportResult {
	return &ImportResult{Errors: []string{}}
}

// addError records a failure for a data row. Row numbers are 1-based file
// line numbers, so the first data row is row 2.
func (r *ImportResult) addError(rowNum int, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
}

const importNote = "Auto-created from CSV import"

// field returns the first non-empty value among the named columns, so files
// exported with either display headers or raw field names import cleanly.
func field(row Row, names ...string) string {
	for _, name := range names {
		if v := row[name]; v != "" {
			return v
		}
	}
	return ""
}

// cycleIndex maps cycle names (and id strings) to ids for reference
// resolution during import.
func cycleIndex(cycles []models.Cycle) map[string]uint {
	index := make(map[string]uint, len(cycles)*2)
	for _, c := range cycles {
		index[c.Name] = c.ID
		index[strconv.FormatUint(uint64(c.ID), 10)] = c.ID
	}
	return index
}

// resolveCycle finds the cycle named in a row or creates it, active and
// dated from the row, when it does not exist yet.
func (e *Exchange) resolveCycle(row Row, index map[string]uint, result *ImportResult) (uint, error) {
	name := field(row, "Cycle", "cycleId")
	if id, ok := index[name]; ok {
		return id, nil
	}

	cycle := &models.Cycle{
		Name:      name,
		StartDate: ParseDate(field(row, "Date", "date")),
		Status:    "active",
		Notes:     importNote,
	}
	id, err := e.store.AddCycle(cycle)
	if err != nil {
		return 0, fmt.Errorf("create cycle %q: %w", name, err)
	}
	index[name] = id
	result.NewCycles++
	return id, nil
}

// ImportProductionLogs imports daily production rows, creating unknown cycles
// and cages on the fly. Rows append unconditionally: re-importing the same
// file duplicates logs.
func (e *Exchange) ImportProductionLogs(text string) (*ImportResult, error) {
	rows := Parse(text)
	result := newImportResult()

	cycles, err := e.store.Cycles()
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	cages, err := e.store.Cages()
	if err != nil {
		return nil, fmt.Errorf("load cages: %w", err)
	}

	cycleIDs := cycleIndex(cycles)
	cageIDs := make(map[string]uint, len(cages)*2)
	for _, c := range cages {
		cageIDs[c.Name] = c.ID
		cageIDs[strconv.FormatUint(uint64(c.ID), 10)] = c.ID
	}

	for i, row := range rows {
		rowNum := i + 2

		cycleID, err := e.resolveCycle(row, cycleIDs, result)
		if err != nil {
			result.addError(rowNum, err)
			continue
		}

		cageName := field(row, "Cage", "cageId")
		cageID, ok := cageIDs[cageName]
		if !ok {
			cage := &models.Cage{
				Name:         cageName,
				CycleID:      cycleID,
				Capacity:     500,
				CurrentBirds: parseIntField(field(row, "Opening_Birds", "openingBirds")),
				Breed:        "Mixed",
				Status:       "active",
				Notes:        importNote,
			}
			cageID, err = e.store.AddCage(cage)
			if err != nil {
				result.addError(rowNum, fmt.Errorf("create cage %q: %w", cageName, err))
				continue
			}
			cageIDs[cageName] = cageID
			result.NewCages++
		}

		log := &models.ProductionLog{
			CycleID:           cycleID,
			CageID:            cageID,
			Date:              ParseDate(field(row, "Date", "date")),
			FlockAge:          parseIntField(field(row, "Flock_Age_Days", "flockAgeDays")),
			OpeningBirds:      parseIntField(field(row, "Opening_Birds", "openingBirds")),
			Mortality:         parseIntField(field(row, "Mortality", "mortality")),
			BirdsSold:         parseIntField(field(row, "Birds_Sold", "birdsSold")),
			EggsCollected:     parseIntField(field(row, "Eggs_Produced", "eggsProduced")),
			ClosingBirds:      parseIntField(field(row, "Closing_Birds", "closingBirds")),
			ProductionPercent: parseFloatField(field(row, "Production_Percentage", "productionPercentage")),
			Notes:             field(row, "Notes", "notes"),
		}
		if _, err := e.store.AddProductionLog(log); err != nil {
			result.addError(rowNum, err)
			continue
		}
		result.Success++
	}

	return result, nil
}

// ImportSales imports sale rows, creating unknown cycles. Append-only.
func (e *Exchange) ImportSales(text string) (*ImportResult, error) {
	rows := Parse(text)
	result := newImportResult()

	cycles, err := e.store.Cycles()
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	cycleIDs := cycleIndex(cycles)

	for i, row := range rows {
		rowNum := i + 2

		cycleID, err := e.resolveCycle(row, cycleIDs, result)
		if err != nil {
			result.addError(rowNum, err)
			continue
		}

		saleType := field(row, "Sale_Type", "saleType")
		if saleType == "" {
			saleType = "eggs"
		}

		sale := &models.Sale{
			CycleID:       cycleID,
			Date:          ParseDate(field(row, "Date", "date")),
			SaleType:      saleType,
			Customer:      field(row, "Customer", "customer"),
			Amount:        parseFloatField(field(row, "Total_Amount", "amount")),
			PaymentMethod: field(row, "Payment_Method", "paymentMethod"),
			Notes:         field(row, "Notes", "notes"),
		}
		if sale.PaymentMethod == "" {
			sale.PaymentMethod = "cash"
		}
		switch saleType {
		case "birds":
			sale.BirdQuantity = parseIntField(field(row, "Bird_Quantity", "birdQuantity"))
			sale.PricePerBird = parseFloatField(field(row, "Price_Per_Bird", "pricePerBird"))
			sale.Weight = parseFloatField(field(row, "Weight_Kg", "weight"))
		default:
			sale.Crates = parseFloatField(field(row, "Crates", "crates"))
			sale.PricePerCrate = parseFloatField(field(row, "Price_Per_Crate", "pricePerCrate"))
		}

		if _, err := e.store.AddSale(sale); err != nil {
			result.addError(rowNum, err)
			continue
		}
		result.Success++
	}

	return result, nil
}

// ImportExpenses imports expense rows, creating unknown cycles. Append-only.
func (e *Exchange) ImportExpenses(text string) (*ImportResult, error) {
	rows := Parse(text)
	result := newImportResult()

	cycles, err := e.store.Cycles()
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	cycleIDs := cycleIndex(cycles)

	for i, row := range rows {
		rowNum := i + 2

		cycleID, err := e.resolveCycle(row, cycleIDs, result)
		if err != nil {
			result.addError(rowNum, err)
			continue
		}

		expense := &models.Expense{
			CycleID:       cycleID,
			Date:          ParseDate(field(row, "Date", "date")),
			Category:      field(row, "Category", "category"),
			Description:   field(row, "Description", "description"),
			Amount:        parseFloatField(field(row, "Amount", "amount")),
			PaymentMethod: field(row, "Payment_Method", "paymentMethod"),
			Notes:         field(row, "Notes", "notes"),
		}
		if expense.Category == "" {
			expense.Category = "other"
		}
		if expense.PaymentMethod == "" {
			expense.PaymentMethod = "cash"
		}

		if _, err := e.store.AddExpense(expense); err != nil {
			result.addError(rowNum, err)
			continue
		}
		result.Success++
	}

	return result, nil
}

// ImportFeedLogs imports feed rows, creating unknown cycles. Unlike the other
// kinds this upserts by (cycle, date): an existing log for the same day is
// updated in place with its CreatedAt preserved, which makes re-importing the
// same file idempotent.
func (e *Exchange) ImportFeedLogs(text string) (*ImportResult, error) {
	rows := Parse(text)
	result := newImportResult()

	cycles, err := e.store.Cycles()
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	cycleIDs := cycleIndex(cycles)

	for i, row := range rows {
		rowNum := i + 2

		cycleID, err := e.resolveCycle(row, cycleIDs, result)
		if err != nil {
			result.addError(rowNum, err)
			continue
		}

		date := ParseDate(field(row, "Date", "date"))

		existing, err := e.store.FeedLogs(cycleID)
		if err != nil {
			result.addError(rowNum, err)
			continue
		}
		var match *models.FeedLog
		for j := range existing {
			if existing[j].Date == date {
				match = &existing[j]
				break
			}
		}

		amount := parseFloatField(field(row, "Feed_Consumed_Kg", "feedConsumed", "amount"))
		cost := parseFloatField(field(row, "Feed_Cost", "feedCost", "cost"))
		notes := field(row, "Notes", "notes")

		if match != nil {
			match.Amount = amount
			match.Cost = cost
			match.Notes = notes
			match.UpdatedAt = time.Now()
			if err := e.store.UpdateFeedLog(match); err != nil {
				result.addError(rowNum, err)
				continue
			}
		} else {
			log := &models.FeedLog{
				CycleID: cycleID,
				Date:    date,
				Amount:  amount,
				Cost:    cost,
				Notes:   notes,
			}
			if _, err := e.store.AddFeedLog(log); err != nil {
				result.addError(rowNum, err)
				continue
			}
		}
		result.Success++
	}

	return result, nil
}
