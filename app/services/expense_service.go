package services

import (
	"fmt"
	"time"

	"PoultryApp/app/models"
)

// ExpenseService manages farm expenses
type ExpenseService struct {
	*BaseService
}

// NewExpenseService creates a new expense service
func NewExpenseService() *ExpenseService {
	return &ExpenseService{BaseService: NewBaseService()}
}

// GetExpenses returns expenses for a cycle (0 = all), newest first
func (s *ExpenseService) GetExpenses(cycleID uint) ([]models.Expense, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var expenses []models.Expense
	query := s.GetDB().Order("date DESC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&expenses).Error
	return expenses, err
}

// CreateExpense records an expense
func (s *ExpenseService) CreateExpense(expense *models.Expense) error {
	if expense.CycleID == 0 {
		return fmt.Errorf("expense must belong to a cycle")
	}
	if expense.Date == "" {
		expense.Date = time.Now().Format("2006-01-02")
	}
	if expense.Category == "" {
		expense.Category = "other"
	}
	return s.Create(expense)
}

// UpdateExpense saves changes to an expense
func (s *ExpenseService) UpdateExpense(expense *models.Expense) error {
	if expense.ID == 0 {
		return fmt.Errorf("expense id is required")
	}
	return s.Save(expense)
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(id uint) error {
	return s.Delete(&models.Expense{}, id)
}

// CategoryTotal is one slice of the expense breakdown
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// GetCategorySummary breaks a cycle's expenses down by category, largest
// first.
func (s *ExpenseService) GetCategorySummary(cycleID uint) ([]CategoryTotal, error) {
	expenses, err := s.GetExpenses(cycleID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*CategoryTotal)
	var order []string
	for _, e := range expenses {
		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category}
			byCategory[e.Category] = ct
			order = append(order, e.Category)
		}
		ct.Total += e.Amount
		ct.Count++
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		result = append(result, *byCategory[cat])
	}
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].Total > result[i].Total {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

// GetTotalExpenses sums a cycle's spend
func (s *ExpenseService) GetTotalExpenses(cycleID uint) (float64, error) {
	expenses, err := s.GetExpenses(cycleID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}
	return total, nil
}
