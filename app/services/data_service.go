package services

import (
	"PoultryApp/app/csv"
	"PoultryApp/app/models"

	"gorm.io/gorm"
)

// dbStore adapts the GORM database to the csv.Store interface.
type dbStore struct {
	db *gorm.DB
}

func (s *dbStore) Cycles() ([]models.Cycle, error) {
	var cycles []models.Cycle
	err := s.db.Find(&cycles).Error
	return cycles, err
}

func (s *dbStore) Cages() ([]models.Cage, error) {
	var cages []models.Cage
	err := s.db.Find(&cages).Error
	return cages, err
}

func (s *dbStore) ProductionLogs(cycleID uint) ([]models.ProductionLog, error) {
	var logs []models.ProductionLog
	query := s.db.Order("date ASC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&logs).Error
	return logs, err
}

func (s *dbStore) Sales(cycleID uint) ([]models.Sale, error) {
	var sales []models.Sale
	query := s.db.Order("date ASC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&sales).Error
	return sales, err
}

func (s *dbStore) Expenses(cycleID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	query := s.db.Order("date ASC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&expenses).Error
	return expenses, err
}

func (s *dbStore) FeedLogs(cycleID uint) ([]models.FeedLog, error) {
	var logs []models.FeedLog
	query := s.db.Order("date ASC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&logs).Error
	return logs, err
}

func (s *dbStore) AddCycle(cycle *models.Cycle) (uint, error) {
	err := s.db.Create(cycle).Error
	return cycle.ID, err
}

func (s *dbStore) AddCage(cage *models.Cage) (uint, error) {
	err := s.db.Create(cage).Error
	return cage.ID, err
}

func (s *dbStore) AddProductionLog(log *models.ProductionLog) (uint, error) {
	err := s.db.Create(log).Error
	return log.ID, err
}

func (s *dbStore) AddSale(sale *models.Sale) (uint, error) {
	err := s.db.Create(sale).Error
	return sale.ID, err
}

func (s *dbStore) AddExpense(expense *models.Expense) (uint, error) {
	err := s.db.Create(expense).Error
	return expense.ID, err
}

func (s *dbStore) AddFeedLog(log *models.FeedLog) (uint, error) {
	err := s.db.Create(log).Error
	return log.ID, err
}

func (s *dbStore) UpdateFeedLog(log *models.FeedLog) error {
	return s.db.Save(log).Error
}

// DataService exposes CSV import/export to the UI
type DataService struct {
	*BaseService
}

// NewDataService creates a new data service
func NewDataService() *DataService {
	return &DataService{BaseService: NewBaseService()}
}

func (s *DataService) exchange() (*csv.Exchange, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	return csv.NewExchange(&dbStore{db: s.GetDB()}), nil
}

// ImportProductionLogs imports production log rows from CSV text
func (s *DataService) ImportProductionLogs(csvText string) (*csv.ImportResult, error) {
	ex, err := s.exchange()
	if err != nil {
		return nil, err
	}
	return ex.ImportProductionLogs(csvText)
}

// ImportSales imports sale rows from CSV text
func (s *DataService) ImportSales(csvText string) (*csv.ImportResult, error) {
	ex, err := s.exchange()
	if err != nil {
		return nil, err
	}
	return ex.ImportSales(csvText)
}

// ImportExpenses imports expense rows from CSV text
func (s *DataService) ImportExpenses(csvText string) (*csv.ImportResult, error) {
	ex, err := s.exchange()
	if err != nil {
		return nil, err
	}
	return ex.ImportExpenses(csvText)
}

// ImportFeedLogs imports feed rows from CSV text
func (s *DataService) ImportFeedLogs(csvText string) (*csv.ImportResult, error) {
	ex, err := s.exchange()
	if err != nil {
		return nil, err
	}
	return ex.ImportFeedLogs(csvText)
}

// ExportProductionLogs exports production logs as CSV (cycleID 0 = all)
func (s *DataService) ExportProductionLogs(cycleID uint) (string, error) {
	ex, err := s.exchange()
	if err != nil {
		return "", err
	}
	return ex.ExportProductionLogs(cycleID)
}

// ExportSales exports sales as CSV (cycleID 0 = all)
func (s *DataService) ExportSales(cycleID uint) (string, error) {
	ex, err := s.exchange()
	if err != nil {
		return "", err
	}
	return ex.ExportSales(cycleID)
}

// ExportExpenses exports expenses as CSV (cycleID 0 = all)
func (s *DataService) ExportExpenses(cycleID uint) (string, error) {
	ex, err := s.exchange()
	if err != nil {
		return "", err
	}
	return ex.ExportExpenses(cycleID)
}

// ExportFeedLogs exports feed logs as CSV (cycleID 0 = all)
func (s *DataService) ExportFeedLogs(cycleID uint) (string, error) {
	ex, err := s.exchange()
	if err != nil {
		return "", err
	}
	return ex.ExportFeedLogs(cycleID)
}

// GetProductionLogTemplate returns the production import template
func (s *DataService) GetProductionLogTemplate() string {
	return csv.ProductionLogTemplate()
}

// GetSalesTemplate returns the sales import template
func (s *DataService) GetSalesTemplate() string {
	return csv.SalesTemplate()
}

// GetExpensesTemplate returns the expenses import template
func (s *DataService) GetExpensesTemplate() string {
	return csv.ExpensesTemplate()
}

// GetFeedLogTemplate returns the feed import template
func (s *DataService) GetFeedLogTemplate() string {
	return csv.FeedLogTemplate()
}
