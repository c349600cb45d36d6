package csv

import "PoultryApp/app/models"

// Store is the storage access the exchange needs. A cycleID of zero on the
// listing methods means all cycles. The exchange never assumes transactional
// atomicity across calls; a partial import is a visible, accepted outcome.
type Store interface {
	Cycles() ([]models.Cycle, error)
	Cages() ([]models.Cage, error)
	ProductionLogs(cycleID uint) ([]models.ProductionLog, error)
	Sales(cycleID uint) ([]models.Sale, error)
	Expenses(cycleID uint) ([]models.Expense, error)
	FeedLogs(cycleID uint) ([]models.FeedLog, error)

	AddCycle(cycle *models.Cycle) (uint, error)
	AddCage(cage *models.Cage) (uint, error)
	AddProductionLog(log *models.ProductionLog) (uint, error)
	AddSale(sale *models.Sale) (uint, error)
	AddExpense(expense *models.Expense) (uint, error)
	AddFeedLog(log *models.FeedLog) (uint, error)
	UpdateFeedLog(log *models.FeedLog) error
}

// Exchange imports and exports farm records as CSV against a Store.
type Exchange struct {
	store Store
}

// NewExchange creates an exchange bound to the given store.
func NewExchange(store Store) *Exchange {
	return &Exchange{store: store}
}
