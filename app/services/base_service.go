package services

import (
	"fmt"

	"PoultryApp/app/database"

	"gorm.io/gorm"
)

// BaseService provides common functionality for all services
type BaseService struct {
	db *gorm.DB
}

// NewBaseService creates a new base service instance
func NewBaseService() *BaseService {
	return &BaseService{
		db: database.GetDB(),
	}
}

// GetDB returns the database connection
func (b *BaseService) GetDB() *gorm.DB {
	return b.db
}

// SetDB sets the database connection (useful for testing)
func (b *BaseService) SetDB(db *gorm.DB) {
	b.db = db
}

// EnsureDB checks if database is initialized and returns an error if not
func (b *BaseService) EnsureDB() error {
	if b.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return nil
}

// WithTransaction executes a function within a database transaction
func (b *BaseService) WithTransaction(fn func(tx *gorm.DB) error) error {
	if err := b.EnsureDB(); err != nil {
		return err
	}
	return b.db.Transaction(fn)
}

// Create creates a new record in the database
func (b *BaseService) Create(value interface{}) error {
	if err := b.EnsureDB(); err != nil {
		return err
	}
	return b.db.Create(value).Error
}

// Save updates a record in the database
func (b *BaseService) Save(value interface{}) error {
	if err := b.EnsureDB(); err != nil {
		return err
	}
	return b.db.Save(value).Error
}

// Delete deletes a record from the database
func (b *BaseService) Delete(value interface{}, id uint) error {
	if err := b.EnsureDB(); err != nil {
		return err
	}
	return b.db.Delete(value, id).Error
}

// First finds the first record matching the given conditions
func (b *BaseService) First(dest interface{}, conds ...interface{}) error {
	if err := b.EnsureDB(); err != nil {
		return err
	}
	return b.db.First(dest, conds...).Error
}

// Find finds all records matching the given conditions
func (b *BaseService) Find(dest interface{}, conds ...interface{}) error {
	if err := b.EnsureDB(); err != nil {
		return err
	}
	return b.db.Find(dest, conds...).Error
}

// Where adds a where clause to a query
func (b *BaseService) Where(query interface{}, args ...interface{}) *gorm.DB {
	return b.db.Where(query, args...)
}

// Model specifies the model you would like to run db operations on
func (b *BaseService) Model(value interface{}) *gorm.DB {
	return b.db.Model(value)
}
