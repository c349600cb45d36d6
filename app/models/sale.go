package models

import "time"

// Sale represents an egg or bird sale recorded against a cycle
type Sale struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CycleID       uint      `gorm:"index" json:"cycle_id"`
	Date          string    `gorm:"index" json:"date"` // ISO YYYY-MM-DD
	SaleType      string    `json:"sale_type"`         // "eggs", "birds"
	Customer      string    `json:"customer"`
	Crates        float64   `json:"crates"` // egg sales
	PricePerCrate float64   `json:"price_per_crate"`
	BirdQuantity  int       `json:"bird_quantity"` // bird sales
	PricePerBird  float64   `json:"price_per_bird"`
	Weight        float64   `json:"weight"`         // kg, optional average for bird sales
	Amount        float64   `json:"amount"`         // total
	PaymentMethod string    `json:"payment_method"` // "cash", "transfer", "credit"
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Expense represents a cycle expense entry
type Expense struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CycleID       uint      `gorm:"index" json:"cycle_id"`
	Date          string    `gorm:"index" json:"date"`
	Category      string    `gorm:"index" json:"category"` // "feed", "medication", "labor", "utilities", "equipment", "other"
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Supplier      string    `json:"supplier"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"` // kg, bags, hours, etc.
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
