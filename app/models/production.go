package models

import "time"

// ProductionLog is one cage's record for one day. Recording the same cage
// and date again replaces the earlier entry; CSV import appends instead and
// leaves deduplication to the user.
type ProductionLog struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CageID            uint      `gorm:"index;not null" json:"cage_id"`
	CycleID           uint      `gorm:"index" json:"cycle_id"`
	Date              string    `gorm:"index;not null" json:"date"` // ISO YYYY-MM-DD
	FlockAge          int       `json:"flock_age"`                  // days, placement day = 1
	OpeningBirds      int       `json:"opening_birds"`
	Mortality         int       `json:"mortality"`
	BirdsSold         int       `json:"birds_sold"`
	EggsCollected     int       `json:"eggs_collected"`
	ClosingBirds      int       `json:"closing_birds"`
	ProductionPercent float64   `json:"production_percent"`
	FeedConsumed      float64   `json:"feed_consumed"` // kg, optional per-cage feed
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FeedLog is one day's feed consumption for a cycle. One record per cycle
// and date.
type FeedLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CycleID   uint      `gorm:"index;not null" json:"cycle_id"`
	Date      string    `gorm:"index;not null" json:"date"`
	Amount    float64   `json:"amount"` // kg
	Cost      float64   `json:"cost"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vaccination records one administered vaccine for a cycle
type Vaccination struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	CycleID              uint      `gorm:"index;not null" json:"cycle_id"`
	Date                 string    `gorm:"index" json:"date"`
	FlockAge             int       `json:"flock_age"` // days at administration
	VaccineName          string    `gorm:"not null" json:"vaccine_name"`
	AdministrationMethod string    `json:"administration_method"` // "drinking water", "injection", "eye drop", "wing web"
	BirdsTreated         int       `json:"birds_treated"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
