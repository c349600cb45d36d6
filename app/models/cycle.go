package models

import (
	"time"

	"gorm.io/gorm"
)

// Cycle represents one production run: a batch of birds from placement to
// sale or cull. Dates are stored as ISO strings (YYYY-MM-DD) since all farm
// records are day-granular.
type Cycle struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"index;not null" json:"name"`
	Type            string         `json:"type"` // "layers", "broilers"
	StartDate       string         `gorm:"not null" json:"start_date"`
	EndDate         *string        `json:"end_date,omitempty"`
	Status          string         `gorm:"index" json:"status"` // "active", "completed", "planned"
	PlannedDuration int            `json:"planned_duration"`    // days
	ExpectedBirds   int            `json:"expected_birds"`
	Notes           string         `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Cage represents a housed group of birds within a cycle. Running totals
// are denormalized here and rebuilt from production logs on change.
type Cage struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CycleID      uint           `gorm:"index;not null" json:"cycle_id"`
	Name         string         `gorm:"index;not null" json:"name"`
	Breed        string         `json:"breed"`
	Capacity     int            `json:"capacity"`
	InitialBirds int            `json:"initial_birds"`
	CurrentBirds int            `json:"current_birds"`
	Status       string         `json:"status"` // "active", "empty"
	TotalEggs    int            `json:"total_eggs"`
	TotalFeed    float64        `json:"total_feed"` // kg
	Mortality    int            `json:"mortality"`
	Notes        string         `json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
