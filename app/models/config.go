package models

import "time"

// FarmSetting represents a key/value application setting
type FarmSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"unique;not null" json:"key"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`     // "string", "number", "boolean"
	Category  string    `json:"category"` // "general", "sync", "display"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User represents the local operator account guarding access to the app
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	PINHash     string     `json:"-"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SheetsConfig holds Google Sheets report sync settings
type SheetsConfig struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	IsEnabled      bool       `json:"is_enabled"`
	SpreadsheetID  string     `json:"spreadsheet_id"`
	SheetName      string     `json:"sheet_name"`
	PrivateKey     string     `gorm:"type:text" json:"private_key"` // service account JSON
	AutoSync       bool       `json:"auto_sync"`
	SyncMode       string     `json:"sync_mode"`     // "interval", "daily"
	SyncInterval   int        `json:"sync_interval"` // minutes, interval mode
	SyncTime       string     `json:"sync_time"`     // "HH:MM", daily mode
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	LastSyncStatus string     `json:"last_sync_status"` // "pending", "success", "error"
	LastSyncError  string     `json:"last_sync_error"`
	TotalSyncs     int        `json:"total_syncs"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
