package services

import (
	"encoding/json"
	"fmt"
	"time"

	"PoultryApp/app/models"

	"gorm.io/gorm"
)

// BackupData is the full-farm snapshot written to and read from backup
// files. Version identifies the snapshot format.
type BackupData struct {
	Cycles         []models.Cycle         `json:"cycles"`
	Cages          []models.Cage          `json:"cages"`
	ProductionLogs []models.ProductionLog `json:"productionLogs"`
	FeedLogs       []models.FeedLog       `json:"feedLogs"`
	Sales          []models.Sale          `json:"sales"`
	Expenses       []models.Expense       `json:"expenses"`
	Vaccinations   []models.Vaccination   `json:"vaccinations"`
	ExportDate     string                 `json:"exportDate"`
	Version        string                 `json:"version"`
}

const backupVersion = "1.0"

// BackupService exports and restores full-farm snapshots
type BackupService struct {
	*BaseService
}

// NewBackupService creates a new backup service
func NewBackupService() *BackupService {
	return &BackupService{BaseService: NewBaseService()}
}

// ExportBackup serializes every farm record into one JSON document
func (s *BackupService) ExportBackup() (string, error) {
	if err := s.EnsureDB(); err != nil {
		return "", err
	}

	backup := BackupData{
		ExportDate: time.Now().Format(time.RFC3339),
		Version:    backupVersion,
	}

	db := s.GetDB()
	if err := db.Find(&backup.Cycles).Error; err != nil {
		return "", fmt.Errorf("could not read cycles: %w", err)
	}
	if err := db.Find(&backup.Cages).Error; err != nil {
		return "", fmt.Errorf("could not read cages: %w", err)
	}
	if err := db.Find(&backup.ProductionLogs).Error; err != nil {
		return "", fmt.Errorf("could not read production logs: %w", err)
	}
	if err := db.Find(&backup.FeedLogs).Error; err != nil {
		return "", fmt.Errorf("could not read feed logs: %w", err)
	}
	if err := db.Find(&backup.Sales).Error; err != nil {
		return "", fmt.Errorf("could not read sales: %w", err)
	}
	if err := db.Find(&backup.Expenses).Error; err != nil {
		return "", fmt.Errorf("could not read expenses: %w", err)
	}
	if err := db.Find(&backup.Vaccinations).Error; err != nil {
		return "", fmt.Errorf("could not read vaccinations: %w", err)
	}

	data, err := json.MarshalIndent(&backup, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not serialize backup: %w", err)
	}
	return string(data), nil
}

// ImportBackup restores a snapshot. Existing farm records are replaced
// wholesale; the restore runs in one transaction so a bad file leaves the
// database untouched.
func (s *BackupService) ImportBackup(jsonText string) error {
	var backup BackupData
	if err := json.Unmarshal([]byte(jsonText), &backup); err != nil {
		return fmt.Errorf("invalid backup file: %w", err)
	}
	if backup.Version == "" {
		return fmt.Errorf("invalid backup file: missing version")
	}

	return s.WithTransaction(func(tx *gorm.DB) error {
		tables := []interface{}{
			&models.ProductionLog{},
			&models.FeedLog{},
			&models.Vaccination{},
			&models.Sale{},
			&models.Expense{},
			&models.Cage{},
			&models.Cycle{},
		}
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
				Unscoped().Delete(table).Error; err != nil {
				return fmt.Errorf("could not clear existing records: %w", err)
			}
		}

		if len(backup.Cycles) > 0 {
			if err := tx.Create(&backup.Cycles).Error; err != nil {
				return fmt.Errorf("could not restore cycles: %w", err)
			}
		}
		if len(backup.Cages) > 0 {
			if err := tx.Create(&backup.Cages).Error; err != nil {
				return fmt.Errorf("could not restore cages: %w", err)
			}
		}
		if len(backup.ProductionLogs) > 0 {
			if err := tx.Create(&backup.ProductionLogs).Error; err != nil {
				return fmt.Errorf("could not restore production logs: %w", err)
			}
		}
		if len(backup.FeedLogs) > 0 {
			if err := tx.Create(&backup.FeedLogs).Error; err != nil {
				return fmt.Errorf("could not restore feed logs: %w", err)
			}
		}
		if len(backup.Sales) > 0 {
			if err := tx.Create(&backup.Sales).Error; err != nil {
				return fmt.Errorf("could not restore sales: %w", err)
			}
		}
		if len(backup.Expenses) > 0 {
			if err := tx.Create(&backup.Expenses).Error; err != nil {
				return fmt.Errorf("could not restore expenses: %w", err)
			}
		}
		if len(backup.Vaccinations) > 0 {
			if err := tx.Create(&backup.Vaccinations).Error; err != nil {
				return fmt.Errorf("could not restore vaccinations: %w", err)
			}
		}
		return nil
	})
}
