package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"PoultryApp/app/config"
	"PoultryApp/app/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// Initialize opens the farm database. Local mode (the default) uses an
// embedded SQLite file under the app directory; server mode connects to a
// shared PostgreSQL instance from config.
func Initialize(cfg *config.AppConfig) error {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var err error
	if cfg != nil && cfg.Database.Mode == "server" {
		dsn := buildPostgresDSN(&cfg.Database)
		log.Printf("Connecting to farm database server: host=%s port=%d dbname=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	} else {
		dbPath, pathErr := localDBPath(cfg)
		if pathErr != nil {
			return pathErr
		}
		log.Printf("Opening local farm database: %s", dbPath)
		db, err = gorm.Open(sqlite.Open(dbPath), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := SeedInitialData(); err != nil {
		log.Printf("Warning: failed to seed initial data: %v", err)
	}

	return nil
}

// localDBPath resolves the SQLite file location, creating its directory.
func localDBPath(cfg *config.AppConfig) (string, error) {
	if cfg != nil && cfg.Database.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
		return cfg.Database.Path, nil
	}
	dir, err := config.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "farm.db"), nil
}

// buildPostgresDSN constructs the server-mode connection string.
// DATABASE_URL overrides config when set (development convenience).
func buildPostgresDSN(dbCfg *config.DatabaseConfig) string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		log.Printf("Using DATABASE_URL for database connection")
		return dsn
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.Username, dbCfg.Password, dbCfg.Database, dbCfg.SSLMode)
}

// RunMigrations creates or updates the schema
func RunMigrations() error {
	err := db.AutoMigrate(
		// Flock models
		&models.Cycle{},
		&models.Cage{},

		// Daily records
		&models.ProductionLog{},
		&models.FeedLog{},
		&models.Vaccination{},

		// Money
		&models.Sale{},
		&models.Expense{},

		// Config models
		&models.FarmSetting{},
		&models.User{},
		&models.SheetsConfig{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	createIndexes()
	return nil
}

// createIndexes creates composite indexes AutoMigrate does not cover
func createIndexes() {
	// Daily-record lookups are always (owner, date)
	db.Exec("CREATE INDEX IF NOT EXISTS idx_production_logs_cage_date ON production_logs(cage_id, date)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_feed_logs_cycle_date ON feed_logs(cycle_id, date)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sales_cycle_date ON sales(cycle_id, date)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_expenses_cycle_date ON expenses(cycle_id, date)")
}

// SeedInitialData seeds default settings on first run
func SeedInitialData() error {
	settings := []models.FarmSetting{
		{Key: "currency", Value: "GHS", Type: "string", Category: "general"},
		{Key: "currency_symbol", Value: "₵", Type: "string", Category: "general"},
		{Key: "crate_size", Value: "30", Type: "number", Category: "general"},
		{Key: "avg_egg_weight", Value: "60", Type: "number", Category: "general"},
		{Key: "laying_start_age", Value: "133", Type: "number", Category: "general"},
		{Key: "default_cage_capacity", Value: "500", Type: "number", Category: "general"},
	}

	for _, setting := range settings {
		var count int64
		db.Model(&models.FarmSetting{}).Where("key = ?", setting.Key).Count(&count)
		if count == 0 {
			db.Create(&setting)
		}
	}

	return nil
}

// Close closes the database connection
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction
func Transaction(fn func(*gorm.DB) error) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	return db.Transaction(fn)
}
