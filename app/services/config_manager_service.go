package services

import (
	"fmt"

	"PoultryApp/app/config"
	"PoultryApp/app/database"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConfigManagerService manages application configuration and the first-run
// setup flow.
type ConfigManagerService struct{}

// NewConfigManagerService creates a new ConfigManagerService
func NewConfigManagerService() *ConfigManagerService {
	return &ConfigManagerService{}
}

// GetConfig returns the current configuration
func (s *ConfigManagerService) GetConfig() (*config.AppConfig, error) {
	return config.LoadConfig()
}

// SaveConfig saves the configuration
func (s *ConfigManagerService) SaveConfig(cfg *config.AppConfig) error {
	return config.SaveConfig(cfg)
}

// ConfigExists checks if configuration exists
func (s *ConfigManagerService) ConfigExists() (bool, error) {
	return config.ConfigExists()
}

// IsFirstRun reports whether the setup wizard should be shown
func (s *ConfigManagerService) IsFirstRun() (bool, error) {
	exists, err := config.ConfigExists()
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return false, err
	}
	return cfg.FirstRun, nil
}

// CreateDefaultConfig creates a default configuration
func (s *ConfigManagerService) CreateDefaultConfig() (*config.AppConfig, error) {
	return config.CreateDefaultConfig()
}

// TestDatabaseConnection tries a server-mode connection with the given
// parameters without touching the global connection.
func (s *ConfigManagerService) TestDatabaseConnection(dbConfig config.DatabaseConfig) error {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.Username,
		dbConfig.Password,
		dbConfig.Database,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// CompleteSetup finishes the first-run wizard: persists the configuration,
// opens the database and seeds defaults.
func (s *ConfigManagerService) CompleteSetup(cfg *config.AppConfig) error {
	cfg.FirstRun = false
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if err := database.Initialize(cfg); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Persist the chosen currency as a farm setting so reports pick it up
	if cfg.Farm.Currency != "" {
		settings := NewSettingsService()
		settings.SetDB(database.GetDB())
		if err := settings.SetSetting("currency", cfg.Farm.Currency, "string", "general"); err != nil {
			return fmt.Errorf("failed to store currency setting: %w", err)
		}
	}
	return nil
}
