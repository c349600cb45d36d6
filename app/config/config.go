package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// Farm Information
	Farm FarmConfig `json:"farm"`

	// System Configuration
	System SystemConfig `json:"system"`

	// First run flag
	FirstRun bool `json:"first_run"`
}

// DatabaseConfig holds storage settings. Mode "local" uses the embedded
// SQLite file; "server" connects to a shared PostgreSQL instance so several
// devices can work against one farm database.
type DatabaseConfig struct {
	Mode     string `json:"mode"` // "local", "server"
	Path     string `json:"path"` // local mode, optional override
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"ssl_mode"`
}

// FarmConfig holds farm information
type FarmConfig struct {
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Currency string `json:"currency"` // "GHS", "USD", "GBP"
}

// SystemConfig holds system settings
type SystemConfig struct {
	DataPath    string `json:"data_path"`
	Language    string `json:"language"`
	MonitorPort int    `json:"monitor_port"` // LAN stats server, 0 disables
}

// AppDir returns the per-user application directory, creating it if needed.
func AppDir() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		appData = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(appData, "PoultryApp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create app directory: %w", err)
	}
	return dir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ConfigExists reports whether config.json has been written yet
func ConfigExists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// LoadConfig loads configuration from config.json and decrypts the stored
// database password.
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	if cfg.Database.Password != "" {
		plain, err := decrypt(cfg.Database.Password)
		if err != nil {
			return nil, fmt.Errorf("could not decrypt database password: %w", err)
		}
		cfg.Database.Password = plain
	}

	return &cfg, nil
}

// SaveConfig writes configuration to config.json, encrypting the database
// password before it touches disk.
func SaveConfig(cfg *AppConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	toWrite := *cfg
	if toWrite.Database.Password != "" {
		encrypted, err := encrypt(toWrite.Database.Password)
		if err != nil {
			return fmt.Errorf("could not encrypt database password: %w", err)
		}
		toWrite.Database.Password = encrypted
	}

	data, err := json.MarshalIndent(&toWrite, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return nil
}

// CreateDefaultConfig writes the default configuration to disk and returns
// it.
func CreateDefaultConfig() (*AppConfig, error) {
	cfg := DefaultConfig()
	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used on first run.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Mode:    "local",
			Port:    5432,
			SSLMode: "disable",
		},
		Farm: FarmConfig{
			Currency: "GHS",
		},
		System: SystemConfig{
			Language:    "en",
			MonitorPort: 8090,
		},
		FirstRun: true,
	}
}
