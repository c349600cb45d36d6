package services

import (
	"fmt"
	"time"

	"PoultryApp/app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SettingsService manages farm settings and user PINs
type SettingsService struct {
	*BaseService
}

// NewSettingsService creates a new settings service
func NewSettingsService() *SettingsService {
	return &SettingsService{BaseService: NewBaseService()}
}

// GetSettings returns all settings as a key/value map
func (s *SettingsService) GetSettings() (map[string]string, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var settings []models.FarmSetting
	if err := s.GetDB().Find(&settings).Error; err != nil {
		return nil, err
	}
	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}

// GetSetting returns one setting value, or the fallback when unset
func (s *SettingsService) GetSetting(key, fallback string) string {
	if s.GetDB() == nil {
		return fallback
	}
	var setting models.FarmSetting
	if err := s.GetDB().Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	return setting.Value
}

// SetSetting creates or updates a setting
func (s *SettingsService) SetSetting(key, value, settingType, category string) error {
	if err := s.EnsureDB(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("setting key is required")
	}
	if settingType == "" {
		settingType = "string"
	}
	if category == "" {
		category = "general"
	}

	var setting models.FarmSetting
	err := s.GetDB().Where("key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return s.Create(&models.FarmSetting{
			Key: key, Value: value, Type: settingType, Category: category,
		})
	}
	if err != nil {
		return err
	}
	setting.Value = value
	setting.Type = settingType
	setting.Category = category
	return s.Save(&setting)
}

// GetUsers returns all users (PIN hashes are never serialized)
func (s *SettingsService) GetUsers() ([]models.User, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var users []models.User
	err := s.GetDB().Order("name ASC").Find(&users).Error
	return users, err
}

// CreateUser creates a user with a bcrypt-hashed PIN
func (s *SettingsService) CreateUser(name, pin string) (*models.User, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if len(pin) < 4 {
		return nil, fmt.Errorf("PIN must be at least 4 digits")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash PIN: %w", err)
	}

	user := &models.User{Name: name, PINHash: string(hash), IsActive: true}
	if err := s.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUserPIN replaces a user's PIN
func (s *SettingsService) SetUserPIN(userID uint, pin string) error {
	if len(pin) < 4 {
		return fmt.Errorf("PIN must be at least 4 digits")
	}
	var user models.User
	if err := s.First(&user, userID); err != nil {
		return fmt.Errorf("user %d not found: %w", userID, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash PIN: %w", err)
	}
	user.PINHash = string(hash)
	return s.Save(&user)
}

// VerifyPIN checks a PIN against active users and returns the matching
// user, recording the login time. Returns nil with no error when the PIN
// matches nobody.
func (s *SettingsService) VerifyPIN(pin string) (*models.User, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.GetDB().Where("is_active = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}

	for i := range users {
		if bcrypt.CompareHashAndPassword([]byte(users[i].PINHash), []byte(pin)) == nil {
			now := time.Now()
			users[i].LastLoginAt = &now
			if err := s.Save(&users[i]); err != nil {
				return nil, err
			}
			return &users[i], nil
		}
	}
	return nil, nil
}
