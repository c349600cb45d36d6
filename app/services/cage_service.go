package services

import (
	"fmt"

	"PoultryApp/app/models"

	"gorm.io/gorm"
)

// CageService manages cages (bird batches) within a cycle
type CageService struct {
	*BaseService
}

// NewCageService creates a new cage service
func NewCageService() *CageService {
	return &CageService{BaseService: NewBaseService()}
}

// GetCages returns cages, optionally filtered by cycle (0 = all)
func (s *CageService) GetCages(cycleID uint) ([]models.Cage, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var cages []models.Cage
	query := s.GetDB().Order("name ASC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&cages).Error
	return cages, err
}

// GetCage returns a single cage by id
func (s *CageService) GetCage(id uint) (*models.Cage, error) {
	var cage models.Cage
	if err := s.First(&cage, id); err != nil {
		return nil, fmt.Errorf("cage %d not found: %w", id, err)
	}
	return &cage, nil
}

// CreateCage creates a cage under a cycle
func (s *CageService) CreateCage(cage *models.Cage) error {
	if cage.CycleID == 0 {
		return fmt.Errorf("cage must belong to a cycle")
	}
	if cage.Name == "" {
		return fmt.Errorf("cage name is required")
	}
	if cage.Capacity == 0 {
		cage.Capacity = 500
	}
	if cage.Breed == "" {
		cage.Breed = "Mixed"
	}
	if cage.CurrentBirds == 0 {
		cage.CurrentBirds = cage.InitialBirds
	}
	if cage.Status == "" {
		cage.Status = "active"
	}
	return s.Create(cage)
}

// UpdateCage saves changes to a cage
func (s *CageService) UpdateCage(cage *models.Cage) error {
	if cage.ID == 0 {
		return fmt.Errorf("cage id is required")
	}
	return s.Save(cage)
}

// DeleteCage removes a cage and its production logs
func (s *CageService) DeleteCage(id uint) error {
	return s.WithTransaction(func(tx *gorm.DB) error {
		if err := tx.Where("cage_id = ?", id).Delete(&models.ProductionLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cage{}, id).Error
	})
}

// RecalculateTotals rebuilds a cage's running counters from its production
// logs. Used after imports and log edits so the cage row stays consistent
// with the daily records.
func (s *CageService) RecalculateTotals(cageID uint) error {
	cage, err := s.GetCage(cageID)
	if err != nil {
		return err
	}

	var logs []models.ProductionLog
	if err := s.GetDB().Where("cage_id = ?", cageID).Order("date ASC").Find(&logs).Error; err != nil {
		return err
	}

	totalEggs := 0
	totalMortality := 0
	totalSold := 0
	for _, l := range logs {
		totalEggs += l.EggsCollected
		totalMortality += l.Mortality
		totalSold += l.BirdsSold
	}

	cage.TotalEggs = totalEggs
	cage.Mortality = totalMortality
	cage.CurrentBirds = cage.InitialBirds - totalMortality - totalSold
	if cage.CurrentBirds < 0 {
		cage.CurrentBirds = 0
	}
	return s.Save(cage)
}
