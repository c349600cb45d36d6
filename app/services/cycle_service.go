package services

import (
	"fmt"
	"time"

	"PoultryApp/app/models"

	"gorm.io/gorm"
)

// CycleService manages production cycles
type CycleService struct {
	*BaseService
}

// NewCycleService creates a new cycle service
func NewCycleService() *CycleService {
	return &CycleService{BaseService: NewBaseService()}
}

// GetCycles returns all cycles, newest first
func (s *CycleService) GetCycles() ([]models.Cycle, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var cycles []models.Cycle
	err := s.GetDB().Order("start_date DESC").Find(&cycles).Error
	return cycles, err
}

// GetCycle returns a single cycle by id
func (s *CycleService) GetCycle(id uint) (*models.Cycle, error) {
	var cycle models.Cycle
	if err := s.First(&cycle, id); err != nil {
		return nil, fmt.Errorf("cycle %d not found: %w", id, err)
	}
	return &cycle, nil
}

// GetActiveCycle returns the currently active cycle, or nil when none is
func (s *CycleService) GetActiveCycle() (*models.Cycle, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var cycle models.Cycle
	err := s.GetDB().Where("status = ?", "active").First(&cycle).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// CreateCycle creates a cycle. Only one cycle may be active at a time, so
// creating an active cycle completes every other active one.
func (s *CycleService) CreateCycle(cycle *models.Cycle) error {
	if cycle.Name == "" {
		return fmt.Errorf("cycle name is required")
	}
	if cycle.Status == "" {
		cycle.Status = "active"
	}
	if cycle.StartDate == "" {
		cycle.StartDate = time.Now().Format("2006-01-02")
	}

	return s.WithTransaction(func(tx *gorm.DB) error {
		if cycle.Status == "active" {
			if err := completeActiveCycles(tx); err != nil {
				return err
			}
		}
		return tx.Create(cycle).Error
	})
}

// UpdateCycle saves changes to a cycle, applying the single-active rule when
// the cycle is being (re)activated.
func (s *CycleService) UpdateCycle(cycle *models.Cycle) error {
	if cycle.ID == 0 {
		return fmt.Errorf("cycle id is required")
	}
	return s.WithTransaction(func(tx *gorm.DB) error {
		if cycle.Status == "active" {
			if err := tx.Model(&models.Cycle{}).
				Where("status = ? AND id <> ?", "active", cycle.ID).
				Updates(map[string]interface{}{
					"status":   "completed",
					"end_date": time.Now().Format("2006-01-02"),
				}).Error; err != nil {
				return err
			}
		}
		return tx.Save(cycle).Error
	})
}

// CompleteCycle marks a cycle completed as of today
func (s *CycleService) CompleteCycle(id uint) error {
	cycle, err := s.GetCycle(id)
	if err != nil {
		return err
	}
	endDate := time.Now().Format("2006-01-02")
	cycle.Status = "completed"
	cycle.EndDate = &endDate
	return s.Save(cycle)
}

// DeleteCycle removes a cycle and everything it owns: cages, production
// logs, feed logs, sales, expenses and vaccinations. The storage layer does
// not cascade, so this service does.
func (s *CycleService) DeleteCycle(id uint) error {
	return s.WithTransaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&models.ProductionLog{},
			&models.FeedLog{},
			&models.Sale{},
			&models.Expense{},
			&models.Vaccination{},
			&models.Cage{},
		} {
			if err := tx.Where("cycle_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Cycle{}, id).Error
	})
}

// completeActiveCycles marks all active cycles completed as of today.
func completeActiveCycles(tx *gorm.DB) error {
	return tx.Model(&models.Cycle{}).
		Where("status = ?", "active").
		Updates(map[string]interface{}{
			"status":   "completed",
			"end_date": time.Now().Format("2006-01-02"),
		}).Error
}
