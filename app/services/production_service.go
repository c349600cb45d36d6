package services

import (
	"fmt"
	"time"

	"PoultryApp/app/metrics"
	"PoultryApp/app/models"

	"gorm.io/gorm"
)

// ProductionService manages daily production logs
type ProductionService struct {
	*BaseService
}

// NewProductionService creates a new production service
func NewProductionService() *ProductionService {
	return &ProductionService{BaseService: NewBaseService()}
}

// GetLogs returns production logs for a cycle (0 = all), oldest first
func (s *ProductionService) GetLogs(cycleID uint) ([]models.ProductionLog, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var logs []models.ProductionLog
	query := s.GetDB().Order("date ASC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&logs).Error
	return logs, err
}

// GetCageLogs returns production logs for one cage, oldest first
func (s *ProductionService) GetCageLogs(cageID uint) ([]models.ProductionLog, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var logs []models.ProductionLog
	err := s.GetDB().Where("cage_id = ?", cageID).Order("date ASC").Find(&logs).Error
	return logs, err
}

// OpeningBirds suggests the opening count for a cage on a date: the closing
// count of the most recent earlier log, falling back to the cage's current
// bird count.
func (s *ProductionService) OpeningBirds(cageID uint, date string) (int, error) {
	if err := s.EnsureDB(); err != nil {
		return 0, err
	}

	var prev models.ProductionLog
	err := s.GetDB().
		Where("cage_id = ? AND date < ?", cageID, date).
		Order("date DESC").
		First(&prev).Error
	if err == nil {
		return prev.ClosingBirds, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}

	var cage models.Cage
	if err := s.GetDB().First(&cage, cageID).Error; err != nil {
		return 0, fmt.Errorf("cage %d not found: %w", cageID, err)
	}
	return cage.CurrentBirds, nil
}

// RecordDailyLog saves one day's record for a cage. A second entry for the
// same cage and date replaces the first. Derived fields (closing birds,
// flock age, laying percentage) are computed here so callers only supply
// raw counts, and the cage's running totals are rebuilt afterwards.
func (s *ProductionService) RecordDailyLog(entry *models.ProductionLog) (*models.ProductionLog, error) {
	if entry.CageID == 0 {
		return nil, fmt.Errorf("production log must belong to a cage")
	}
	if entry.Date == "" {
		entry.Date = time.Now().Format("2006-01-02")
	}

	var cage models.Cage
	if err := s.First(&cage, entry.CageID); err != nil {
		return nil, fmt.Errorf("cage %d not found: %w", entry.CageID, err)
	}
	if entry.CycleID == 0 {
		entry.CycleID = cage.CycleID
	}

	if entry.OpeningBirds == 0 {
		opening, err := s.OpeningBirds(entry.CageID, entry.Date)
		if err != nil {
			return nil, err
		}
		entry.OpeningBirds = opening
	}

	entry.ClosingBirds = entry.OpeningBirds - entry.Mortality - entry.BirdsSold
	if entry.ClosingBirds < 0 {
		entry.ClosingBirds = 0
	}
	entry.ProductionPercent = metrics.LayingPercentage(entry.EggsCollected, entry.OpeningBirds, 1)

	if entry.FlockAge == 0 {
		if age, err := s.flockAge(entry.CycleID, entry.Date); err == nil {
			entry.FlockAge = age
		}
	}

	err := s.WithTransaction(func(tx *gorm.DB) error {
		var existing models.ProductionLog
		err := tx.Where("cage_id = ? AND date = ?", entry.CageID, entry.Date).First(&existing).Error
		if err == nil {
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			return tx.Save(entry).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	cages := NewCageService()
	cages.SetDB(s.GetDB())
	if err := cages.RecalculateTotals(entry.CageID); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteLog removes a production log and rebuilds the cage totals
func (s *ProductionService) DeleteLog(id uint) error {
	var entry models.ProductionLog
	if err := s.First(&entry, id); err != nil {
		return fmt.Errorf("production log %d not found: %w", id, err)
	}
	if err := s.Delete(&models.ProductionLog{}, id); err != nil {
		return err
	}
	cages := NewCageService()
	cages.SetDB(s.GetDB())
	return cages.RecalculateTotals(entry.CageID)
}

// flockAge computes the age in days on a date from the cycle start date.
func (s *ProductionService) flockAge(cycleID uint, date string) (int, error) {
	var cycle models.Cycle
	if err := s.First(&cycle, cycleID); err != nil {
		return 0, err
	}
	start, err := time.Parse("2006-01-02", cycle.StartDate)
	if err != nil {
		return 0, err
	}
	asOf, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, err
	}
	return metrics.FlockAgeInDays(start, asOf), nil
}

// CycleSummary returns the headline numbers for a cycle
func (s *ProductionService) CycleSummary(cycleID uint) (*metrics.CycleResult, error) {
	logs, err := s.GetLogs(cycleID)
	if err != nil {
		return nil, err
	}

	var cages []models.Cage
	if err := s.GetDB().Where("cycle_id = ?", cycleID).Find(&cages).Error; err != nil {
		return nil, err
	}
	var feedLogs []models.FeedLog
	if err := s.GetDB().Where("cycle_id = ?", cycleID).Find(&feedLogs).Error; err != nil {
		return nil, err
	}

	result := metrics.CycleMetrics(logs, cages, feedLogs)
	return &result, nil
}

// CageDetail bundles a cage with its logs and per-cage metrics for the
// cage drill-down view.
type CageDetail struct {
	Cage           models.Cage            `json:"cage"`
	Logs           []models.ProductionLog `json:"logs"`
	AgeInDays      int                    `json:"age_in_days"`
	TotalEggs      int                    `json:"total_eggs"`
	AvgProduction  float64                `json:"avg_production"`
	MortalityRate  float64                `json:"mortality_rate"`
	WeeklyAverages []float64              `json:"weekly_averages"`
}

// GetCageDetail assembles the drill-down data for one cage
func (s *ProductionService) GetCageDetail(cageID uint) (*CageDetail, error) {
	var cage models.Cage
	if err := s.First(&cage, cageID); err != nil {
		return nil, fmt.Errorf("cage %d not found: %w", cageID, err)
	}

	logs, err := s.GetCageLogs(cageID)
	if err != nil {
		return nil, err
	}

	detail := &CageDetail{Cage: cage, Logs: logs}

	if age, err := s.flockAge(cage.CycleID, time.Now().Format("2006-01-02")); err == nil {
		detail.AgeInDays = age
	}

	var production []float64
	for _, l := range logs {
		detail.TotalEggs += l.EggsCollected
		production = append(production, l.ProductionPercent)
	}
	if len(production) > 0 {
		sum := 0.0
		for _, p := range production {
			sum += p
		}
		detail.AvgProduction = sum / float64(len(production))
	}
	detail.MortalityRate = metrics.MortalityPercent(cage.Mortality, cage.InitialBirds)
	detail.WeeklyAverages = metrics.MovingAverage(production, 7)

	return detail, nil
}
