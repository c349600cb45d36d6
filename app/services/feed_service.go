package services

import (
	"fmt"
	"time"

	"PoultryApp/app/models"

	"gorm.io/gorm"
)

// FeedService manages feed consumption records
type FeedService struct {
	*BaseService
}

// NewFeedService creates a new feed service
func NewFeedService() *FeedService {
	return &FeedService{BaseService: NewBaseService()}
}

// GetFeedLogs returns feed logs for a cycle (0 = all), oldest first
func (s *FeedService) GetFeedLogs(cycleID uint) ([]models.FeedLog, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var logs []models.FeedLog
	query := s.GetDB().Order("date ASC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&logs).Error
	return logs, err
}

// RecordFeedLog saves a day's feed record for a cycle. One record per cycle
// and date: recording the same day again overwrites amount, cost and notes
// while keeping the original creation time.
func (s *FeedService) RecordFeedLog(entry *models.FeedLog) (*models.FeedLog, error) {
	if entry.CycleID == 0 {
		return nil, fmt.Errorf("feed log must belong to a cycle")
	}
	if entry.Date == "" {
		entry.Date = time.Now().Format("2006-01-02")
	}

	err := s.WithTransaction(func(tx *gorm.DB) error {
		var existing models.FeedLog
		err := tx.Where("cycle_id = ? AND date = ?", entry.CycleID, entry.Date).First(&existing).Error
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
	return entry, nil
}

// DeleteFeedLog removes a feed record
func (s *FeedService) DeleteFeedLog(id uint) error {
	return s.Delete(&models.FeedLog{}, id)
}

// FeedTotals holds cycle-level feed aggregates
type FeedTotals struct {
	TotalAmount float64 `json:"total_amount"`
	TotalCost   float64 `json:"total_cost"`
	Days        int     `json:"days"`
	AvgPerDay   float64 `json:"avg_per_day"`
}

// GetFeedTotals sums a cycle's feed consumption and spend
func (s *FeedService) GetFeedTotals(cycleID uint) (*FeedTotals, error) {
	logs, err := s.GetFeedLogs(cycleID)
	if err != nil {
		return nil, err
	}

	totals := &FeedTotals{Days: len(logs)}
	for _, l := range logs {
		totals.TotalAmount += l.Amount
		totals.TotalCost += l.Cost
	}
	if totals.Days > 0 {
		totals.AvgPerDay = totals.TotalAmount / float64(totals.Days)
	}
	return totals, nil
}
