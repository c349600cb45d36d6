package services

import (
	"fmt"
	"log"
	"time"
)

// ReportSchedulerService runs periodic spreadsheet syncs, either at a fixed
// time each day or at a minute interval.
type ReportSchedulerService struct {
	sheets   *GoogleSheetsService
	ticker   *time.Ticker
	stopChan chan bool
	running  bool
}

// NewReportSchedulerService creates a scheduler bound to the sheets service
func NewReportSchedulerService(sheets *GoogleSheetsService) *ReportSchedulerService {
	return &ReportSchedulerService{
		sheets: sheets,
		// Buffered so Stop never blocks while the loop is in its initial wait
		stopChan: make(chan bool, 1),
	}
}

// Start begins the scheduler. A disabled config is not an error; the
// scheduler just declines to run.
func (s *ReportSchedulerService) Start() error {
	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	config, err := s.sheets.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	if !config.IsEnabled || !config.AutoSync {
		log.Println("Spreadsheet auto-sync is disabled")
		return nil
	}

	s.running = true
	go s.run()

	log.Println("Report scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *ReportSchedulerService) Stop() {
	if !s.running {
		return
	}

	s.stopChan <- true
	s.running = false

	if s.ticker != nil {
		s.ticker.Stop()
	}

	log.Println("Report scheduler stopped")
}

// run is the main scheduler loop
func (s *ReportSchedulerService) run() {
	// Let the app finish starting before the first check
	time.Sleep(30 * time.Second)

	for {
		config, err := s.sheets.GetConfig()
		if err != nil {
			log.Printf("Error getting config: %v", err)
			time.Sleep(1 * time.Minute)
			continue
		}

		if !config.IsEnabled || !config.AutoSync {
			log.Println("Auto-sync disabled, stopping scheduler")
			s.running = false
			return
		}

		var duration time.Duration
		if config.SyncMode == "daily" {
			duration = s.timeUntilDailySync(config.SyncTime)
		} else {
			duration = time.Duration(config.SyncInterval) * time.Minute
		}

		log.Printf("Next spreadsheet sync scheduled in %v", duration)
		s.ticker = time.NewTicker(duration)

		select {
		case <-s.ticker.C:
			log.Println("Starting scheduled spreadsheet sync...")
			if err := s.executeSync(); err != nil {
				log.Printf("Scheduled sync failed: %v", err)
			} else {
				log.Println("Scheduled sync completed successfully")
			}
			s.ticker.Stop()

		case <-s.stopChan:
			log.Println("Scheduler stop signal received")
			if s.ticker != nil {
				s.ticker.Stop()
			}
			return
		}
	}
}

// timeUntilDailySync calculates the wait until the configured "HH:MM",
// rolling to tomorrow when today's slot has passed.
func (s *ReportSchedulerService) timeUntilDailySync(syncTime string) time.Duration {
	now := time.Now()

	targetTime, err := time.Parse("15:04", syncTime)
	if err != nil {
		log.Printf("Invalid sync time format: %s, using 20:00", syncTime)
		targetTime, _ = time.Parse("15:04", "20:00")
	}

	target := time.Date(
		now.Year(), now.Month(), now.Day(),
		targetTime.Hour(), targetTime.Minute(), 0, 0,
		now.Location(),
	)
	if now.After(target) {
		target = target.Add(24 * time.Hour)
	}
	return target.Sub(now)
}

// executeSync generates and sends yesterday's report (the last completed
// day).
func (s *ReportSchedulerService) executeSync() error {
	yesterday := time.Now().AddDate(0, 0, -1)
	report, err := s.sheets.GenerateDailyReport(yesterday)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	config, err := s.sheets.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	if err := s.sheets.SendReport(config, report); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

// Restart stops and starts the scheduler after config changes
func (s *ReportSchedulerService) Restart() error {
	s.Stop()
	time.Sleep(1 * time.Second)
	return s.Start()
}

// GetStatus returns the current scheduler status for the settings screen
func (s *ReportSchedulerService) GetStatus() map[string]interface{} {
	config, _ := s.sheets.GetConfig()

	status := map[string]interface{}{
		"running": s.running,
		"enabled": false,
	}
	if config != nil {
		status["enabled"] = config.IsEnabled && config.AutoSync
		status["sync_mode"] = config.SyncMode
		status["sync_interval"] = config.SyncInterval
		status["sync_time"] = config.SyncTime
		status["last_sync_at"] = config.LastSyncAt
		status["last_sync_status"] = config.LastSyncStatus
		status["total_syncs"] = config.TotalSyncs
	}
	return status
}
