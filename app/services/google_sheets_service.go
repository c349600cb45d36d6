package services

import (
	"context"
	"fmt"
	"time"

	"PoultryApp/app/metrics"
	"PoultryApp/app/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"gorm.io/gorm"
)

// GoogleSheetsService pushes daily farm reports to a Google spreadsheet
type GoogleSheetsService struct {
	*BaseService
}

// NewGoogleSheetsService creates a new Google Sheets service
func NewGoogleSheetsService() *GoogleSheetsService {
	return &GoogleSheetsService{BaseService: NewBaseService()}
}

// GetConfig retrieves the sheets configuration, creating a disabled default
// on first access.
func (s *GoogleSheetsService) GetConfig() (*models.SheetsConfig, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}

	var config models.SheetsConfig
	result := s.GetDB().First(&config)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			config = models.SheetsConfig{
				IsEnabled:      false,
				SheetName:      "Reports",
				AutoSync:       false,
				SyncInterval:   60, // minutes
				SyncMode:       "daily",
				SyncTime:       "20:00",
				LastSyncStatus: "pending",
			}
			if err := s.GetDB().Create(&config).Error; err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to get config: %w", result.Error)
		}
	}

	return &config, nil
}

// SaveConfig saves the sheets configuration
func (s *GoogleSheetsService) SaveConfig(config *models.SheetsConfig) error {
	if err := s.EnsureDB(); err != nil {
		return err
	}
	if config.ID == 0 {
		return s.GetDB().Create(config).Error
	}
	return s.GetDB().Save(config).Error
}

// TestConnection verifies the service-account credentials can reach the
// configured spreadsheet.
func (s *GoogleSheetsService) TestConnection(config *models.SheetsConfig) error {
	if config.PrivateKey == "" || config.SpreadsheetID == "" {
		return fmt.Errorf("missing credentials or spreadsheet ID")
	}

	ctx := context.Background()
	srv, err := s.sheetsClient(ctx, config)
	if err != nil {
		return err
	}

	if _, err := srv.Spreadsheets.Get(config.SpreadsheetID).Do(); err != nil {
		return fmt.Errorf("unable to access spreadsheet: %w", err)
	}
	return nil
}

func (s *GoogleSheetsService) sheetsClient(ctx context.Context, config *models.SheetsConfig) (*sheets.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, []byte(config.PrivateKey), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// ReportData is one daily report row for the spreadsheet
type ReportData struct {
	Date          string  `json:"date"`
	EggsCollected int     `json:"eggs_collected"`
	LayingPercent float64 `json:"laying_percent"`
	Mortality     int     `json:"mortality"`
	FeedKg        float64 `json:"feed_kg"`
	FeedCost      float64 `json:"feed_cost"`
	Revenue       float64 `json:"revenue"`
	Expenses      float64 `json:"expenses"`
}

// GenerateDailyReport aggregates one day's records across the whole farm
func (s *GoogleSheetsService) GenerateDailyReport(date time.Time) (*ReportData, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}

	day := date.Format("2006-01-02")
	report := &ReportData{Date: day}

	var logs []models.ProductionLog
	if err := s.GetDB().Where("date = ?", day).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to read production logs: %w", err)
	}
	opening := 0
	for _, l := range logs {
		report.EggsCollected += l.EggsCollected
		report.Mortality += l.Mortality
		opening += l.OpeningBirds
	}
	report.LayingPercent = metrics.LayingPercentage(report.EggsCollected, opening, 1)

	var feedLogs []models.FeedLog
	if err := s.GetDB().Where("date = ?", day).Find(&feedLogs).Error; err != nil {
		return nil, fmt.Errorf("failed to read feed logs: %w", err)
	}
	for _, f := range feedLogs {
		report.FeedKg += f.Amount
		report.FeedCost += f.Cost
	}

	var revenue float64
	s.GetDB().Model(&models.Sale{}).
		Where("date = ?", day).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue)
	report.Revenue = revenue

	var expenses float64
	s.GetDB().Model(&models.Expense{}).
		Where("date = ?", day).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&expenses)
	report.Expenses = expenses

	return report, nil
}

// findExistingRowIndex finds the 1-indexed row for a date, -1 if not found
func (s *GoogleSheetsService) findExistingRowIndex(srv *sheets.Service, config *models.SheetsConfig, date string) (int, error) {
	sheetRange := fmt.Sprintf("%s!A:A", config.SheetName)
	resp, err := srv.Spreadsheets.Values.Get(config.SpreadsheetID, sheetRange).Do()
	if err != nil {
		return -1, err
	}

	for i, row := range resp.Values {
		if len(row) > 0 {
			if dateStr, ok := row[0].(string); ok && dateStr == date {
				return i + 1, nil
			}
		}
	}
	return -1, nil
}

// SendReport writes a report row to the spreadsheet, updating in place when
// a row for the date already exists.
func (s *GoogleSheetsService) SendReport(config *models.SheetsConfig, report *ReportData) error {
	if !config.IsEnabled {
		return fmt.Errorf("Google Sheets integration is disabled")
	}
	if config.PrivateKey == "" || config.SpreadsheetID == "" {
		return fmt.Errorf("missing credentials or spreadsheet ID")
	}

	ctx := context.Background()
	srv, err := s.sheetsClient(ctx, config)
	if err != nil {
		return err
	}

	if err := s.ensureHeaders(srv, config); err != nil {
		return fmt.Errorf("failed to ensure headers: %w", err)
	}

	row := []interface{}{
		report.Date,
		report.EggsCollected,
		report.LayingPercent,
		report.Mortality,
		report.FeedKg,
		report.FeedCost,
		report.Revenue,
		report.Expenses,
	}

	rowIndex, err := s.findExistingRowIndex(srv, config, report.Date)
	if err != nil {
		return fmt.Errorf("failed to check existing row: %w", err)
	}

	valueRange := &sheets.ValueRange{Values: [][]interface{}{row}}

	if rowIndex > 0 {
		sheetRange := fmt.Sprintf("%s!A%d:H%d", config.SheetName, rowIndex, rowIndex)
		_, err = srv.Spreadsheets.Values.Update(config.SpreadsheetID, sheetRange, valueRange).
			ValueInputOption("USER_ENTERED").
			Do()
		if err != nil {
			return fmt.Errorf("unable to update data: %w", err)
		}
	} else {
		sheetRange := fmt.Sprintf("%s!A:H", config.SheetName)
		_, err = srv.Spreadsheets.Values.Append(config.SpreadsheetID, sheetRange, valueRange).
			ValueInputOption("USER_ENTERED").
			Do()
		if err != nil {
			return fmt.Errorf("unable to append data: %w", err)
		}
	}

	now := time.Now()
	config.LastSyncAt = &now
	config.LastSyncStatus = "success"
	config.LastSyncError = ""
	config.TotalSyncs++
	s.GetDB().Save(config)

	return nil
}

// ensureHeaders writes the header row when the sheet is empty
func (s *GoogleSheetsService) ensureHeaders(srv *sheets.Service, config *models.SheetsConfig) error {
	sheetRange := fmt.Sprintf("%s!A1:H1", config.SheetName)
	resp, err := srv.Spreadsheets.Values.Get(config.SpreadsheetID, sheetRange).Do()
	if err != nil {
		return err
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) < 8 {
		headers := []interface{}{
			"date",
			"eggs_collected",
			"laying_percent",
			"mortality",
			"feed_kg",
			"feed_cost",
			"revenue",
			"expenses",
		}
		valueRange := &sheets.ValueRange{Values: [][]interface{}{headers}}
		_, err := srv.Spreadsheets.Values.Update(config.SpreadsheetID, sheetRange, valueRange).
			ValueInputOption("USER_ENTERED").
			Do()
		return err
	}
	return nil
}

// SyncNow generates today's report and pushes it immediately
func (s *GoogleSheetsService) SyncNow() error {
	config, err := s.GetConfig()
	if err != nil {
		return err
	}
	if !config.IsEnabled {
		return fmt.Errorf("Google Sheets integration is disabled")
	}

	report, err := s.GenerateDailyReport(time.Now())
	if err != nil {
		s.recordSyncError(config, err)
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if err := s.SendReport(config, report); err != nil {
		s.recordSyncError(config, err)
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

func (s *GoogleSheetsService) recordSyncError(config *models.SheetsConfig, err error) {
	now := time.Now()
	config.LastSyncStatus = "error"
	config.LastSyncError = err.Error()
	config.LastSyncAt = &now
	s.GetDB().Save(config)
}
