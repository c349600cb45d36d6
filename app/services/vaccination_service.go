package services

import (
	"fmt"
	"time"

	"PoultryApp/app/metrics"
	"PoultryApp/app/models"
)

// ScheduleItem is one entry in the standard vaccination program
type ScheduleItem struct {
	Day     int    `json:"day"`
	Vaccine string `json:"vaccine"`
	Method  string `json:"method"`
}

// standardSchedule is the default layer vaccination program, by flock age
// in days.
var standardSchedule = []ScheduleItem{
	{Day: 1, Vaccine: "Marek's Disease", Method: "injection"},
	{Day: 7, Vaccine: "Newcastle + Bronchitis", Method: "eye drop"},
	{Day: 14, Vaccine: "Gumboro (IBD)", Method: "drinking water"},
	{Day: 21, Vaccine: "Newcastle (Lasota)", Method: "drinking water"},
	{Day: 28, Vaccine: "Gumboro (IBD) booster", Method: "drinking water"},
	{Day: 42, Vaccine: "Fowl Pox", Method: "wing web"},
	{Day: 56, Vaccine: "Newcastle (Lasota) booster", Method: "drinking water"},
	{Day: 112, Vaccine: "Newcastle + Bronchitis booster", Method: "drinking water"},
}

// ScheduleStatus is a schedule item annotated with what actually happened
type ScheduleStatus struct {
	ScheduleItem
	Done      bool   `json:"done"`
	GivenDate string `json:"given_date,omitempty"`
	Overdue   bool   `json:"overdue"`
}

// VaccinationService manages vaccination records and the schedule view
type VaccinationService struct {
	*BaseService
}

// NewVaccinationService creates a new vaccination service
func NewVaccinationService() *VaccinationService {
	return &VaccinationService{BaseService: NewBaseService()}
}

// GetVaccinations returns vaccinations for a cycle (0 = all), oldest first
func (s *VaccinationService) GetVaccinations(cycleID uint) ([]models.Vaccination, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var records []models.Vaccination
	query := s.GetDB().Order("date ASC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&records).Error
	return records, err
}

// RecordVaccination saves a vaccination, filling in the flock age from the
// cycle start date when the caller leaves it at zero.
func (s *VaccinationService) RecordVaccination(record *models.Vaccination) error {
	if record.CycleID == 0 {
		return fmt.Errorf("vaccination must belong to a cycle")
	}
	if record.VaccineName == "" {
		return fmt.Errorf("vaccine name is required")
	}
	if record.Date == "" {
		record.Date = time.Now().Format("2006-01-02")
	}

	if record.FlockAge == 0 {
		var cycle models.Cycle
		if err := s.First(&cycle, record.CycleID); err == nil {
			if start, err := time.Parse("2006-01-02", cycle.StartDate); err == nil {
				if given, err := time.Parse("2006-01-02", record.Date); err == nil {
					record.FlockAge = metrics.FlockAgeInDays(start, given)
				}
			}
		}
	}

	return s.Create(record)
}

// UpdateVaccination saves changes to a vaccination record
func (s *VaccinationService) UpdateVaccination(record *models.Vaccination) error {
	if record.ID == 0 {
		return fmt.Errorf("vaccination id is required")
	}
	return s.Save(record)
}

// DeleteVaccination removes a vaccination record
func (s *VaccinationService) DeleteVaccination(id uint) error {
	return s.Delete(&models.Vaccination{}, id)
}

// GetScheduleStatus compares a cycle's records against the standard
// program. A schedule item counts as done when a record's flock age falls
// within three days of the scheduled day; undone items earlier than the
// current flock age are flagged overdue.
func (s *VaccinationService) GetScheduleStatus(cycleID uint) ([]ScheduleStatus, error) {
	var cycle models.Cycle
	if err := s.First(&cycle, cycleID); err != nil {
		return nil, fmt.Errorf("cycle %d not found: %w", cycleID, err)
	}

	records, err := s.GetVaccinations(cycleID)
	if err != nil {
		return nil, err
	}

	currentAge := 0
	if start, err := time.Parse("2006-01-02", cycle.StartDate); err == nil {
		// Age is day-granular: compare dates, not wall-clock times
		today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
		currentAge = metrics.FlockAgeInDays(start, today)
	}

	statuses := make([]ScheduleStatus, 0, len(standardSchedule))
	for _, item := range standardSchedule {
		status := ScheduleStatus{ScheduleItem: item}
		for _, rec := range records {
			diff := rec.FlockAge - item.Day
			if diff >= -3 && diff <= 3 {
				status.Done = true
				status.GivenDate = rec.Date
				break
			}
		}
		if !status.Done && currentAge > item.Day+3 {
			status.Overdue = true
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
