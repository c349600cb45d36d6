package services

import (
	"time"

	"PoultryApp/app/metrics"
	"PoultryApp/app/models"
)

// DashboardStats is the home-screen snapshot for the active cycle
type DashboardStats struct {
	HasActiveCycle bool   `json:"has_active_cycle"`
	CycleID        uint   `json:"cycle_id"`
	CycleName      string `json:"cycle_name"`
	FlockAge       int    `json:"flock_age"`

	TotalBirds   int `json:"total_birds"`
	InitialBirds int `json:"initial_birds"`
	CageCount    int `json:"cage_count"`

	TodayEggs    int     `json:"today_eggs"`
	TodayFeed    float64 `json:"today_feed"`
	TodayLaying  float64 `json:"today_laying"`
	TodayRecords int     `json:"today_records"`

	TotalEggs     int     `json:"total_eggs"`
	TotalFeed     float64 `json:"total_feed"`
	AvgProduction float64 `json:"avg_production"`
	MortalityRate float64 `json:"mortality_rate"`
	FCR           float64 `json:"fcr"`
	HenHouse      float64 `json:"hen_house"`

	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	Profit        float64 `json:"profit"`

	ProductionTrend []float64 `json:"production_trend"`
}

// DashboardService assembles the home-screen statistics
type DashboardService struct {
	*BaseService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService() *DashboardService {
	return &DashboardService{BaseService: NewBaseService()}
}

// GetStats computes the dashboard snapshot for the active cycle. With no
// active cycle it returns an empty snapshot rather than an error so the UI
// can show its first-run state.
func (s *DashboardService) GetStats() (*DashboardStats, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}

	cycles := NewCycleService()
	cycles.SetDB(s.GetDB())
	active, err := cycles.GetActiveCycle()
	if err != nil {
		return nil, err
	}
	if active == nil {
		return &DashboardStats{}, nil
	}

	stats := &DashboardStats{
		HasActiveCycle: true,
		CycleID:        active.ID,
		CycleName:      active.Name,
	}
	if start, err := time.Parse("2006-01-02", active.StartDate); err == nil {
		// Age is day-granular: compare dates, not wall-clock times
		today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
		stats.FlockAge = metrics.FlockAgeInDays(start, today)
	}

	var cages []models.Cage
	if err := s.GetDB().Where("cycle_id = ?", active.ID).Find(&cages).Error; err != nil {
		return nil, err
	}
	stats.CageCount = len(cages)
	for _, c := range cages {
		stats.TotalBirds += c.CurrentBirds
		stats.InitialBirds += c.InitialBirds
	}

	var logs []models.ProductionLog
	if err := s.GetDB().Where("cycle_id = ?", active.ID).Order("date ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	var feedLogs []models.FeedLog
	if err := s.GetDB().Where("cycle_id = ?", active.ID).Find(&feedLogs).Error; err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	todayOpening := 0
	for _, l := range logs {
		if l.Date == today {
			stats.TodayEggs += l.EggsCollected
			stats.TodayRecords++
			todayOpening += l.OpeningBirds
		}
	}
	stats.TodayLaying = metrics.LayingPercentage(stats.TodayEggs, todayOpening, 1)
	for _, f := range feedLogs {
		if f.Date == today {
			stats.TodayFeed += f.Amount
		}
	}

	cycleResult := metrics.CycleMetrics(logs, cages, feedLogs)
	stats.TotalEggs = cycleResult.TotalEggs
	stats.TotalFeed = cycleResult.TotalFeed
	stats.AvgProduction = cycleResult.AvgLayingRate
	stats.FCR = cycleResult.FeedConversionRatio
	totalMortality := 0
	for _, l := range logs {
		totalMortality += l.Mortality
	}
	stats.MortalityRate = metrics.MortalityPercent(totalMortality, stats.InitialBirds)
	stats.HenHouse = metrics.HenHouseProduction(logs, metrics.DefaultLayingStartAge)

	sales := NewSalesService()
	sales.SetDB(s.GetDB())
	if summary, err := sales.GetSalesSummary(active.ID); err == nil {
		stats.TotalRevenue = summary.TotalRevenue
	}
	expenses := NewExpenseService()
	expenses.SetDB(s.GetDB())
	if total, err := expenses.GetTotalExpenses(active.ID); err == nil {
		stats.TotalExpenses = total
	}
	stats.Profit = stats.TotalRevenue - stats.TotalExpenses

	// Last 7 daily laying percentages, smoothed for the trend sparkline
	daily := dailyLayingSeries(logs)
	if len(daily) > 7 {
		daily = daily[len(daily)-7:]
	}
	stats.ProductionTrend = daily

	return stats, nil
}

// dailyLayingSeries folds per-cage logs into one laying percentage per day,
// in date order.
func dailyLayingSeries(logs []models.ProductionLog) []float64 {
	type dayTotals struct {
		eggs    int
		opening int
	}
	byDate := make(map[string]*dayTotals)
	var dates []string
	for _, l := range logs {
		dt, ok := byDate[l.Date]
		if !ok {
			dt = &dayTotals{}
			byDate[l.Date] = dt
			dates = append(dates, l.Date)
		}
		dt.eggs += l.EggsCollected
		dt.opening += l.OpeningBirds
	}

	series := make([]float64, 0, len(dates))
	for _, d := range dates {
		dt := byDate[d]
		series = append(series, metrics.LayingPercentage(dt.eggs, dt.opening, 1))
	}
	return series
}
