package services

import (
	"testing"
	"time"

	"PoultryApp/app/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Cycle{},
		&models.Cage{},
		&models.ProductionLog{},
		&models.FeedLog{},
		&models.Vaccination{},
		&models.Sale{},
		&models.Expense{},
		&models.FarmSetting{},
		&models.User{},
		&models.SheetsConfig{},
	))
	return db
}

func newTestBase(db *gorm.DB) *BaseService {
	base := &BaseService{}
	base.SetDB(db)
	return base
}

func TestCreateCycleCompletesOtherActives(t *testing.T) {
	db := testDB(t)
	svc := &CycleService{BaseService: newTestBase(db)}

	first := &models.Cycle{Name: "Batch 1", StartDate: "2025-01-01"}
	require.NoError(t, svc.CreateCycle(first))
	assert.Equal(t, "active", first.Status)

	second := &models.Cycle{Name: "Batch 2", StartDate: "2025-06-01"}
	require.NoError(t, svc.CreateCycle(second))

	// Only the newest cycle remains active
	active, err := svc.GetActiveCycle()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	reloaded, err := svc.GetCycle(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", reloaded.Status)
	require.NotNil(t, reloaded.EndDate)
	assert.Equal(t, time.Now().Format("2006-01-02"), *reloaded.EndDate)
}

func TestGetActiveCycleNone(t *testing.T) {
	db := testDB(t)
	svc := &CycleService{BaseService: newTestBase(db)}

	active, err := svc.GetActiveCycle()
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCreateCycleRequiresName(t *testing.T) {
	db := testDB(t)
	svc := &CycleService{BaseService: newTestBase(db)}
	assert.Error(t, svc.CreateCycle(&models.Cycle{}))
}

func TestDeleteCycleCascades(t *testing.T) {
	db := testDB(t)
	cycles := &CycleService{BaseService: newTestBase(db)}
	cages := &CageService{BaseService: newTestBase(db)}

	cycle := &models.Cycle{Name: "Batch 1", StartDate: "2025-01-01"}
	require.NoError(t, cycles.CreateCycle(cycle))
	cage := &models.Cage{CycleID: cycle.ID, Name: "A1", InitialBirds: 100}
	require.NoError(t, cages.CreateCage(cage))
	require.NoError(t, db.Create(&models.ProductionLog{CageID: cage.ID, CycleID: cycle.ID, Date: "2025-01-02"}).Error)
	require.NoError(t, db.Create(&models.FeedLog{CycleID: cycle.ID, Date: "2025-01-02", Amount: 10}).Error)
	require.NoError(t, db.Create(&models.Sale{CycleID: cycle.ID, Date: "2025-01-03", Amount: 100}).Error)
	require.NoError(t, db.Create(&models.Expense{CycleID: cycle.ID, Date: "2025-01-03", Amount: 50}).Error)
	require.NoError(t, db.Create(&models.Vaccination{CycleID: cycle.ID, Date: "2025-01-04", VaccineName: "Lasota"}).Error)

	require.NoError(t, cycles.DeleteCycle(cycle.ID))

	for name, count := range map[string]int64{
		"cycles":          tableCount(db, &models.Cycle{}),
		"cages":           tableCount(db, &models.Cage{}),
		"production logs": tableCount(db, &models.ProductionLog{}),
		"feed logs":       tableCount(db, &models.FeedLog{}),
		"sales":           tableCount(db, &models.Sale{}),
		"expenses":        tableCount(db, &models.Expense{}),
		"vaccinations":    tableCount(db, &models.Vaccination{}),
	} {
		assert.Zero(t, count, name)
	}
}

func tableCount(db *gorm.DB, model interface{}) int64 {
	var count int64
	db.Model(model).Count(&count)
	return count
}

func TestCreateCageDefaults(t *testing.T) {
	db := testDB(t)
	svc := &CageService{BaseService: newTestBase(db)}

	cage := &models.Cage{CycleID: 1, Name: "A1", InitialBirds: 120}
	require.NoError(t, svc.CreateCage(cage))

	assert.Equal(t, 500, cage.Capacity)
	assert.Equal(t, "Mixed", cage.Breed)
	assert.Equal(t, 120, cage.CurrentBirds)
	assert.Equal(t, "active", cage.Status)
}

func TestRecordDailyLogUpsertsAndDerives(t *testing.T) {
	db := testDB(t)
	cycles := &CycleService{BaseService: newTestBase(db)}
	cages := &CageService{BaseService: newTestBase(db)}
	production := &ProductionService{BaseService: newTestBase(db)}

	cycle := &models.Cycle{Name: "Batch 1", StartDate: "2025-01-01"}
	require.NoError(t, cycles.CreateCycle(cycle))
	cage := &models.Cage{CycleID: cycle.ID, Name: "A1", InitialBirds: 100}
	require.NoError(t, cages.CreateCage(cage))

	entry, err := production.RecordDailyLog(&models.ProductionLog{
		CageID:        cage.ID,
		Date:          "2025-01-10",
		Mortality:     2,
		EggsCollected: 80,
	})
	require.NoError(t, err)

	// Derived fields
	assert.Equal(t, cycle.ID, entry.CycleID)
	assert.Equal(t, 100, entry.OpeningBirds)
	assert.Equal(t, 98, entry.ClosingBirds)
	assert.Equal(t, 9, entry.FlockAge)
	assert.InDelta(t, 80.0, entry.ProductionPercent, 0.001)

	// Cage totals rebuilt
	reloaded, err := cages.GetCage(cage.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, reloaded.TotalEggs)
	assert.Equal(t, 2, reloaded.Mortality)
	assert.Equal(t, 98, reloaded.CurrentBirds)

	// Same cage and date replaces, not duplicates
	_, err = production.RecordDailyLog(&models.ProductionLog{
		CageID:        cage.ID,
		Date:          "2025-01-10",
		OpeningBirds:  100,
		Mortality:     1,
		EggsCollected: 85,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, tableCount(db, &models.ProductionLog{}))

	logs, err := production.GetCageLogs(cage.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 85, logs[0].EggsCollected)
	assert.Equal(t, 99, logs[0].ClosingBirds)
}

func TestOpeningBirdsFromPreviousDay(t *testing.T) {
	db := testDB(t)
	cycles := &CycleService{BaseService: newTestBase(db)}
	cages := &CageService{BaseService: newTestBase(db)}
	production := &ProductionService{BaseService: newTestBase(db)}

	cycle := &models.Cycle{Name: "Batch 1", StartDate: "2025-01-01"}
	require.NoError(t, cycles.CreateCycle(cycle))
	cage := &models.Cage{CycleID: cycle.ID, Name: "A1", InitialBirds: 100}
	require.NoError(t, cages.CreateCage(cage))

	_, err := production.RecordDailyLog(&models.ProductionLog{
		CageID: cage.ID, Date: "2025-01-10", Mortality: 3,
	})
	require.NoError(t, err)

	entry, err := production.RecordDailyLog(&models.ProductionLog{
		CageID: cage.ID, Date: "2025-01-11",
	})
	require.NoError(t, err)
	assert.Equal(t, 97, entry.OpeningBirds)
}

func TestRecordFeedLogUpsert(t *testing.T) {
	db := testDB(t)
	feed := &FeedService{BaseService: newTestBase(db)}

	first, err := feed.RecordFeedLog(&models.FeedLog{CycleID: 1, Date: "2025-01-10", Amount: 25, Cost: 80})
	require.NoError(t, err)

	second, err := feed.RecordFeedLog(&models.FeedLog{CycleID: 1, Date: "2025-01-10", Amount: 30, Cost: 90})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 1, tableCount(db, &models.FeedLog{}))

	// Different date creates a new record
	_, err = feed.RecordFeedLog(&models.FeedLog{CycleID: 1, Date: "2025-01-11", Amount: 26})
	require.NoError(t, err)
	assert.EqualValues(t, 2, tableCount(db, &models.FeedLog{}))

	totals, err := feed.GetFeedTotals(1)
	require.NoError(t, err)
	assert.InDelta(t, 56.0, totals.TotalAmount, 0.001)
	assert.Equal(t, 2, totals.Days)
	assert.InDelta(t, 28.0, totals.AvgPerDay, 0.001)
}

func TestCreateSaleDerivesAmount(t *testing.T) {
	db := testDB(t)
	sales := &SalesService{BaseService: newTestBase(db)}

	eggSale := &models.Sale{CycleID: 1, Crates: 10, PricePerCrate: 40}
	require.NoError(t, sales.CreateSale(eggSale))
	assert.Equal(t, "eggs", eggSale.SaleType)
	assert.InDelta(t, 400.0, eggSale.Amount, 0.001)

	birdSale := &models.Sale{CycleID: 1, SaleType: "birds", BirdQuantity: 20, PricePerBird: 15}
	require.NoError(t, sales.CreateSale(birdSale))
	assert.InDelta(t, 300.0, birdSale.Amount, 0.001)

	summary, err := sales.GetSalesSummary(1)
	require.NoError(t, err)
	assert.InDelta(t, 700.0, summary.TotalRevenue, 0.001)
	assert.InDelta(t, 400.0, summary.EggRevenue, 0.001)
	assert.InDelta(t, 300.0, summary.BirdRevenue, 0.001)
	assert.Equal(t, 20, summary.BirdsSold)
}

func TestExpenseCategorySummary(t *testing.T) {
	db := testDB(t)
	expenses := &ExpenseService{BaseService: newTestBase(db)}

	require.NoError(t, expenses.CreateExpense(&models.Expense{CycleID: 1, Category: "feed", Amount: 150}))
	require.NoError(t, expenses.CreateExpense(&models.Expense{CycleID: 1, Category: "feed", Amount: 100}))
	require.NoError(t, expenses.CreateExpense(&models.Expense{CycleID: 1, Category: "labor", Amount: 80}))
	require.NoError(t, expenses.CreateExpense(&models.Expense{CycleID: 1, Amount: 10}))

	summary, err := expenses.GetCategorySummary(1)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, "feed", summary[0].Category)
	assert.InDelta(t, 250.0, summary[0].Total, 0.001)
	assert.Equal(t, 2, summary[0].Count)

	total, err := expenses.GetTotalExpenses(1)
	require.NoError(t, err)
	assert.InDelta(t, 340.0, total, 0.001)
}

func TestVaccinationFlockAgeAutofill(t *testing.T) {
	db := testDB(t)
	cycles := &CycleService{BaseService: newTestBase(db)}
	vaccinations := &VaccinationService{BaseService: newTestBase(db)}

	cycle := &models.Cycle{Name: "Batch 1", StartDate: "2025-01-01"}
	require.NoError(t, cycles.CreateCycle(cycle))

	record := &models.Vaccination{CycleID: cycle.ID, Date: "2025-01-07", VaccineName: "Newcastle"}
	require.NoError(t, vaccinations.RecordVaccination(record))
	assert.Equal(t, 6, record.FlockAge)
}

func TestVaccinationScheduleStatus(t *testing.T) {
	db := testDB(t)
	cycles := &CycleService{BaseService: newTestBase(db)}
	vaccinations := &VaccinationService{BaseService: newTestBase(db)}

	start := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	cycle := &models.Cycle{Name: "Batch 1", StartDate: start}
	require.NoError(t, cycles.CreateCycle(cycle))

	// Day 8 is within +-3 of the day-7 schedule entry
	require.NoError(t, vaccinations.RecordVaccination(&models.Vaccination{
		CycleID: cycle.ID, VaccineName: "Newcastle + Bronchitis", FlockAge: 8, Date: "2025-01-08",
	}))

	statuses, err := vaccinations.GetScheduleStatus(cycle.ID)
	require.NoError(t, err)
	require.NotEmpty(t, statuses)

	byDay := make(map[int]ScheduleStatus)
	for _, s := range statuses {
		byDay[s.Day] = s
	}
	assert.True(t, byDay[7].Done)
	assert.False(t, byDay[7].Overdue)
	// Day 1 was never given and the flock is past it
	assert.False(t, byDay[1].Done)
	assert.True(t, byDay[1].Overdue)
	// Day 112 is still in the future for a 30-day flock
	assert.False(t, byDay[112].Done)
	assert.False(t, byDay[112].Overdue)
}

func TestDashboardStatsEmpty(t *testing.T) {
	db := testDB(t)
	dashboard := &DashboardService{BaseService: newTestBase(db)}

	stats, err := dashboard.GetStats()
	require.NoError(t, err)
	assert.False(t, stats.HasActiveCycle)
}

func TestDashboardStatsActiveCycle(t *testing.T) {
	db := testDB(t)
	cycles := &CycleService{BaseService: newTestBase(db)}
	cages := &CageService{BaseService: newTestBase(db)}
	production := &ProductionService{BaseService: newTestBase(db)}
	dashboard := &DashboardService{BaseService: newTestBase(db)}

	start := time.Now().AddDate(0, 0, -9).Format("2006-01-02")
	cycle := &models.Cycle{Name: "Batch 1", StartDate: start}
	require.NoError(t, cycles.CreateCycle(cycle))
	cage := &models.Cage{CycleID: cycle.ID, Name: "A1", InitialBirds: 100}
	require.NoError(t, cages.CreateCage(cage))

	today := time.Now().Format("2006-01-02")
	_, err := production.RecordDailyLog(&models.ProductionLog{
		CageID: cage.ID, Date: today, EggsCollected: 80, Mortality: 1,
	})
	require.NoError(t, err)

	stats, err := dashboard.GetStats()
	require.NoError(t, err)
	assert.True(t, stats.HasActiveCycle)
	assert.Equal(t, cycle.ID, stats.CycleID)
	assert.Equal(t, 80, stats.TodayEggs)
	assert.Equal(t, 80, stats.TotalEggs)
	assert.Equal(t, 99, stats.TotalBirds)
	assert.Equal(t, 1, stats.CageCount)
	assert.InDelta(t, 80.0, stats.TodayLaying, 0.001)
	assert.Equal(t, 9, stats.FlockAge)
}

func TestBackupRoundTrip(t *testing.T) {
	db := testDB(t)
	cycles := &CycleService{BaseService: newTestBase(db)}
	backup := &BackupService{BaseService: newTestBase(db)}

	cycle := &models.Cycle{Name: "Batch 1", StartDate: "2025-01-01"}
	require.NoError(t, cycles.CreateCycle(cycle))
	require.NoError(t, db.Create(&models.Sale{CycleID: cycle.ID, Date: "2025-01-10", Amount: 400}).Error)
	require.NoError(t, db.Create(&models.FeedLog{CycleID: cycle.ID, Date: "2025-01-10", Amount: 25}).Error)

	exported, err := backup.ExportBackup()
	require.NoError(t, err)
	assert.Contains(t, exported, `"version": "1.0"`)

	// Mutate, then restore the snapshot
	require.NoError(t, db.Create(&models.Sale{CycleID: cycle.ID, Date: "2025-01-11", Amount: 999}).Error)
	require.NoError(t, backup.ImportBackup(exported))

	assert.EqualValues(t, 1, tableCount(db, &models.Cycle{}))
	assert.EqualValues(t, 1, tableCount(db, &models.Sale{}))
	assert.EqualValues(t, 1, tableCount(db, &models.FeedLog{}))

	var sale models.Sale
	require.NoError(t, db.First(&sale).Error)
	assert.InDelta(t, 400.0, sale.Amount, 0.001)
}

func TestImportBackupRejectsGarbage(t *testing.T) {
	db := testDB(t)
	backup := &BackupService{BaseService: newTestBase(db)}

	assert.Error(t, backup.ImportBackup("not json"))
	assert.Error(t, backup.ImportBackup("{}")) // missing version
}

func TestSettingsRoundTrip(t *testing.T) {
	db := testDB(t)
	settings := &SettingsService{BaseService: newTestBase(db)}

	require.NoError(t, settings.SetSetting("currency", "GHS", "string", "general"))
	require.NoError(t, settings.SetSetting("currency", "USD", "", ""))

	assert.Equal(t, "USD", settings.GetSetting("currency", "GHS"))
	assert.Equal(t, "30", settings.GetSetting("crate_size", "30"))

	all, err := settings.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "USD", all["currency"])
	assert.EqualValues(t, 1, tableCount(db, &models.FarmSetting{}))
}

func TestUserPINLifecycle(t *testing.T) {
	db := testDB(t)
	settings := &SettingsService{BaseService: newTestBase(db)}

	user, err := settings.CreateUser("Ama", "1234")
	require.NoError(t, err)
	assert.NotEmpty(t, user.PINHash)
	assert.NotEqual(t, "1234", user.PINHash)

	matched, err := settings.VerifyPIN("1234")
	require.NoError(t, err)
	require.NotNil(t, matched)
	assert.Equal(t, user.ID, matched.ID)
	assert.NotNil(t, matched.LastLoginAt)

	none, err := settings.VerifyPIN("9999")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = settings.CreateUser("Kofi", "12")
	assert.Error(t, err)
}

func TestDataServiceImportExport(t *testing.T) {
	db := testDB(t)
	data := &DataService{BaseService: newTestBase(db)}

	result, err := data.ImportFeedLogs("Date,Cycle,Feed_Consumed_Kg,Feed_Cost,Notes\n2025-07-21,Cycle 1,25.5,85.00,Daily feed")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.NewCycles)

	out, err := data.ExportFeedLogs(0)
	require.NoError(t, err)
	assert.Contains(t, out, "Date,Cycle,Feed_Consumed_Kg,Feed_Cost,Notes")
	assert.Contains(t, out, "2025-07-21,Cycle 1,25.5,85,Daily feed")
}

func TestVaccinationScheduleAgeIsDayGranular(t *testing.T) {
	db := testDB(t)
	cycles := &CycleService{BaseService: newTestBase(db)}
	vaccinations := &VaccinationService{BaseService: newTestBase(db)}

	// Four days in, the day-1 entry is still inside its +-3 day window no
	// matter what time of day the check runs.
	start := time.Now().AddDate(0, 0, -4).Format("2006-01-02")
	cycle := &models.Cycle{Name: "Batch 1", StartDate: start}
	require.NoError(t, cycles.CreateCycle(cycle))

	statuses, err := vaccinations.GetScheduleStatus(cycle.ID)
	require.NoError(t, err)
	require.NotEmpty(t, statuses)

	byDay := make(map[int]ScheduleStatus)
	for _, s := range statuses {
		byDay[s.Day] = s
	}
	assert.False(t, byDay[1].Done)
	assert.False(t, byDay[1].Overdue)
}

func TestReportSchedulerStopDoesNotBlock(t *testing.T) {
	db := testDB(t)
	sheets := &GoogleSheetsService{BaseService: newTestBase(db)}
	scheduler := NewReportSchedulerService(sheets)
	scheduler.running = true // loop started but still in its initial wait

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked while the scheduler loop was waiting")
	}
}
