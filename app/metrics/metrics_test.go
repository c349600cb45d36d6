package metrics

import (
	"math"
	"testing"
	"time"

	"PoultryApp/app/models"

	"github.com/stretchr/testify/assert"
)

func TestLayingPercentage(t *testing.T) {
	assert.InDelta(t, 85.0, LayingPercentage(85, 100, 1), 0.001)
	assert.InDelta(t, 42.5, LayingPercentage(85, 100, 2), 0.001)

	// Degenerate input yields zero, never NaN
	assert.Equal(t, 0.0, LayingPercentage(85, 0, 1))
	assert.Equal(t, 0.0, LayingPercentage(85, 100, 0))
	assert.Equal(t, 0.0, LayingPercentage(0, 0, 0))
}

func TestFeedConversionRatio(t *testing.T) {
	// 10kg feed for 100 eggs at 60g each = 6kg egg mass
	assert.InDelta(t, 10.0/6.0, FeedConversionRatio(10, 100, DefaultEggWeight), 0.001)
	assert.Equal(t, 0.0, FeedConversionRatio(10, 0, DefaultEggWeight))
	assert.Equal(t, 0.0, FeedConversionRatio(10, 100, 0))
}

func TestFeedEfficiency(t *testing.T) {
	assert.InDelta(t, 0.6, FeedEfficiency(100, 10, DefaultEggWeight), 0.001)
	assert.Equal(t, 0.0, FeedEfficiency(100, 0, DefaultEggWeight))

	// Efficiency is the inverse of FCR for the same inputs
	fcr := FeedConversionRatio(10, 100, DefaultEggWeight)
	eff := FeedEfficiency(100, 10, DefaultEggWeight)
	assert.InDelta(t, 1.0, fcr*eff, 0.001)
}

func TestMortalityPercent(t *testing.T) {
	assert.InDelta(t, 2.0, MortalityPercent(2, 100), 0.001)
	assert.Equal(t, 0.0, MortalityPercent(5, 0))
}

func TestFlockAgeInDays(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	// Placement day counts as day 1
	assert.Equal(t, 1, FlockAgeInDays(start, start))
	assert.Equal(t, 1, FlockAgeInDays(start, start.Add(12*time.Hour)))
	assert.Equal(t, 7, FlockAgeInDays(start, start.AddDate(0, 0, 7)))

	// Order of arguments does not matter
	assert.Equal(t, 7, FlockAgeInDays(start.AddDate(0, 0, 7), start))
}

func TestHenHouseProduction(t *testing.T) {
	logs := []models.ProductionLog{
		{FlockAge: 100, EggsCollected: 10, OpeningBirds: 100}, // pre-lay, ignored
		{FlockAge: 140, EggsCollected: 80, OpeningBirds: 100},
		{FlockAge: 141, EggsCollected: 90, OpeningBirds: 100},
	}
	// 170 eggs over an average of 100 birds
	assert.InDelta(t, 1.7, HenHouseProduction(logs, DefaultLayingStartAge), 0.001)

	assert.Equal(t, 0.0, HenHouseProduction(nil, DefaultLayingStartAge))
	assert.Equal(t, 0.0, HenHouseProduction(logs[:1], DefaultLayingStartAge))
}

func TestCumulativeMetrics(t *testing.T) {
	logs := []models.ProductionLog{
		{Mortality: 1, EggsCollected: 80, FeedConsumed: 10},
		{Mortality: 0, EggsCollected: 90, FeedConsumed: 11},
		{Mortality: 2, EggsCollected: 70, FeedConsumed: 9.5},
	}
	r := CumulativeMetrics(logs)
	assert.Equal(t, 3, r.TotalMortality)
	assert.Equal(t, 240, r.TotalEggs)
	assert.InDelta(t, 30.5, r.TotalFeed, 0.001)
	assert.InDelta(t, 80.0, r.AvgProduction, 0.001)

	// Order-independent
	reversed := []models.ProductionLog{logs[2], logs[1], logs[0]}
	assert.Equal(t, r, CumulativeMetrics(reversed))

	empty := CumulativeMetrics(nil)
	assert.Equal(t, CumulativeResult{}, empty)
}

func TestMovingAverage(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, []float64{2, 3, 4}, MovingAverage(series, 3))
	assert.Equal(t, series, MovingAverage(series, 1))
	assert.Equal(t, []float64{3}, MovingAverage(series, 5))

	assert.Nil(t, MovingAverage(series, 6))
	assert.Nil(t, MovingAverage(series, 0))
	assert.Nil(t, MovingAverage(nil, 3))
}

func TestCycleMetrics(t *testing.T) {
	cages := []models.Cage{
		{CurrentBirds: 100},
		{CurrentBirds: 150},
	}
	logs := []models.ProductionLog{
		{FlockAge: 150, EggsCollected: 200},
		{FlockAge: 151, EggsCollected: 210},
	}
	feedLogs := []models.FeedLog{
		{Amount: 25},
		{Amount: 26},
	}

	r := CycleMetrics(logs, cages, feedLogs)
	assert.Equal(t, 250, r.TotalBirds)
	assert.Equal(t, 410, r.TotalEggs)
	assert.InDelta(t, 51.0, r.TotalFeed, 0.001)
	assert.Equal(t, 151, r.CycleLength)
	assert.Greater(t, r.FeedConversionRatio, 0.0)
	assert.Greater(t, r.FeedEfficiency, 0.0)
}

func TestCycleMetricsEmpty(t *testing.T) {
	r := CycleMetrics(nil, nil, nil)
	assert.Equal(t, CycleResult{}, r)
}

func TestProductionCostAndProfitability(t *testing.T) {
	cost := ProductionCost(100, 50, 25)
	assert.InDelta(t, 175.0, cost, 0.001)
	assert.InDelta(t, 25.0, Profitability(200, cost), 0.001)
	assert.InDelta(t, -75.0, Profitability(100, cost), 0.001)
}

func TestAverageEggWeight(t *testing.T) {
	assert.InDelta(t, 60.0, AverageEggWeight(6000, 100), 0.001)
	assert.Equal(t, 0.0, AverageEggWeight(6000, 0))
}

func TestDailyFeedPerBird(t *testing.T) {
	// 11kg for 100 birds over 1 day = 110g per bird
	assert.InDelta(t, 110.0, DailyFeedPerBird(11, 100, 1), 0.001)
	assert.Equal(t, 0.0, DailyFeedPerBird(11, 0, 1))
	assert.Equal(t, 0.0, DailyFeedPerBird(11, 100, 0))
}

func TestPeakProduction(t *testing.T) {
	assert.InDelta(t, 92.5, PeakProduction([]float64{80, 92.5, 85}), 0.001)
	assert.Equal(t, 0.0, PeakProduction(nil))
}

func TestEfficiencyTrend(t *testing.T) {
	assert.InDelta(t, 10.0, EfficiencyTrend(110, 100), 0.001)
	assert.InDelta(t, -50.0, EfficiencyTrend(50, 100), 0.001)
	assert.Equal(t, 0.0, EfficiencyTrend(110, 0))
}

func TestBreakEvenPoint(t *testing.T) {
	// 1000 fixed, 0.50 price, 0.30 variable -> 5000 eggs
	assert.InDelta(t, 5000.0, BreakEvenPoint(1000, 0.5, 0.3), 0.001)

	// Rounds up to whole eggs
	assert.InDelta(t, 3334.0, BreakEvenPoint(1000, 0.5, 0.2), 0.001)

	assert.True(t, math.IsInf(BreakEvenPoint(1000, 0.3, 0.3), 1))
	assert.True(t, math.IsInf(BreakEvenPoint(1000, 0.2, 0.3), 1))
}

func TestROI(t *testing.T) {
	assert.InDelta(t, 25.0, ROI(250, 1000), 0.001)
	assert.Equal(t, 0.0, ROI(250, 0))
}

func TestProjectProduction(t *testing.T) {
	assert.InDelta(t, 121.0, ProjectProduction(100, 10, 2), 0.001)
	assert.InDelta(t, 100.0, ProjectProduction(100, 0, 10), 0.001)
}

func TestSeasonalIndex(t *testing.T) {
	index := SeasonalIndex([]float64{80, 100, 120})
	assert.Len(t, index, 3)
	assert.InDelta(t, 80.0, index[0], 0.001)
	assert.InDelta(t, 100.0, index[1], 0.001)
	assert.InDelta(t, 120.0, index[2], 0.001)

	assert.Nil(t, SeasonalIndex(nil))
	assert.Equal(t, []float64{0, 0}, SeasonalIndex([]float64{0, 0}))
}

func TestWaterRequirement(t *testing.T) {
	base := WaterRequirement(20, 2.0, 85)
	hot := WaterRequirement(30, 2.0, 85)
	assert.Greater(t, hot, base)
	assert.InDelta(t, base*1.25, hot, 0.001)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "85.5%", FormatPercent(85.5, 1))
	assert.Equal(t, "₵1250.50", FormatCurrency(1250.5, "₵"))
	assert.Equal(t, "25.50 kg", FormatWeight(25.5, "kg"))

	d := time.Date(2025, 7, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "21/07/2025", FormatDate(d, "day"))
	assert.Equal(t, "07/2025", FormatDate(d, "month"))
	assert.Equal(t, "2025", FormatDate(d, "year"))
}

func TestPeriodKey(t *testing.T) {
	// 2025-07-21 is a Monday
	d := time.Date(2025, 7, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-07-21", PeriodKey(d, "day"))
	assert.Equal(t, "2025-07-20", PeriodKey(d, "week")) // preceding Sunday
	assert.Equal(t, "2025-07-01", PeriodKey(d, "month"))
	assert.Equal(t, "2025-Q3", PeriodKey(d, "quarter"))
	assert.Equal(t, "2025-01-01", PeriodKey(d, "year"))
}
