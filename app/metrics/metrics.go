package metrics

import (
	"math"
	"time"

	"PoultryApp/app/models"
)

// Defaults used across the app when the caller has no better value.
const (
	// DefaultEggWeight is the assumed average egg weight in grams.
	DefaultEggWeight = 60.0

	// DefaultLayingStartAge is the flock age in days at onset of lay (19 weeks).
	DefaultLayingStartAge = 133
)

// Every function in this package is pure and total: degenerate input (zero
// denominators, empty slices) yields a zero result, never an error. Call sites
// therefore need no defensive checks.

// LayingPercentage returns eggs laid as a percentage of bird-days.
func LayingPercentage(eggsLaid, birdsCount, daysInPeriod int) float64 {
	if birdsCount == 0 || daysInPeriod == 0 {
		return 0
	}
	return float64(eggsLaid) / float64(birdsCount*daysInPeriod) * 100
}

// FeedConversionRatio returns kg of feed consumed per kg of egg mass produced.
// avgEggWeight is in grams; pass DefaultEggWeight when unknown.
func FeedConversionRatio(feedConsumedKg float64, eggsProduced int, avgEggWeight float64) float64 {
	totalEggWeight := float64(eggsProduced) * avgEggWeight / 1000 // kg
	if totalEggWeight == 0 {
		return 0
	}
	return feedConsumedKg / totalEggWeight
}

// FeedEfficiency returns kg of egg mass produced per kg of feed consumed,
// the inverse of FeedConversionRatio.
func FeedEfficiency(eggsProduced int, feedConsumedKg float64, avgEggWeight float64) float64 {
	if feedConsumedKg == 0 {
		return 0
	}
	totalEggWeight := float64(eggsProduced) * avgEggWeight / 1000
	return totalEggWeight / feedConsumedKg
}

// MortalityPercent returns deaths as a percentage of the flock.
func MortalityPercent(deaths, totalBirds int) float64 {
	if totalBirds == 0 {
		return 0
	}
	return float64(deaths) / float64(totalBirds) * 100
}

// FlockAgeInDays returns the age of a flock on asOf, counting the day of
// placement as day 1. The result is never less than 1.
func FlockAgeInDays(cycleStart, asOf time.Time) int {
	diff := asOf.Sub(cycleStart)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// HenHouseProduction returns cumulative eggs per bird over the laying period:
// logs with FlockAge >= layingStartAge, eggs summed and divided by the mean
// opening-bird count across those logs. Zero when no log qualifies.
func HenHouseProduction(logs []models.ProductionLog, layingStartAge int) float64 {
	var eggs, birds, n int
	for _, log := range logs {
		if log.FlockAge < layingStartAge {
			continue
		}
		eggs += log.EggsCollected
		birds += log.OpeningBirds
		n++
	}
	if n == 0 {
		return 0
	}
	avgBirds := float64(birds) / float64(n)
	if avgBirds == 0 {
		return 0
	}
	return float64(eggs) / avgBirds
}

// CumulativeResult aggregates a sequence of production logs.
type CumulativeResult struct {
	TotalMortality int     `json:"total_mortality"`
	TotalEggs      int     `json:"total_eggs"`
	TotalFeed      float64 `json:"total_feed"`
	AvgProduction  float64 `json:"avg_production"` // eggs per log entry
}

// CumulativeMetrics reduces logs to running totals. Log order does not affect
// the result.
func CumulativeMetrics(logs []models.ProductionLog) CumulativeResult {
	var r CumulativeResult
	for _, log := range logs {
		r.TotalMortality += log.Mortality
		r.TotalEggs += log.EggsCollected
		r.TotalFeed += log.FeedConsumed
	}
	if len(logs) > 0 {
		r.AvgProduction = float64(r.TotalEggs) / float64(len(logs))
	}
	return r
}

// MovingAverage returns the windowed means of series; the result has
// len(series)-windowSize+1 elements and is empty when the window does not fit.
func MovingAverage(series []float64, windowSize int) []float64 {
	if windowSize <= 0 || windowSize > len(series) {
		return nil
	}
	result := make([]float64, 0, len(series)-windowSize+1)
	for i := windowSize - 1; i < len(series); i++ {
		var sum float64
		for _, v := range series[i-windowSize+1 : i+1] {
			sum += v
		}
		result = append(result, sum/float64(windowSize))
	}
	return result
}

// CycleResult summarises a whole cycle from its raw logs and cages.
type CycleResult struct {
	TotalBirds          int     `json:"total_birds"`
	TotalEggs           int     `json:"total_eggs"`
	TotalFeed           float64 `json:"total_feed"`
	CycleLength         int     `json:"cycle_length"` // max flock age seen
	AvgLayingRate       float64 `json:"avg_laying_rate"`
	FeedConversionRatio float64 `json:"feed_conversion_ratio"`
	FeedEfficiency      float64 `json:"feed_efficiency"`
}

// CycleMetrics computes cycle-level indicators from production logs, the
// cycle's cages and its feed logs.
func CycleMetrics(productionLogs []models.ProductionLog, cages []models.Cage, feedLogs []models.FeedLog) CycleResult {
	var r CycleResult
	for _, cage := range cages {
		r.TotalBirds += cage.CurrentBirds
	}
	for _, log := range productionLogs {
		r.TotalEggs += log.EggsCollected
		if log.FlockAge > r.CycleLength {
			r.CycleLength = log.FlockAge
		}
	}
	for _, log := range feedLogs {
		r.TotalFeed += log.Amount
	}
	r.AvgLayingRate = LayingPercentage(r.TotalEggs, r.TotalBirds, r.CycleLength)
	r.FeedConversionRatio = FeedConversionRatio(r.TotalFeed, r.TotalEggs, DefaultEggWeight)
	r.FeedEfficiency = FeedEfficiency(r.TotalEggs, r.TotalFeed, DefaultEggWeight)
	return r
}
