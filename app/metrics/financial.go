package metrics

import "math"

// Financial and husbandry indicators derived from the same raw records.

// ProductionCost sums the cost components of a period.
func ProductionCost(feedCost, laborCost, otherCosts float64) float64 {
	return feedCost + laborCost + otherCosts
}

// Profitability returns revenue minus costs.
func Profitability(revenue, costs float64) float64 {
	return revenue - costs
}

// AverageEggWeight returns grams per egg given a total weight in grams.
func AverageEggWeight(totalWeight float64, eggCount int) float64 {
	if eggCount == 0 {
		return 0
	}
	return totalWeight / float64(eggCount)
}

// DailyFeedPerBird returns grams of feed per bird per day from a kg total.
func DailyFeedPerBird(totalFeedKg float64, birdsCount, days int) float64 {
	if birdsCount == 0 || days == 0 {
		return 0
	}
	return totalFeedKg * 1000 / float64(birdsCount*days)
}

// PeakProduction returns the highest laying percentage in a series.
func PeakProduction(layingRates []float64) float64 {
	var peak float64
	for _, rate := range layingRates {
		if rate > peak {
			peak = rate
		}
	}
	return peak
}

// EfficiencyTrend returns the percentage change from the previous period.
func EfficiencyTrend(currentPeriod, previousPeriod float64) float64 {
	if previousPeriod == 0 {
		return 0
	}
	return (currentPeriod - previousPeriod) / previousPeriod * 100
}

// BreakEvenPoint returns the number of eggs needed to cover fixed costs.
// Returns +Inf when each egg contributes nothing or loses money.
func BreakEvenPoint(fixedCosts, pricePerEgg, variableCostPerEgg float64) float64 {
	contribution := pricePerEgg - variableCostPerEgg
	if contribution <= 0 {
		return math.Inf(1)
	}
	return math.Ceil(fixedCosts / contribution)
}

// ROI returns profit as a percentage of investment.
func ROI(profit, investment float64) float64 {
	if investment == 0 {
		return 0
	}
	return profit / investment * 100
}

// ProjectProduction compounds a weekly growth rate over the given horizon.
func ProjectProduction(currentRate, growthRatePercent float64, weeks int) float64 {
	return currentRate * math.Pow(1+growthRatePercent/100, float64(weeks))
}

// SeasonalIndex normalises each month's value against the period average,
// expressed as a percentage. Empty input yields nil.
func SeasonalIndex(monthlyData []float64) []float64 {
	if len(monthlyData) == 0 {
		return nil
	}
	var sum float64
	for _, v := range monthlyData {
		sum += v
	}
	average := sum / float64(len(monthlyData))
	if average == 0 {
		return make([]float64, len(monthlyData))
	}
	result := make([]float64, len(monthlyData))
	for i, v := range monthlyData {
		result[i] = v / average * 100
	}
	return result
}

// OptimalFeedAmount estimates daily feed in kg per bird: 4% of body weight
// plus 2g per expected egg, scaled by a weather factor.
func OptimalFeedAmount(birdWeightKg, layingRatePercent, weatherFactor float64) float64 {
	baseFeed := birdWeightKg * 0.04
	eggFeed := layingRatePercent / 100 * 2 / 1000
	return (baseFeed + eggFeed) * weatherFactor
}

// WaterRequirement estimates daily water in litres per bird: 2.5x feed
// intake, adjusted 5% per degree above 25C.
func WaterRequirement(temperatureC, birdWeightKg, layingRatePercent float64) float64 {
	baseWater := OptimalFeedAmount(birdWeightKg, layingRatePercent, 1) * 2.5
	if temperatureC > 25 {
		return baseWater * (1 + (temperatureC-25)*0.05)
	}
	return baseWater
}
