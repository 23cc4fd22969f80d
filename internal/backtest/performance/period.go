package performance

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// TradingDaysPerYear is the number of trading days used to annualize rates.
const TradingDaysPerYear = types.TradingDaysPerYear

// DefaultRiskFreeRate is the annual risk-free rate used when none is configured.
const DefaultRiskFreeRate = 0.05

// ParsePeriod converts a period such as "12mo" or "5d" into trading days.
func ParsePeriod(period string) (int, error) {
	parsed, err := types.ParsePeriod(period)
	if err != nil {
		return 0, err
	}

	return parsed.TradingDays(), nil
}

// HoldingPeriodRate compounds an annual rate over days trading days.
func HoldingPeriodRate(annualRate float64, days int) float64 {
	return math.Pow(1+annualRate, float64(days)/TradingDaysPerYear) - 1
}

// PerBarRate spreads a holding-period rate evenly over bars bars.
func PerBarRate(holdingRate float64, bars int) float64 {
	if bars <= 0 {
		return 0
	}

	return math.Pow(1+holdingRate, 1/float64(bars)) - 1
}
