// Package performance turns a cumulative return curve and its trade log into
// summary statistics.
package performance

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/utils"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Input is everything Calculate needs. Nothing here is modified.
type Input struct {
	// CumulativeReturns is the accountant's curve, one value per bar
	CumulativeReturns []float64
	// Trades is the accountant's trade log
	Trades []types.Trade
	// Closes of the traded instrument, used for the buy-and-hold result
	Closes []float64
	// Pair is true for spread strategies, which have no buy-and-hold result
	Pair bool
	// Period of the data, such as "12mo"
	Period string
	// RiskFreeRate is the annual risk-free rate
	RiskFreeRate float64
	// BenchmarkCloses of the benchmark over the same period. Empty skips alpha.
	BenchmarkCloses []float64
	// Beta of the instrument against the benchmark. Defaults to 1.0.
	Beta optional.Option[float64]
}

// Calculate derives the run statistics. Ratios that are undefined are left out of
// the result instead of being reported as zero.
func Calculate(input Input) (types.SimulationStats, error) {
	cumulative := input.CumulativeReturns
	if len(cumulative) == 0 {
		return nil, errors.NewInsufficientDataError(1, 0, "", "cannot compute statistics of an empty cumulative return series")
	}

	days, err := ParsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	holdingRate := HoldingPeriodRate(input.RiskFreeRate, days)

	stats := types.SimulationStats{}

	tradeCount := len(input.Trades)
	strategyResult := cumulative[len(cumulative)-1] - 1
	lowest, highest := utils.MinMax(cumulative)

	stats[types.StatTradeCount] = float64(tradeCount)
	stats[types.StatProfitableTrades] = float64(ProfitableTrades(cumulative))
	stats[types.StatStrategyResult] = strategyResult
	stats[types.StatMaxProfit] = highest - 1
	stats[types.StatMaxLoss] = lowest - 1

	if !input.Pair && len(input.Closes) > 0 {
		stats[types.StatHoldingResult] = TotalReturn(input.Closes)
	}

	if tradeCount > 1 {
		excess := ExcessReturns(cumulative, PerBarRate(holdingRate, len(cumulative)))

		if sharpe := Sharpe(excess); sharpe.IsSome() {
			stats[types.StatSharpeRatio] = sharpe.Unwrap()
		}

		if sortino := Sortino(excess); sortino.IsSome() {
			stats[types.StatSortinoRatio] = sortino.Unwrap()
		}
	}

	if len(input.BenchmarkCloses) > 0 {
		beta := input.Beta.TakeOr(1.0)
		alpha := Alpha(strategyResult, TotalReturn(input.BenchmarkCloses), beta, holdingRate)

		if !utils.IsFinite(alpha) {
			return nil, errors.Newf(errors.ErrCodeNonFiniteValue, "alpha is %f", alpha)
		}

		stats[types.StatAlpha] = alpha
	}

	return stats, nil
}

// ProfitableTrades counts the bars whose cumulative return rose above the previous bar.
func ProfitableTrades(cumulativeReturns []float64) int {
	count := 0

	for i := 1; i < len(cumulativeReturns); i++ {
		if cumulativeReturns[i] > cumulativeReturns[i-1] {
			count++
		}
	}

	return count
}

// TotalReturn is last/first - 1. It is 0 for an empty series.
func TotalReturn(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}

	return closes[len(closes)-1]/closes[0] - 1
}
