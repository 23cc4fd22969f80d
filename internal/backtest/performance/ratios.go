package performance

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/utils"
)

// ExcessReturns returns the bar-over-bar change of the cumulative return curve minus
// the per-bar risk-free rate. The first bar has no change and is dropped.
func ExcessReturns(cumulativeReturns []float64, perBarRate float64) []float64 {
	changes := utils.PctChange(cumulativeReturns)

	excess := make([]float64, len(changes))
	for i, c := range changes {
		excess[i] = c - perBarRate
	}

	return excess
}

// Sharpe is mean(excess) / std(excess). It is None when the ratio is not finite,
// for example when excess has no variance.
func Sharpe(excess []float64) optional.Option[float64] {
	return finiteRatio(utils.Mean(excess), utils.SampleStdDev(excess))
}

// Sortino is mean(excess) divided by the deviation of the negative excess returns.
func Sortino(excess []float64) optional.Option[float64] {
	downside := make([]float64, 0, len(excess))

	for _, e := range excess {
		if e < 0 {
			downside = append(downside, e)
		}
	}

	return finiteRatio(utils.Mean(excess), utils.SampleStdDev(downside))
}

// Alpha is the CAPM excess of the strategy over its beta-weighted benchmark.
func Alpha(strategyResult, benchmarkResult, beta, riskFreeRate float64) float64 {
	return (strategyResult - riskFreeRate) - beta*(benchmarkResult-riskFreeRate)
}

func finiteRatio(numerator, denominator float64) optional.Option[float64] {
	ratio := numerator / denominator
	if !utils.IsFinite(ratio) {
		return optional.None[float64]()
	}

	return optional.Some(ratio)
}
