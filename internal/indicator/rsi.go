package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	period int
	name   types.IndicatorType
}

// NewRSI creates a new RSI indicator over period bars.
func NewRSI(period int, name types.IndicatorType) (*RSI, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return &RSI{
		period: period,
		name:   name,
	}, nil
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return r.name
}

// WarmUp implements Indicator. The first value needs period price changes.
func (r *RSI) WarmUp() int {
	return r.period
}

// Calculate implements Indicator using Wilder's smoothing. The first average is the
// simple mean of the first period changes; each later bar folds in one change.
func (r *RSI) Calculate(closes []float64) types.IndicatorSeries {
	series := noneSeries(len(closes))
	if len(closes) < r.period+1 {
		return series
	}

	// Calculate price changes
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := 0.0
	avgLoss := 0.0

	// First average
	for i := 1; i <= r.period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)
	series[r.period] = optional.Some(relativeStrength(avgGain, avgLoss))

	// Subsequent averages using Wilder's smoothing method
	for i := r.period + 1; i < len(closes); i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)
		series[i] = optional.Some(relativeStrength(avgGain, avgLoss))
	}

	return series
}

func relativeStrength(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100 // Perfect uptrend
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
