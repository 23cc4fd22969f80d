package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// BollingerBands implements the Indicator interface for Bollinger Bands.
type BollingerBands struct {
	period int     // Number of periods for moving average
	stdDev float64 // Number of standard deviations
	ma     Indicator
}

// Bands holds the per-bar output of BollingerBands.
type Bands struct {
	Upper  types.IndicatorSeries
	Middle types.IndicatorSeries
	Lower  types.IndicatorSeries
	StdDev types.IndicatorSeries
}

// NewBollingerBands creates a new Bollinger Bands indicator.
func NewBollingerBands(period int, stdDev float64) (*BollingerBands, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	if stdDev <= 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "stdDev must be a positive number, got %f", stdDev)
	}

	ma, err := NewMA(period)
	if err != nil {
		return nil, err
	}

	return &BollingerBands{
		period: period,
		stdDev: stdDev,
		ma:     ma,
	}, nil
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// WarmUp implements Indicator.
func (bb *BollingerBands) WarmUp() int {
	return bb.period - 1
}

// Calculate implements Indicator and returns the middle band.
func (bb *BollingerBands) Calculate(closes []float64) types.IndicatorSeries {
	return bb.CalculateBands(closes).Middle
}

// CalculateBands computes all bands over a trailing window of period bars.
// The deviation is the sample standard deviation, so a window of one bar has no bands.
func (bb *BollingerBands) CalculateBands(closes []float64) Bands {
	n := len(closes)
	bands := Bands{
		Upper:  noneSeries(n),
		Middle: bb.ma.Calculate(closes),
		Lower:  noneSeries(n),
		StdDev: noneSeries(n),
	}

	for i := bb.period - 1; i < n; i++ {
		if bands.Middle[i].IsNone() {
			continue
		}

		upper, lower, std, ok := bb.calculateBands(closes[i-bb.period+1:i+1], bands.Middle[i].Unwrap())
		if !ok {
			continue
		}

		bands.Upper[i] = optional.Some(upper)
		bands.Lower[i] = optional.Some(lower)
		bands.StdDev[i] = optional.Some(std)
	}

	return bands
}

// calculateBands calculates the outer bands of one window around its mean.
func (bb *BollingerBands) calculateBands(window []float64, middle float64) (upper, lower, std float64, ok bool) {
	if len(window) < 2 {
		return 0, 0, 0, false
	}

	var squaredDiffSum float64

	for _, v := range window {
		diff := v - middle
		squaredDiffSum += diff * diff
	}

	std = math.Sqrt(squaredDiffSum / float64(len(window)-1))

	upper = middle + (bb.stdDev * std)
	lower = middle - (bb.stdDev * std)

	return upper, lower, std, true
}
