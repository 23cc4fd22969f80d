package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Indicator derives one value per bar from a close series.
// Implementations never modify the input slice.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// WarmUp returns the number of leading bars that have no value
	WarmUp() int
	// Calculate returns a series index-aligned with closes
	Calculate(closes []float64) types.IndicatorSeries
}

func noneSeries(n int) types.IndicatorSeries {
	series := make(types.IndicatorSeries, n)
	for i := range series {
		series[i] = optional.None[float64]()
	}

	return series
}
