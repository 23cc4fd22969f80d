package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MA indicator implements Simple Moving Average calculation.
type MA struct {
	period int
}

// NewMA creates a new MA indicator over period bars.
func NewMA(period int) (*MA, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return &MA{period: period}, nil
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMovingAverage
}

// WarmUp implements Indicator.
func (m *MA) WarmUp() int {
	return m.period - 1
}

// Calculate implements Indicator. Bar i holds the mean of closes[i-period+1..i].
func (m *MA) Calculate(closes []float64) types.IndicatorSeries {
	series := noneSeries(len(closes))

	for i := m.period - 1; i < len(closes); i++ {
		series[i] = optional.Some(calculateSimpleMovingAverage(closes[i-m.period+1 : i+1]))
	}

	return series
}

func calculateSimpleMovingAverage(window []float64) float64 {
	sum := 0.0
	for _, v := range window {
		sum += v
	}

	return sum / float64(len(window))
}
