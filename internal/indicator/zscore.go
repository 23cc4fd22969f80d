package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/utils"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// ZScore normalizes values with the mean and sample standard deviation of the whole
// slice. Every bar therefore sees statistics computed from future bars too.
//
// It returns an InsufficientDataError for fewer than two values and an
// ErrCodeZeroVariance error when all values are equal.
func ZScore(values []float64) (types.IndicatorSeries, error) {
	if len(values) < 2 {
		return nil, errors.NewInsufficientDataErrorf(2, len(values), "", "z-score needs at least 2 values, got %d", len(values))
	}

	mean := utils.Mean(values)
	std := utils.SampleStdDev(values)

	if std == 0 || !utils.IsFinite(std) {
		return nil, errors.Newf(errors.ErrCodeZeroVariance, "z-score is undefined for zero variance (std=%f)", std)
	}

	series := make(types.IndicatorSeries, len(values))
	for i, v := range values {
		series[i] = optional.Some((v - mean) / std)
	}

	return series, nil
}
