package marketdata

import (
	"context"

	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/utils"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

// DefaultBeta is used whenever a ticker's beta cannot be determined.
const DefaultBeta = 1.0

// BetaProvider looks up the market beta of a ticker.
type BetaProvider interface {
	FetchBeta(ctx context.Context, ticker string) (float64, error)
}

// RegressionBeta estimates beta as cov(r_ticker, r_benchmark) / var(r_benchmark)
// over the bar-to-bar returns of both series, aligned on timestamp.
type RegressionBeta struct {
	provider  Provider
	benchmark string
	period    string
	interval  string
}

// NewRegressionBeta creates a beta estimator against benchmark using bars from provider.
func NewRegressionBeta(provider Provider, benchmark, period, interval string) *RegressionBeta {
	return &RegressionBeta{
		provider:  provider,
		benchmark: benchmark,
		period:    period,
		interval:  interval,
	}
}

// FetchBeta implements BetaProvider.
func (r *RegressionBeta) FetchBeta(ctx context.Context, ticker string) (float64, error) {
	series, err := r.provider.Fetch(ctx, ticker, r.period, r.interval)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeBetaUnavailable, err, "failed to fetch %s", ticker)
	}

	benchmark, err := r.provider.Fetch(ctx, r.benchmark, r.period, r.interval)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeBetaUnavailable, err, "failed to fetch benchmark %s", r.benchmark)
	}

	left, right := types.InnerJoin(series, benchmark)
	if left.Len() < 3 {
		return 0, errors.Newf(errors.ErrCodeBetaUnavailable, "%s and %s share %d bars, need at least 3", ticker, r.benchmark, left.Len())
	}

	returns := utils.PctChange(left.Closes())
	benchmarkReturns := utils.PctChange(right.Closes())

	variance := utils.SampleCovariance(benchmarkReturns, benchmarkReturns)
	if !utils.IsFinite(variance) || variance == 0 {
		return 0, errors.Newf(errors.ErrCodeBetaUnavailable, "benchmark %s has no return variance", r.benchmark)
	}

	beta := utils.SampleCovariance(returns, benchmarkReturns) / variance
	if !utils.IsFinite(beta) {
		return 0, errors.Newf(errors.ErrCodeBetaUnavailable, "beta of %s is not finite", ticker)
	}

	return beta, nil
}

// BetaOrDefault returns the beta of ticker, or DefaultBeta when the lookup fails.
func BetaOrDefault(ctx context.Context, provider BetaProvider, ticker string, log *logger.Logger) float64 {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if provider == nil {
		return DefaultBeta
	}

	beta, err := provider.FetchBeta(ctx, ticker)
	if err != nil {
		log.Warn("Beta unavailable, using default",
			zap.String("ticker", ticker),
			zap.Float64("beta", DefaultBeta),
			zap.Error(err),
		)

		return DefaultBeta
	}

	return beta
}
