package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

// Arbitrage trades the spread between two instruments when its z-score leaves the
// entry band and flattens once it returns inside the exit band.
//
// The z-score uses the mean and standard deviation of the whole sample, so every
// bar is normalized with information from later bars. Results are therefore
// optimistic compared to a causal backtest.
type Arbitrage struct {
	entryThreshold float64
	exitThreshold  float64
	pair           types.PriceSeries
	logger         *logger.Logger
}

// NewArbitrage creates a pair strategy against pair.
func NewArbitrage(entryThreshold, exitThreshold float64, pair types.PriceSeries, log *logger.Logger) (*Arbitrage, error) {
	if entryThreshold < 0 || exitThreshold < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "thresholds must be non-negative, got entry=%f exit=%f", entryThreshold, exitThreshold)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Arbitrage{
		entryThreshold: entryThreshold,
		exitThreshold:  exitThreshold,
		pair:           pair,
		logger:         log,
	}, nil
}

func (a *Arbitrage) Name() types.StrategyType {
	return types.StrategyTypeArbitrage
}

func (a *Arbitrage) WarmUp() int {
	return 1
}

// Prepare aligns series with the pair series, then derives the spread and its z-score.
// A spread without variance has no z-score; Signal then stays flat.
func (a *Arbitrage) Prepare(series types.PriceSeries) (types.IndicatorFrame, error) {
	first, second := types.InnerJoin(series, a.pair)

	frame := types.NewIndicatorFrame(first)
	frame.PairSymbol = second.Symbol
	frame.PairClose = second.Closes()

	spread := make([]float64, frame.Len())
	spreadSeries := make(types.IndicatorSeries, frame.Len())

	for i := range spread {
		spread[i] = frame.Close[i] - frame.PairClose[i]
		spreadSeries[i] = optional.Some(spread[i])
	}

	frame.Values[types.IndicatorTypeSpread] = spreadSeries

	zscore, err := indicator.ZScore(spread)
	if err != nil {
		if !errors.IsInsufficientDataError(err) && !errors.HasCode(err, errors.ErrCodeZeroVariance) {
			return types.IndicatorFrame{}, err
		}

		a.logger.Warn("spread z-score is undefined, arbitrage will stay flat",
			zap.String("symbol", frame.Symbol),
			zap.String("pair_symbol", frame.PairSymbol),
			zap.Int("bars", frame.Len()),
			zap.Error(err),
		)

		zscore = make(types.IndicatorSeries, frame.Len())
		for i := range zscore {
			zscore[i] = optional.None[float64]()
		}
	}

	frame.Values[types.IndicatorTypeZScore] = zscore

	return frame, nil
}

func (a *Arbitrage) Signal(frame types.IndicatorFrame) ([]types.Signal, error) {
	if !frame.IsPair() {
		return nil, errors.New(errors.ErrCodeInvalidMarketData, "arbitrage needs a frame with a second leg")
	}

	zscore := frame.Series(types.IndicatorTypeZScore)
	if zscore.IsNone() {
		return nil, errors.New(errors.ErrCodeIndicatorCalculation, "frame has no spread z-score, call Prepare first")
	}

	z := zscore.Unwrap()
	if len(z) != frame.Len() {
		return nil, errors.Newf(errors.ErrCodeSeriesMisaligned, "z-score does not match the frame length %d", frame.Len())
	}

	signals := types.FlatSignals(frame.Len())

	for i := 1; i < len(signals); i++ {
		// hold by default
		signals[i] = signals[i-1]

		if z[i].IsNone() {
			continue
		}

		value := z[i].Unwrap()

		switch {
		case value > a.entryThreshold:
			signals[i] = types.SignalShort
		case value < -a.entryThreshold:
			signals[i] = types.SignalLong
		case value > -a.exitThreshold && value < a.exitThreshold:
			signals[i] = types.SignalFlat
		}
	}

	return signals, nil
}
