package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

// DoubleRSI follows the crossover of a fast and a slow RSI.
//
// The crossover state of bar i is emitted on bar i+1, so together with the
// position lag a crossover is traded two bars later.
type DoubleRSI struct {
	shortPeriod int
	longPeriod  int
	short       indicator.Indicator
	long        indicator.Indicator
}

// NewDoubleRSI creates a double RSI strategy. A short period that is not below the
// long period is accepted and logged.
func NewDoubleRSI(shortPeriod, longPeriod int, log *logger.Logger) (*DoubleRSI, error) {
	short, err := indicator.NewRSI(shortPeriod, types.IndicatorTypeRSIShort)
	if err != nil {
		return nil, err
	}

	long, err := indicator.NewRSI(longPeriod, types.IndicatorTypeRSILong)
	if err != nil {
		return nil, err
	}

	if shortPeriod >= longPeriod && log != nil {
		log.Warn("RSI short period is not below the long period, signals may be inverted",
			zap.Int("short_period", shortPeriod),
			zap.Int("long_period", longPeriod),
		)
	}

	return &DoubleRSI{
		shortPeriod: shortPeriod,
		longPeriod:  longPeriod,
		short:       short,
		long:        long,
	}, nil
}

func (d *DoubleRSI) Name() types.StrategyType {
	return types.StrategyTypeDoubleRSI
}

// WarmUp covers the slower of the two oscillators, so inverted periods still get
// a full long window.
func (d *DoubleRSI) WarmUp() int {
	return max(d.short.WarmUp(), d.long.WarmUp())
}

func (d *DoubleRSI) Prepare(series types.PriceSeries) (types.IndicatorFrame, error) {
	frame := types.NewIndicatorFrame(series)
	frame.Values[d.short.Name()] = d.short.Calculate(frame.Close)
	frame.Values[d.long.Name()] = d.long.Calculate(frame.Close)

	return frame, nil
}

func (d *DoubleRSI) Signal(frame types.IndicatorFrame) ([]types.Signal, error) {
	short := frame.Series(types.IndicatorTypeRSIShort)
	long := frame.Series(types.IndicatorTypeRSILong)

	if short.IsNone() || long.IsNone() {
		return nil, errors.New(errors.ErrCodeIndicatorCalculation, "frame has no RSI values, call Prepare first")
	}

	n := frame.Len()
	if len(short.Unwrap()) != n || len(long.Unwrap()) != n {
		return nil, errors.Newf(errors.ErrCodeSeriesMisaligned, "RSI series do not match the frame length %d", n)
	}

	crossover := d.crossover(short.Unwrap(), long.Unwrap())

	// emit the previous bar's state
	signals := types.FlatSignals(n)
	for i := 1; i < n; i++ {
		signals[i] = crossover[i-1]
	}

	return signals, nil
}

func (d *DoubleRSI) crossover(short, long types.IndicatorSeries) []types.Signal {
	state := types.FlatSignals(len(short))

	for i := d.longPeriod; i < len(short); i++ {
		if short[i].IsNone() || long[i].IsNone() {
			continue
		}

		fast, slow := short[i].Unwrap(), long[i].Unwrap()

		switch {
		case fast > slow:
			state[i] = types.SignalLong
		case fast < slow:
			state[i] = types.SignalShort
		}
	}

	return state
}
