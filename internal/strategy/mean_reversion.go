package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

const bandWidth = 2.0

// MeanReversion goes long below the lower Bollinger band and short above the upper one.
type MeanReversion struct {
	window int
	bands  *indicator.BollingerBands
}

// NewMeanReversion creates a mean reversion strategy over window bars.
func NewMeanReversion(window int) (*MeanReversion, error) {
	bands, err := indicator.NewBollingerBands(window, bandWidth)
	if err != nil {
		return nil, err
	}

	return &MeanReversion{
		window: window,
		bands:  bands,
	}, nil
}

func (m *MeanReversion) Name() types.StrategyType {
	return types.StrategyTypeMeanReversion
}

func (m *MeanReversion) WarmUp() int {
	return m.window
}

func (m *MeanReversion) Prepare(series types.PriceSeries) (types.IndicatorFrame, error) {
	frame := types.NewIndicatorFrame(series)
	bands := m.bands.CalculateBands(frame.Close)

	frame.Values[types.IndicatorTypeMovingAverage] = bands.Middle
	frame.Values[types.IndicatorTypeStdDev] = bands.StdDev
	frame.Values[types.IndicatorTypeUpperBand] = bands.Upper
	frame.Values[types.IndicatorTypeLowerBand] = bands.Lower

	return frame, nil
}

func (m *MeanReversion) Signal(frame types.IndicatorFrame) ([]types.Signal, error) {
	upper, lower, err := m.bandsOf(frame)
	if err != nil {
		return nil, err
	}

	signals := types.FlatSignals(frame.Len())

	for i := m.window; i < frame.Len(); i++ {
		if upper[i].IsNone() || lower[i].IsNone() {
			continue
		}

		price := frame.Close[i]

		switch {
		case price < lower[i].Unwrap():
			signals[i] = types.SignalLong
		case price > upper[i].Unwrap():
			signals[i] = types.SignalShort
		}
	}

	return signals, nil
}

func (m *MeanReversion) bandsOf(frame types.IndicatorFrame) (types.IndicatorSeries, types.IndicatorSeries, error) {
	upper := frame.Series(types.IndicatorTypeUpperBand)
	lower := frame.Series(types.IndicatorTypeLowerBand)

	if upper.IsNone() || lower.IsNone() {
		return nil, nil, errors.New(errors.ErrCodeIndicatorCalculation, "frame has no bollinger bands, call Prepare first")
	}

	if len(upper.Unwrap()) != frame.Len() || len(lower.Unwrap()) != frame.Len() {
		return nil, nil, errors.Newf(errors.ErrCodeSeriesMisaligned, "bands do not match the frame length %d", frame.Len())
	}

	return upper.Unwrap(), lower.Unwrap(), nil
}
