package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type IndicatorType string

const (
	IndicatorTypeMovingAverage  IndicatorType = "moving_average"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeStdDev         IndicatorType = "standard_deviation"
	IndicatorTypeUpperBand      IndicatorType = "upper_band"
	IndicatorTypeLowerBand      IndicatorType = "lower_band"
	IndicatorTypeRSIShort       IndicatorType = "rsi_short"
	IndicatorTypeRSILong        IndicatorType = "rsi_long"
	IndicatorTypeSpread         IndicatorType = "spread"
	IndicatorTypeZScore         IndicatorType = "z_score"
)

// IndicatorSeries is one derived value per bar. None marks bars inside the warm-up window
// or where the value is undefined.
type IndicatorSeries []optional.Option[float64]

// IndicatorFrame is what a strategy derives from its input before producing signals.
// All slices are index-aligned.
type IndicatorFrame struct {
	// Symbol of the primary leg.
	Symbol string
	// PairSymbol of the second leg. Empty for single-instrument strategies.
	PairSymbol string
	// Time of each aligned bar.
	Time []time.Time
	// Close of the primary leg.
	Close []float64
	// PairClose of the second leg. Nil for single-instrument strategies.
	PairClose []float64
	// Values holds the named indicator series.
	Values map[IndicatorType]IndicatorSeries
}

// NewIndicatorFrame builds a frame over the bars of series.
func NewIndicatorFrame(series PriceSeries) IndicatorFrame {
	return IndicatorFrame{
		Symbol:     series.Symbol,
		PairSymbol: "",
		Time:       series.Times(),
		Close:      series.Closes(),
		PairClose:  nil,
		Values:     make(map[IndicatorType]IndicatorSeries),
	}
}

// Len returns the number of aligned bars.
func (f IndicatorFrame) Len() int {
	return len(f.Time)
}

// IsPair reports whether the frame carries a second leg.
func (f IndicatorFrame) IsPair() bool {
	return f.PairClose != nil
}

// Series returns the named indicator, or None when the strategy did not derive it.
func (f IndicatorFrame) Series(name IndicatorType) optional.Option[IndicatorSeries] {
	series, ok := f.Values[name]
	if !ok {
		return optional.None[IndicatorSeries]()
	}

	return optional.Some(series)
}
