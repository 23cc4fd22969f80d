package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MarketData is a single OHLCV bar.
type MarketData struct {
	Symbol string    `csv:"symbol" json:"symbol" yaml:"symbol"`
	Time   time.Time `csv:"time" json:"time" yaml:"time"`
	Open   float64   `csv:"open" json:"open" yaml:"open"`
	High   float64   `csv:"high" json:"high" yaml:"high"`
	Low    float64   `csv:"low" json:"low" yaml:"low"`
	Close  float64   `csv:"close" json:"close" yaml:"close"`
	Volume float64   `csv:"volume" json:"volume" yaml:"volume"`
}

// PriceSeries is an ordered run of bars for one symbol. It is read-only once built:
// every consumer derives new slices instead of writing into Bars.
type PriceSeries struct {
	Symbol string
	Bars   []MarketData
}

// NewPriceSeries builds a series from bars. The bars slice is copied.
func NewPriceSeries(symbol string, bars []MarketData) PriceSeries {
	copied := make([]MarketData, len(bars))
	copy(copied, bars)

	return PriceSeries{
		Symbol: symbol,
		Bars:   copied,
	}
}

// Len returns the number of bars.
func (p PriceSeries) Len() int {
	return len(p.Bars)
}

// IsEmpty reports whether the series has no bars.
func (p PriceSeries) IsEmpty() bool {
	return len(p.Bars) == 0
}

// Closes returns a new slice holding the close of every bar.
func (p PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p.Bars))
	for i, bar := range p.Bars {
		closes[i] = bar.Close
	}

	return closes
}

// Times returns a new slice holding the timestamp of every bar.
func (p PriceSeries) Times() []time.Time {
	times := make([]time.Time, len(p.Bars))
	for i, bar := range p.Bars {
		times[i] = bar.Time
	}

	return times
}

// Clone returns a deep copy of the series.
func (p PriceSeries) Clone() PriceSeries {
	return NewPriceSeries(p.Symbol, p.Bars)
}

// Validate checks the ingestion contract: finite non-negative prices, a strictly
// positive close and strictly increasing timestamps.
func (p PriceSeries) Validate() error {
	for i, bar := range p.Bars {
		for _, v := range []float64{bar.Open, bar.High, bar.Low, bar.Close, bar.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return errors.Newf(errors.ErrCodeInvalidMarketData, "bar %d of %s has a non-finite or negative value", i, p.Symbol)
			}
		}

		if bar.Close <= 0 {
			return errors.Newf(errors.ErrCodeInvalidMarketData, "bar %d of %s has non-positive close %f", i, p.Symbol, bar.Close)
		}

		if i > 0 && !bar.Time.After(p.Bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidMarketData, "bar %d of %s is not after the previous bar (%s <= %s)",
				i, p.Symbol, bar.Time.Format(time.RFC3339), p.Bars[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}

// InnerJoin aligns two series on timestamp. Bars present in only one series are dropped.
// Both inputs must be sorted by time.
func InnerJoin(first, second PriceSeries) (PriceSeries, PriceSeries) {
	left := make([]MarketData, 0, min(first.Len(), second.Len()))
	right := make([]MarketData, 0, min(first.Len(), second.Len()))

	i, j := 0, 0
	for i < first.Len() && j < second.Len() {
		a, b := first.Bars[i], second.Bars[j]

		switch {
		case a.Time.Equal(b.Time):
			left = append(left, a)
			right = append(right, b)
			i++
			j++
		case a.Time.Before(b.Time):
			i++
		default:
			j++
		}
	}

	return PriceSeries{Symbol: first.Symbol, Bars: left}, PriceSeries{Symbol: second.Symbol, Bars: right}
}
