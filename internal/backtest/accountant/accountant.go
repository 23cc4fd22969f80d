// Package accountant walks held positions bar by bar and compounds their returns
// into a trade log and a cumulative return curve.
package accountant

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Ledger is the output of one accounting pass.
type Ledger struct {
	// Trades in bar order
	Trades []types.Trade
	// CumulativeReturns holds one compounded growth factor per bar, starting at 1.0
	CumulativeReturns []float64
}

// Single accounts a single-instrument strategy.
//
// A leg is opened when the position leaves flat and closed only when the position
// flips sign; the flip compounds (close/entry)^direction into the multiplier and
// opens the opposite leg on the same bar. A move back to flat is not a trade and
// keeps the open leg.
func Single(bars []types.MarketData, positions []types.Signal) (Ledger, error) {
	if len(bars) != len(positions) {
		return Ledger{}, errors.Newf(errors.ErrCodeSeriesMisaligned,
			"positions (%d) do not match bars (%d)", len(positions), len(bars))
	}

	ledger := Ledger{
		Trades:            make([]types.Trade, 0),
		CumulativeReturns: make([]float64, 0, len(bars)),
	}

	current := types.SignalFlat
	entryPrice := 0.0
	multiplier := 1.0

	for i, bar := range bars {
		p := positions[i]

		switch {
		case p.Float()*current.Float() < 0:
			multiplier *= math.Pow(bar.Close/entryPrice, current.Float())
			if err := checkFinite(multiplier, i); err != nil {
				return Ledger{}, err
			}

			current = p
			entryPrice = bar.Close
			ledger.Trades = append(ledger.Trades, newTrade(bar, i, p, types.TradeActionFlip, multiplier))
		case current.IsFlat() && !p.IsFlat():
			current = p
			entryPrice = bar.Close
			ledger.Trades = append(ledger.Trades, newTrade(bar, i, p, types.TradeActionOpen, multiplier))
		}

		ledger.CumulativeReturns = append(ledger.CumulativeReturns, multiplier)
	}

	return ledger, nil
}

// Pair accounts a spread strategy on an aligned pair frame. Every bar with a
// non-flat position is a one-bar trade compounding (pair/close)^direction.
func Pair(frame types.IndicatorFrame, positions []types.Signal) (Ledger, error) {
	if !frame.IsPair() {
		return Ledger{}, errors.New(errors.ErrCodeInvalidMarketData, "pair accounting needs a frame with a second leg")
	}

	n := frame.Len()
	if len(positions) != n || len(frame.Close) != n || len(frame.PairClose) != n {
		return Ledger{}, errors.Newf(errors.ErrCodeSeriesMisaligned,
			"positions (%d), closes (%d) and pair closes (%d) do not match %d bars",
			len(positions), len(frame.Close), len(frame.PairClose), n)
	}

	ledger := Ledger{
		Trades:            make([]types.Trade, 0),
		CumulativeReturns: make([]float64, 0, n),
	}

	multiplier := 1.0

	for i, p := range positions {
		if !p.IsFlat() {
			multiplier *= math.Pow(frame.PairClose[i]/frame.Close[i], p.Float())
			if err := checkFinite(multiplier, i); err != nil {
				return Ledger{}, err
			}

			ledger.Trades = append(ledger.Trades, types.Trade{
				Time:       frame.Time[i],
				BarIndex:   i,
				Symbol:     frame.Symbol,
				Price:      frame.Close[i],
				PairPrice:  frame.PairClose[i],
				Direction:  p,
				Action:     types.TradeActionPair,
				Multiplier: multiplier,
			})
		}

		ledger.CumulativeReturns = append(ledger.CumulativeReturns, multiplier)
	}

	return ledger, nil
}

func newTrade(bar types.MarketData, index int, direction types.Signal, action types.TradeAction, multiplier float64) types.Trade {
	return types.Trade{
		Time:       bar.Time,
		BarIndex:   index,
		Symbol:     bar.Symbol,
		Price:      bar.Close,
		Direction:  direction,
		Action:     action,
		Multiplier: multiplier,
	}
}

func checkFinite(multiplier float64, bar int) error {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return errors.Newf(errors.ErrCodeNonFiniteValue, "cumulative return became %f at bar %d", multiplier, bar)
	}

	return nil
}
