package types

import "time"

type TradeAction string

const (
	// TradeActionOpen opens a leg from a flat state.
	TradeActionOpen TradeAction = "open"
	// TradeActionFlip closes the held leg and opens the opposite one on the same bar.
	TradeActionFlip TradeAction = "flip"
	// TradeActionPair is a one-bar spread trade.
	TradeActionPair TradeAction = "pair"
)

// Trade is one entry of the append-only trade log.
type Trade struct {
	// Time of the bar the trade executed on
	Time time.Time `csv:"time" json:"time" yaml:"time"`
	// BarIndex is the index of that bar in the traded series
	BarIndex int `csv:"bar_index" json:"bar_index" yaml:"bar_index"`
	// Symbol of the primary leg
	Symbol string `csv:"symbol" json:"symbol" yaml:"symbol"`
	// Price is the primary leg close
	Price float64 `csv:"price" json:"price" yaml:"price"`
	// PairPrice is the second leg close. Zero for single-instrument trades.
	PairPrice float64 `csv:"pair_price" json:"pair_price,omitempty" yaml:"pair_price,omitempty"`
	// Direction is the exposure held after the trade
	Direction Signal `csv:"direction" json:"direction" yaml:"direction"`
	// Action describes what the trade did
	Action TradeAction `csv:"action" json:"action" yaml:"action"`
	// Multiplier is the cumulative return right after the trade
	Multiplier float64 `csv:"multiplier" json:"multiplier" yaml:"multiplier"`
}
