package types

// StrategyType is the tag the orchestrator dispatches on.
type StrategyType string

const (
	StrategyTypeMeanReversion StrategyType = "mean_reversion"
	StrategyTypeDoubleRSI     StrategyType = "double_rsi"
	StrategyTypeArbitrage     StrategyType = "arbitrage"
)

// AllStrategyTypes lists the built-in strategies in a stable order.
var AllStrategyTypes = []StrategyType{
	StrategyTypeDoubleRSI,
	StrategyTypeMeanReversion,
	StrategyTypeArbitrage,
}

// IsValid reports whether s names a built-in strategy.
func (s StrategyType) IsValid() bool {
	for _, t := range AllStrategyTypes {
		if t == s {
			return true
		}
	}

	return false
}

// IsPair reports whether the strategy trades a spread between two instruments.
func (s StrategyType) IsPair() bool {
	return s == StrategyTypeArbitrage
}
