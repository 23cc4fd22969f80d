package strategy

import (
	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Strategy derives a per-bar signal from a price series in two steps.
// Prepare computes the indicators; Signal turns them into exposures.
// Neither step modifies its input.
type Strategy interface {
	// Name returns the tag of the strategy
	Name() types.StrategyType
	// WarmUp returns the number of bars needed before a signal can be non-flat
	WarmUp() int
	// Prepare derives the indicator frame from series
	Prepare(series types.PriceSeries) (types.IndicatorFrame, error)
	// Signal returns one signal per bar of frame
	Signal(frame types.IndicatorFrame) ([]types.Signal, error)
}

// Params holds the parameters of every built-in strategy.
// Each strategy reads only the fields it needs.
type Params struct {
	TimeWindow     int     `yaml:"time_window" json:"time_window" validate:"gt=0" jsonschema:"title=Time Window,description=Rolling window of the mean reversion bands,minimum=1,default=20"`
	RSIShortPeriod int     `yaml:"rsi_short_period" json:"rsi_short_period" validate:"gt=0" jsonschema:"title=RSI Short Period,description=Period of the fast RSI,minimum=1,default=14"`
	RSILongPeriod  int     `yaml:"rsi_long_period" json:"rsi_long_period" validate:"gt=0" jsonschema:"title=RSI Long Period,description=Period of the slow RSI,minimum=1,default=28"`
	EntryThreshold float64 `yaml:"entry_threshold" json:"entry_threshold" validate:"gte=0" jsonschema:"title=Entry Threshold,description=Spread z-score that opens a position,minimum=0,default=2"`
	ExitThreshold  float64 `yaml:"exit_threshold" json:"exit_threshold" validate:"gte=0" jsonschema:"title=Exit Threshold,description=Spread z-score band that flattens the position,minimum=0,default=0"`
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{
		TimeWindow:     20,
		RSIShortPeriod: 14,
		RSILongPeriod:  28,
		EntryThreshold: 2,
		ExitThreshold:  0,
	}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid strategy parameters", err)
	}

	return nil
}

// New creates the strategy tagged kind. Arbitrage requires the pair series.
func New(kind types.StrategyType, params Params, pair optional.Option[types.PriceSeries], log *logger.Logger) (Strategy, error) {
	if !kind.IsValid() {
		return nil, errors.Newf(errors.ErrCodeInvalidStrategy, "unknown strategy %q", kind)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	var (
		strategy Strategy
		err      error
	)

	switch kind {
	case types.StrategyTypeMeanReversion:
		strategy, err = NewMeanReversion(params.TimeWindow)
	case types.StrategyTypeDoubleRSI:
		strategy, err = NewDoubleRSI(params.RSIShortPeriod, params.RSILongPeriod, log)
	case types.StrategyTypeArbitrage:
		if pair.IsNone() {
			return nil, errors.New(errors.ErrCodeMissingParameter, "arbitrage needs a second price series")
		}

		strategy, err = NewArbitrage(params.EntryThreshold, params.ExitThreshold, pair.Unwrap(), log)
	}

	if err != nil {
		return nil, err
	}

	return strategy, nil
}
