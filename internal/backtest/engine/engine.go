package engine

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Stage is one step of a backtest run. Stages always run in the order of Stages.
type Stage string

const (
	StagePrepare    Stage = "prepare"
	StageSignal     Stage = "signal"
	StagePosition   Stage = "position"
	StageAccount    Stage = "account"
	StageStatistics Stage = "statistics"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StagePrepare, StageSignal, StagePosition, StageAccount, StageStatistics}

// Lifecycle callback types for backtest stages
// All callbacks with error return can abort execution if they return an error

// OnStageStartCallback is called before a stage runs.
type OnStageStartCallback func(stage Stage) error

// OnStageEndCallback is called after a stage completed successfully.
type OnStageEndCallback func(stage Stage)

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnStageStart *OnStageStartCallback
	OnStageEnd   *OnStageEndCallback
}

// RunRequest is everything a run depends on. Two runs with equal requests produce
// equal results.
type RunRequest struct {
	// Series is the traded instrument. It is never modified.
	Series types.PriceSeries
	// Strategy selects the built-in strategy.
	Strategy types.StrategyType `validate:"required"`
	// Params of the strategy.
	Params strategy.Params
	// PairSeries is the second leg. Required for pair strategies.
	PairSeries optional.Option[types.PriceSeries]
	// Benchmark series over the same period. Empty skips alpha.
	Benchmark types.PriceSeries
	// Beta of Series against Benchmark. Defaults to 1.0.
	Beta optional.Option[float64]
	// Period of the data, such as "12mo". Used to derive the risk-free rate.
	Period string `validate:"required"`
	// Interval of the bars, such as "1d".
	Interval string
	// RiskFreeRate is the annual risk-free rate.
	RiskFreeRate float64 `validate:"gte=-1"`
}

// Result holds every structure a run produced. Renderers read the series, the
// trades and the cumulative returns from here.
type Result struct {
	Strategy          types.StrategyType
	Series            types.PriceSeries
	Frame             types.IndicatorFrame
	Signals           []types.Signal
	Positions         []types.Signal
	Trades            []types.Trade
	CumulativeReturns []float64
	Stats             types.SimulationStats
}

// Engine runs backtests.
type Engine interface {
	// Run executes prepare, signal, position, account and statistics in order.
	// The first failing stage aborts the run and no partial result is returned.
	Run(request RunRequest, callbacks LifecycleCallbacks) (*Result, error)
}
