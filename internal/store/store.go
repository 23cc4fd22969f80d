package store

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// RunRecord is the flattened, persisted form of one completed backtest.
type RunRecord struct {
	ID        string                `json:"id" yaml:"id"`
	Timestamp time.Time             `json:"timestamp" yaml:"timestamp"`
	Algorithm types.StrategyType    `json:"algorithm" yaml:"algorithm"`
	Tickers   []string              `json:"tickers" yaml:"tickers"`
	Period    string                `json:"period" yaml:"period"`
	Interval  string                `json:"interval" yaml:"interval"`
	Params    strategy.Params       `json:"params" yaml:"params"`
	Stats     types.SimulationStats `json:"stats" yaml:"stats"`
}

// ListRunsFilter narrows ListRuns. Zero values disable a filter.
type ListRunsFilter struct {
	Algorithm types.StrategyType
	Limit     uint64
}

// AlgorithmStatistics aggregates every stored run of one algorithm.
// Means skip runs where the metric is undefined and are None when no run defines it.
type AlgorithmStatistics struct {
	Algorithm          types.StrategyType       `json:"algorithm"`
	Runs               int                      `json:"runs"`
	MeanStrategyResult optional.Option[float64] `json:"mean_strategy_result"`
	MinStrategyResult  optional.Option[float64] `json:"min_strategy_result"`
	MaxStrategyResult  optional.Option[float64] `json:"max_strategy_result"`
	MeanSharpeRatio    optional.Option[float64] `json:"mean_sharpe_ratio"`
	MeanAlpha          optional.Option[float64] `json:"mean_alpha"`
}

// RunStore persists run records.
type RunStore interface {
	// SaveRun stores record, assigning an id and timestamp when they are empty.
	SaveRun(ctx context.Context, record RunRecord) (RunRecord, error)
	// ListRuns returns stored runs, newest first.
	ListRuns(ctx context.Context, filter ListRunsFilter) ([]RunRecord, error)
	// Statistics aggregates the stored runs per algorithm, ordered by algorithm.
	Statistics(ctx context.Context) ([]AlgorithmStatistics, error)
	Close() error
}
