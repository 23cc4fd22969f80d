package types

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Names of the metrics a run can produce.
const (
	StatTradeCount       = "trade_count"
	StatProfitableTrades = "profitable_trades"
	StatStrategyResult   = "strategy_result"
	StatMaxProfit        = "max_profit"
	StatMaxLoss          = "max_loss"
	StatHoldingResult    = "holding_result"
	StatSharpeRatio      = "sharpe_ratio"
	StatSortinoRatio     = "sortino_ratio"
	StatAlpha            = "alpha"
)

// AllStatNames lists every metric name in report order.
var AllStatNames = []string{
	StatTradeCount,
	StatProfitableTrades,
	StatStrategyResult,
	StatMaxProfit,
	StatMaxLoss,
	StatHoldingResult,
	StatSharpeRatio,
	StatSortinoRatio,
	StatAlpha,
}

// SimulationStats maps metric names to values. A missing key means the metric is
// undefined for the run (for example a Sharpe ratio under zero variance).
type SimulationStats map[string]float64

// Get returns the named metric if the run produced it.
func (s SimulationStats) Get(name string) optional.Option[float64] {
	value, ok := s[name]
	if !ok {
		return optional.None[float64]()
	}

	return optional.Some(value)
}

// Has reports whether the named metric is present.
func (s SimulationStats) Has(name string) bool {
	_, ok := s[name]

	return ok
}

// Names returns the present metric names sorted alphabetically.
func (s SimulationStats) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Rounded returns a copy with every value rounded half away from zero to places decimals.
func (s SimulationStats) Rounded(places int32) SimulationStats {
	rounded := make(SimulationStats, len(s))
	for name, value := range s {
		rounded[name], _ = decimal.NewFromFloat(value).Round(places).Float64()
	}

	return rounded
}

// StatsReport is the on-disk form of a completed run's statistics.
type StatsReport struct {
	// ID is the unique identifier for this run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Strategy that produced the stats.
	Strategy StrategyType `yaml:"strategy" json:"strategy"`
	// Symbol of the traded instrument.
	Symbol string `yaml:"symbol" json:"symbol"`
	// PairSymbol of the second leg for pair strategies.
	PairSymbol string `yaml:"pair_symbol,omitempty" json:"pair_symbol,omitempty"`
	// Period and Interval the market data was requested with.
	Period   string `yaml:"period" json:"period"`
	Interval string `yaml:"interval" json:"interval"`
	// EngineVersion of the binary that wrote the report.
	EngineVersion string `yaml:"engine_version,omitempty" json:"engine_version,omitempty"`
	// Stats of the run.
	Stats SimulationStats `yaml:"stats" json:"stats"`
}

func WriteStatsReport(path string, report StatsReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal stats report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats report to file: %w", err)
	}

	return nil
}

func ReadStatsReport(path string) (StatsReport, error) {
	var report StatsReport

	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("failed to read stats report: %w", err)
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("failed to unmarshal stats report: %w", err)
	}

	return report, nil
}
