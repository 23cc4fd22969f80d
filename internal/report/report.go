// Package report writes the artifacts of a completed run for chart renderers.
package report

import (
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

const (
	StatsFileName  = "stats.yaml"
	TradesFileName = "trades.parquet"
	EquityFileName = "equity.parquet"
)

// Files are the paths written by Write.
type Files struct {
	Stats  string `json:"stats" yaml:"stats"`
	Trades string `json:"trades" yaml:"trades"`
	Equity string `json:"equity" yaml:"equity"`
}

// Write creates dir and writes the statistics, the trade log and the per-bar equity
// curve of result into it. header carries the run metadata; its Stats are replaced
// by the result's.
func Write(dir string, header types.StatsReport, result *engine.Result) (Files, error) {
	if result == nil {
		return Files{}, errors.New(errors.ErrCodeReportFailed, "no result to report")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, errors.Wrapf(errors.ErrCodeReportFailed, err, "failed to create %s", dir)
	}

	files := Files{
		Stats:  filepath.Join(dir, StatsFileName),
		Trades: filepath.Join(dir, TradesFileName),
		Equity: filepath.Join(dir, EquityFileName),
	}

	header.Stats = result.Stats
	header.EngineVersion = version.GetVersion()
	if err := types.WriteStatsReport(files.Stats, header); err != nil {
		return Files{}, errors.Wrap(errors.ErrCodeReportFailed, "failed to write statistics", err)
	}

	if err := writeTrades(files.Trades, result.Trades); err != nil {
		return Files{}, err
	}

	if err := writeEquity(files.Equity, result); err != nil {
		return Files{}, err
	}

	return files, nil
}

// Read loads the statistics written into dir by Write. Reports from an incompatible
// release are rejected.
func Read(dir string) (types.StatsReport, error) {
	header, err := types.ReadStatsReport(filepath.Join(dir, StatsFileName))
	if err != nil {
		return types.StatsReport{}, errors.Wrap(errors.ErrCodeReportFailed, "failed to read statistics", err)
	}

	if err := version.CheckCompatibility(version.GetVersion(), header.EngineVersion); err != nil {
		return types.StatsReport{}, errors.Wrapf(errors.ErrCodeReportFailed, err, "report in %s cannot be read", dir)
	}

	return header, nil
}

func writeTrades(path string, trades []types.Trade) error {
	w, err := newParquetWriter(path, []string{
		"time TIMESTAMP",
		"bar_index INTEGER",
		"symbol TEXT",
		"price DOUBLE",
		"pair_price DOUBLE",
		"direction TEXT",
		"action TEXT",
		"multiplier DOUBLE",
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, trade := range trades {
		err := w.Write(trade.Time, trade.BarIndex, trade.Symbol, trade.Price, trade.PairPrice,
			trade.Direction.String(), string(trade.Action), trade.Multiplier)
		if err != nil {
			return err
		}
	}

	return w.Finalize()
}

func writeEquity(path string, result *engine.Result) error {
	frame := result.Frame
	n := frame.Len()

	if n != len(result.CumulativeReturns) || n != len(result.Positions) || n != len(result.Signals) {
		return errors.Newf(errors.ErrCodeSeriesMisaligned, "result has %d bars, %d signals, %d positions and %d returns",
			n, len(result.Signals), len(result.Positions), len(result.CumulativeReturns))
	}

	w, err := newParquetWriter(path, []string{
		"time TIMESTAMP",
		"close DOUBLE",
		"pair_close DOUBLE",
		"signal INTEGER",
		"position INTEGER",
		"cumulative_return DOUBLE",
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for i := 0; i < n; i++ {
		var pairClose interface{}
		if frame.IsPair() {
			pairClose = frame.PairClose[i]
		}

		err := w.Write(frame.Time[i], frame.Close[i], pairClose,
			int(result.Signals[i]), int(result.Positions[i]), result.CumulativeReturns[i])
		if err != nil {
			return err
		}
	}

	return w.Finalize()
}
