// Package simulation runs a backtest end to end: it fetches market data, runs the
// engine, persists the run and optionally writes a report.
package simulation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/config"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/report"
	"github.com/rxtech-lab/argo-backtest/internal/store"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/rxtech-lab/argo-backtest/pkg/marketdata"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTicker     = "AAPL"
	DefaultPairTicker = "SPY"
)

// Request describes one simulation. Empty fields take the defaults from
// NewRequest.
type Request struct {
	Algorithm types.StrategyType `json:"algorithm" validate:"required"`
	Ticker    string             `json:"ticker"`
	// Ticker2 is the second leg of pair strategies.
	Ticker2  string `json:"ticker2"`
	Period   string `json:"period"`
	Interval string `json:"interval"`
	// Params are flattened into the request: {"algorithm": "mean_reversion", "time_window": 30}.
	strategy.Params
	// Report writes stats.yaml, trades.parquet and equity.parquet when a results folder is configured.
	Report bool `json:"report"`
}

// Response is the outcome of a simulation.
type Response struct {
	ID        string                `json:"id"`
	Algorithm types.StrategyType    `json:"algorithm"`
	Tickers   []string              `json:"tickers"`
	Period    string                `json:"period"`
	Interval  string                `json:"interval"`
	Beta      float64               `json:"beta"`
	Stats     types.SimulationStats `json:"stats"`
	Trades    []types.Trade         `json:"trades"`
	Report    *report.Files         `json:"report,omitempty"`
	Result    *engine.Result        `json:"-"`
}

// Configuration lists what a caller can choose from.
type Configuration struct {
	Algorithms []types.StrategyType  `json:"algorithms"`
	Periods    []string              `json:"periods"`
	Intervals  []marketdata.Interval `json:"intervals"`
	Providers  []string              `json:"providers"`
	Defaults   ConfigurationDefaults `json:"defaults"`
	Params     strategy.Params       `json:"params"`
}

// ConfigurationDefaults are the values applied to empty request fields.
type ConfigurationDefaults struct {
	Ticker          string  `json:"ticker"`
	Ticker2         string  `json:"ticker2"`
	Period          string  `json:"period"`
	Interval        string  `json:"interval"`
	BenchmarkTicker string  `json:"benchmark_ticker"`
	RiskFreeRate    float64 `json:"risk_free_rate"`
}

// SupportedPeriods are the lookbacks offered to callers. Any "<n>d|w|mo|y" is accepted.
var SupportedPeriods = []string{"1mo", "3mo", "6mo", "12mo", "2y", "5y", "10y"}

// Service runs simulations. It is safe for concurrent use.
type Service struct {
	config   config.Config
	provider marketdata.Provider
	beta     marketdata.BetaProvider
	engine   engine.Engine
	store    store.RunStore
	logger   *logger.Logger
}

// NewService creates a simulation service. beta may be nil, in which case every run uses
// the default beta.
func NewService(cfg config.Config, provider marketdata.Provider, beta marketdata.BetaProvider, eng engine.Engine, runStore store.RunStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Service{
		config:   cfg,
		provider: provider,
		beta:     beta,
		engine:   eng,
		store:    runStore,
		logger:   log,
	}
}

// NewRequest returns a request for algorithm filled with the configured defaults.
func (s *Service) NewRequest(algorithm types.StrategyType) Request {
	return Request{
		Algorithm: algorithm,
		Ticker:    DefaultTicker,
		Ticker2:   DefaultPairTicker,
		Period:    s.config.Period,
		Interval:  s.config.Interval,
		Params:    s.config.Strategy,
	}
}

// Configuration returns the supported algorithms, periods, intervals and providers.
func (s *Service) Configuration() Configuration {
	return Configuration{
		Algorithms: types.AllStrategyTypes,
		Periods:    SupportedPeriods,
		Intervals:  marketdata.SupportedIntervals,
		Providers:  marketdata.GetSupportedProviders(),
		Defaults: ConfigurationDefaults{
			Ticker:          DefaultTicker,
			Ticker2:         DefaultPairTicker,
			Period:          s.config.Period,
			Interval:        s.config.Interval,
			BenchmarkTicker: s.config.BenchmarkTicker,
			RiskFreeRate:    s.config.RiskFreeRate,
		},
		Params: s.config.Strategy,
	}
}

// Statistics aggregates the stored runs per algorithm.
func (s *Service) Statistics(ctx context.Context) ([]store.AlgorithmStatistics, error) {
	return s.store.Statistics(ctx)
}

// Runs lists stored runs, newest first.
func (s *Service) Runs(ctx context.Context, filter store.ListRunsFilter) ([]store.RunRecord, error) {
	return s.store.ListRuns(ctx, filter)
}

// Simulate runs the request through fetch, engine, persistence and reporting.
func (s *Service) Simulate(ctx context.Context, req Request, callbacks engine.LifecycleCallbacks) (*Response, error) {
	req = s.withDefaults(req)

	if err := validator.New().Struct(req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid simulation request", err)
	}

	if !req.Algorithm.IsValid() {
		return nil, errors.Newf(errors.ErrCodeInvalidStrategy, "unknown algorithm %q", req.Algorithm)
	}

	s.logger.Info("Running simulation",
		zap.String("algorithm", string(req.Algorithm)),
		zap.String("ticker", req.Ticker),
		zap.String("period", req.Period),
		zap.String("interval", req.Interval),
	)

	data, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	beta := marketdata.BetaOrDefault(ctx, s.beta, req.Ticker, s.logger)

	result, err := s.engine.Run(engine.RunRequest{
		Series:       data.series,
		Strategy:     req.Algorithm,
		Params:       req.Params,
		PairSeries:   data.pair,
		Benchmark:    data.benchmark,
		Beta:         optional.Some(beta),
		Period:       req.Period,
		Interval:     req.Interval,
		RiskFreeRate: s.config.RiskFreeRate,
	}, callbacks)
	if err != nil {
		return nil, err
	}

	tickers := []string{req.Ticker}
	if req.Algorithm.IsPair() {
		tickers = append(tickers, req.Ticker2)
	}

	record, err := s.store.SaveRun(ctx, store.RunRecord{
		ID:        uuid.NewString(),
		Algorithm: req.Algorithm,
		Tickers:   tickers,
		Period:    req.Period,
		Interval:  req.Interval,
		Params:    req.Params,
		Stats:     result.Stats.Rounded(s.config.Precision),
	})
	if err != nil {
		return nil, err
	}

	response := &Response{
		ID:        record.ID,
		Algorithm: req.Algorithm,
		Tickers:   tickers,
		Period:    req.Period,
		Interval:  req.Interval,
		Beta:      beta,
		Stats:     record.Stats,
		Trades:    result.Trades,
		Result:    result,
	}

	if req.Report && s.config.ResultsFolder != "" {
		header := types.StatsReport{
			ID:        record.ID,
			Timestamp: record.Timestamp,
			Strategy:  req.Algorithm,
			Symbol:    req.Ticker,
			Period:    req.Period,
			Interval:  req.Interval,
		}
		if req.Algorithm.IsPair() {
			header.PairSymbol = req.Ticker2
		}

		files, err := report.Write(filepath.Join(s.config.ResultsFolder, record.ID), header, result)
		if err != nil {
			return nil, err
		}

		response.Report = &files
	}

	s.logger.Info("Simulation finished",
		zap.String("id", record.ID),
		zap.Int("trades", len(result.Trades)),
		zap.Float64("strategy_result", result.Stats[types.StatStrategyResult]),
	)

	return response, nil
}

func (s *Service) withDefaults(req Request) Request {
	req.Ticker = strings.TrimSpace(req.Ticker)
	req.Ticker2 = strings.TrimSpace(req.Ticker2)

	if req.Ticker == "" {
		req.Ticker = DefaultTicker
	}

	if req.Ticker2 == "" {
		req.Ticker2 = DefaultPairTicker
	}

	if req.Period == "" {
		req.Period = s.config.Period
	}

	if req.Interval == "" {
		req.Interval = s.config.Interval
	}

	if req.Params == (strategy.Params{}) {
		req.Params = s.config.Strategy
	}

	return req
}

type marketData struct {
	series    types.PriceSeries
	pair      optional.Option[types.PriceSeries]
	benchmark types.PriceSeries
}

// fetch loads the ticker, the pair leg and the benchmark concurrently. A missing
// benchmark only drops alpha.
func (s *Service) fetch(ctx context.Context, req Request) (marketData, error) {
	var (
		data = marketData{pair: optional.None[types.PriceSeries]()}
		pair types.PriceSeries
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		series, err := s.provider.Fetch(gctx, req.Ticker, req.Period, req.Interval)
		if err != nil {
			return err
		}

		data.series = series

		return nil
	})

	if req.Algorithm.IsPair() {
		g.Go(func() error {
			series, err := s.provider.Fetch(gctx, req.Ticker2, req.Period, req.Interval)
			if err != nil {
				return err
			}

			pair = series

			return nil
		})
	}

	g.Go(func() error {
		benchmark, err := s.provider.Fetch(gctx, s.config.BenchmarkTicker, req.Period, req.Interval)
		if err != nil {
			s.logger.Warn("Benchmark unavailable, alpha will be omitted",
				zap.String("benchmark", s.config.BenchmarkTicker),
				zap.Error(err),
			)

			return nil
		}

		data.benchmark = benchmark

		return nil
	})

	if err := g.Wait(); err != nil {
		return marketData{}, err
	}

	if req.Algorithm.IsPair() {
		data.pair = optional.Some(pair)
	}

	return data, nil
}
