package engine

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/accountant"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/performance"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/position"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

// BacktestEngine is the default Engine. It keeps no state between runs and can be
// shared by concurrent callers.
type BacktestEngine struct {
	logger *logger.Logger
}

// NewBacktestEngine creates an engine that logs to log.
func NewBacktestEngine(log *logger.Logger) *BacktestEngine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BacktestEngine{
		logger: log,
	}
}

// run holds the state of a single Run call.
type run struct {
	request   RunRequest
	callbacks LifecycleCallbacks
	strategy  strategy.Strategy
	result    *Result
}

func (b *BacktestEngine) Run(request RunRequest, callbacks LifecycleCallbacks) (*Result, error) {
	strat, err := b.validate(request)
	if err != nil {
		return nil, err
	}

	r := &run{
		request:   request,
		callbacks: callbacks,
		strategy:  strat,
		result: &Result{
			Strategy: request.Strategy,
			Series:   request.Series.Clone(),
		},
	}

	stages := []struct {
		stage Stage
		fn    func(r *run) error
	}{
		{StagePrepare, b.prepare},
		{StageSignal, b.signal},
		{StagePosition, b.trackPositions},
		{StageAccount, b.account},
		{StageStatistics, b.statistics},
	}

	for _, s := range stages {
		if err := b.runStage(r, s.stage, s.fn); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("Backtest finished",
		zap.String("strategy", string(request.Strategy)),
		zap.String("symbol", request.Series.Symbol),
		zap.Int("trades", len(r.result.Trades)),
		zap.Float64("strategy_result", r.result.Stats[types.StatStrategyResult]),
	)

	return r.result, nil
}

func (b *BacktestEngine) runStage(r *run, stage Stage, fn func(r *run) error) error {
	if r.callbacks.OnStageStart != nil {
		if err := (*r.callbacks.OnStageStart)(stage); err != nil {
			return errors.Wrapf(errors.ErrCodeBacktestStageFailed, err, "%s stage aborted by callback", stage)
		}
	}

	b.logger.Debug("Running backtest stage", zap.String("stage", string(stage)), zap.String("symbol", r.request.Series.Symbol))

	if err := fn(r); err != nil {
		// keep the stage's own code so callers can still tell what failed
		return errors.Wrapf(errors.GetCode(err), err, "%s stage failed", stage)
	}

	if r.callbacks.OnStageEnd != nil {
		(*r.callbacks.OnStageEnd)(stage)
	}

	return nil
}

// validate checks the request and builds the strategy.
func (b *BacktestEngine) validate(request RunRequest) (strategy.Strategy, error) {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid run request", err)
	}

	if request.Series.IsEmpty() {
		return nil, errors.NewInsufficientDataError(1, 0, request.Series.Symbol, "price series is empty")
	}

	if err := request.Series.Validate(); err != nil {
		return nil, err
	}

	if request.PairSeries.IsSome() {
		if err := request.PairSeries.Unwrap().Validate(); err != nil {
			return nil, err
		}
	}

	if err := request.Benchmark.Validate(); err != nil {
		return nil, err
	}

	if _, err := performance.ParsePeriod(request.Period); err != nil {
		return nil, err
	}

	strat, err := strategy.New(request.Strategy, request.Params, request.PairSeries, b.logger)
	if err != nil {
		return nil, err
	}

	if request.Series.Len() < strat.WarmUp() {
		return nil, errors.NewInsufficientDataErrorf(strat.WarmUp(), request.Series.Len(), request.Series.Symbol,
			"%s needs at least %d bars, got %d", request.Strategy, strat.WarmUp(), request.Series.Len())
	}

	return strat, nil
}

func (b *BacktestEngine) prepare(r *run) error {
	frame, err := r.strategy.Prepare(r.result.Series)
	if err != nil {
		return err
	}

	if frame.Len() == 0 {
		return errors.NewInsufficientDataError(1, 0, r.request.Series.Symbol, "no bars left after aligning the input series")
	}

	r.result.Frame = frame

	return nil
}

func (b *BacktestEngine) signal(r *run) error {
	signals, err := r.strategy.Signal(r.result.Frame)
	if err != nil {
		return err
	}

	if len(signals) != r.result.Frame.Len() {
		return errors.Newf(errors.ErrCodeSeriesMisaligned, "strategy produced %d signals for %d bars", len(signals), r.result.Frame.Len())
	}

	r.result.Signals = signals

	return nil
}

func (b *BacktestEngine) trackPositions(r *run) error {
	r.result.Positions = position.Track(r.result.Signals)

	return nil
}

func (b *BacktestEngine) account(r *run) error {
	var (
		ledger accountant.Ledger
		err    error
	)

	if r.strategy.Name().IsPair() {
		ledger, err = accountant.Pair(r.result.Frame, r.result.Positions)
	} else {
		ledger, err = accountant.Single(r.result.Series.Bars, r.result.Positions)
	}

	if err != nil {
		return err
	}

	r.result.Trades = ledger.Trades
	r.result.CumulativeReturns = ledger.CumulativeReturns

	return nil
}

func (b *BacktestEngine) statistics(r *run) error {
	if r.request.Benchmark.IsEmpty() {
		b.logger.Warn("No benchmark data, alpha will be omitted", zap.String("symbol", r.request.Series.Symbol))
	}

	stats, err := performance.Calculate(performance.Input{
		CumulativeReturns: r.result.CumulativeReturns,
		Trades:            r.result.Trades,
		Closes:            r.result.Frame.Close,
		Pair:              r.strategy.Name().IsPair(),
		Period:            r.request.Period,
		RiskFreeRate:      r.request.RiskFreeRate,
		BenchmarkCloses:   r.request.Benchmark.Closes(),
		Beta:              r.request.Beta,
	})
	if err != nil {
		return err
	}

	r.result.Stats = stats

	return nil
}
