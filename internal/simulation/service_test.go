package simulation_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/config"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/simulation"
	"github.com/rxtech-lab/argo-backtest/internal/store"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	provider  *mocks.MockProvider
	beta      *mocks.MockBetaProvider
	store     *mocks.MockRunStore
	config    config.Config
	series    types.PriceSeries
	benchmark types.PriceSeries
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.provider = mocks.NewMockProvider(suite.ctrl)
	suite.beta = mocks.NewMockBetaProvider(suite.ctrl)
	suite.store = mocks.NewMockRunStore(suite.ctrl)
	suite.config = config.Default()

	gen := mocks.NewDataGenerator(42)
	benchConfig := mocks.DefaultConfig()
	benchConfig.Symbol = "SPY"
	suite.benchmark = gen.GenerateSeries(benchConfig)
	suite.series = gen.GenerateCorrelated("AAPL", suite.benchmark, 1.3, 0.01)
}

func (suite *ServiceTestSuite) service() *simulation.Service {
	return simulation.NewService(suite.config, suite.provider, suite.beta, engine.NewBacktestEngine(nil), suite.store, logger.NewNopLogger())
}

func (suite *ServiceTestSuite) expectSave() {
	suite.store.EXPECT().SaveRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record store.RunRecord) (store.RunRecord, error) {
			record.Timestamp = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

			return record, nil
		})
}

func (suite *ServiceTestSuite) TestSimulate() {
	suite.provider.EXPECT().Fetch(gomock.Any(), "AAPL", "12mo", "1d").Return(suite.series, nil)
	suite.provider.EXPECT().Fetch(gomock.Any(), "SPY", "12mo", "1d").Return(suite.benchmark, nil)
	suite.beta.EXPECT().FetchBeta(gomock.Any(), "AAPL").Return(1.25, nil)
	suite.expectSave()

	svc := suite.service()

	response, err := svc.Simulate(context.Background(), svc.NewRequest(types.StrategyTypeDoubleRSI), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	suite.NotEmpty(response.ID)
	suite.Equal([]string{"AAPL"}, response.Tickers)
	suite.Equal(1.25, response.Beta)
	suite.Equal(response.Result.Stats.Rounded(4), response.Stats)
	suite.True(response.Stats.Has(types.StatAlpha))
	suite.Equal(len(response.Result.Trades), int(response.Stats[types.StatTradeCount]))
	suite.Nil(response.Report)
}

func (suite *ServiceTestSuite) TestSimulateFillsDefaults() {
	suite.provider.EXPECT().Fetch(gomock.Any(), "AAPL", "12mo", "1d").Return(suite.series, nil)
	suite.provider.EXPECT().Fetch(gomock.Any(), "SPY", "12mo", "1d").Return(suite.benchmark, nil)
	suite.beta.EXPECT().FetchBeta(gomock.Any(), "AAPL").Return(1.0, nil)
	suite.store.EXPECT().SaveRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record store.RunRecord) (store.RunRecord, error) {
			suite.Equal("12mo", record.Period)
			suite.Equal("1d", record.Interval)
			suite.Equal(suite.config.Strategy, record.Params)

			return record, nil
		})

	_, err := suite.service().Simulate(context.Background(), simulation.Request{Algorithm: types.StrategyTypeMeanReversion}, engine.LifecycleCallbacks{})
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestSimulatePair() {
	pair := mocks.NewDataGenerator(3).GenerateCorrelated("MSFT", suite.series, 1, 0.005)

	suite.provider.EXPECT().Fetch(gomock.Any(), "AAPL", "6mo", "1d").Return(suite.series, nil)
	suite.provider.EXPECT().Fetch(gomock.Any(), "MSFT", "6mo", "1d").Return(pair, nil)
	suite.provider.EXPECT().Fetch(gomock.Any(), "SPY", "6mo", "1d").Return(suite.benchmark, nil)
	suite.beta.EXPECT().FetchBeta(gomock.Any(), "AAPL").Return(1.0, nil)
	suite.expectSave()

	svc := suite.service()
	req := svc.NewRequest(types.StrategyTypeArbitrage)
	req.Ticker2 = "MSFT"
	req.Period = "6mo"

	response, err := svc.Simulate(context.Background(), req, engine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Equal([]string{"AAPL", "MSFT"}, response.Tickers)
	suite.True(response.Result.Frame.IsPair())
}

func (suite *ServiceTestSuite) TestSimulateWithoutBenchmark() {
	suite.provider.EXPECT().Fetch(gomock.Any(), "AAPL", "12mo", "1d").Return(suite.series, nil)
	suite.provider.EXPECT().Fetch(gomock.Any(), "SPY", "12mo", "1d").
		Return(types.PriceSeries{}, errors.New(errors.ErrCodeDataNotFound, "no bars"))
	suite.beta.EXPECT().FetchBeta(gomock.Any(), "AAPL").Return(1.0, nil)
	suite.expectSave()

	svc := suite.service()

	response, err := svc.Simulate(context.Background(), svc.NewRequest(types.StrategyTypeDoubleRSI), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.False(response.Stats.Has(types.StatAlpha))
}

func (suite *ServiceTestSuite) TestSimulateBetaFallback() {
	suite.provider.EXPECT().Fetch(gomock.Any(), gomock.Any(), "12mo", "1d").Return(suite.series, nil).Times(2)
	suite.beta.EXPECT().FetchBeta(gomock.Any(), "AAPL").Return(0.0, errors.New(errors.ErrCodeBetaUnavailable, "no beta"))
	suite.expectSave()

	svc := suite.service()

	response, err := svc.Simulate(context.Background(), svc.NewRequest(types.StrategyTypeDoubleRSI), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Equal(1.0, response.Beta)
}

func (suite *ServiceTestSuite) TestSimulateFetchFailure() {
	suite.provider.EXPECT().Fetch(gomock.Any(), "AAPL", "12mo", "1d").
		Return(types.PriceSeries{}, errors.New(errors.ErrCodeDataNotFound, "no bars")).AnyTimes()
	suite.provider.EXPECT().Fetch(gomock.Any(), "SPY", "12mo", "1d").Return(suite.benchmark, nil).AnyTimes()

	svc := suite.service()

	_, err := svc.Simulate(context.Background(), svc.NewRequest(types.StrategyTypeDoubleRSI), engine.LifecycleCallbacks{})
	suite.Equal(errors.CategoryDataUnavailable, errors.CategoryOf(err))
}

func (suite *ServiceTestSuite) TestSimulateInvalidAlgorithm() {
	_, err := suite.service().Simulate(context.Background(), simulation.Request{Algorithm: "momentum"}, engine.LifecycleCallbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStrategy))

	_, err = suite.service().Simulate(context.Background(), simulation.Request{}, engine.LifecycleCallbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *ServiceTestSuite) TestSimulateEngineFailure() {
	eng := mocks.NewMockEngine(suite.ctrl)
	eng.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, errors.NewInsufficientDataError(28, 3, "AAPL", "too short"))

	suite.provider.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(suite.series, nil).Times(2)
	suite.beta.EXPECT().FetchBeta(gomock.Any(), "AAPL").Return(1.0, nil)

	svc := simulation.NewService(suite.config, suite.provider, suite.beta, eng, suite.store, nil)

	_, err := svc.Simulate(context.Background(), svc.NewRequest(types.StrategyTypeDoubleRSI), engine.LifecycleCallbacks{})
	suite.Equal(errors.CategoryInsufficientData, errors.CategoryOf(err))
}

func (suite *ServiceTestSuite) TestSimulateWritesReport() {
	suite.config.ResultsFolder = suite.T().TempDir()

	suite.provider.EXPECT().Fetch(gomock.Any(), "AAPL", "12mo", "1d").Return(suite.series, nil)
	suite.provider.EXPECT().Fetch(gomock.Any(), "SPY", "12mo", "1d").Return(suite.benchmark, nil)
	suite.expectSave()

	// no beta provider at all
	svc := simulation.NewService(suite.config, suite.provider, nil, engine.NewBacktestEngine(nil), suite.store, nil)
	req := svc.NewRequest(types.StrategyTypeMeanReversion)
	req.Report = true

	response, err := svc.Simulate(context.Background(), req, engine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Require().NotNil(response.Report)

	for _, path := range []string{response.Report.Stats, response.Report.Trades, response.Report.Equity} {
		_, err := os.Stat(path)
		suite.NoError(err, path)
	}

	stats, err := types.ReadStatsReport(response.Report.Stats)
	suite.Require().NoError(err)
	suite.Equal(response.ID, stats.ID)
	suite.Equal("AAPL", stats.Symbol)
}

func (suite *ServiceTestSuite) TestStatisticsAndRuns() {
	expected := []store.AlgorithmStatistics{{Algorithm: types.StrategyTypeDoubleRSI, Runs: 3}}
	suite.store.EXPECT().Statistics(gomock.Any()).Return(expected, nil)
	suite.store.EXPECT().ListRuns(gomock.Any(), store.ListRunsFilter{Limit: 5}).Return([]store.RunRecord{}, nil)

	svc := suite.service()

	statistics, err := svc.Statistics(context.Background())
	suite.Require().NoError(err)
	suite.Equal(expected, statistics)

	runs, err := svc.Runs(context.Background(), store.ListRunsFilter{Limit: 5})
	suite.Require().NoError(err)
	suite.Empty(runs)
}

func (suite *ServiceTestSuite) TestConfiguration() {
	configuration := suite.service().Configuration()

	suite.Equal(types.AllStrategyTypes, configuration.Algorithms)
	suite.Contains(configuration.Periods, "12mo")
	suite.Len(configuration.Intervals, 15)
	suite.Equal("SPY", configuration.Defaults.BenchmarkTicker)
	suite.Equal("AAPL", configuration.Defaults.Ticker)
}
