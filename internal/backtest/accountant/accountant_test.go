package accountant

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type AccountantTestSuite struct {
	suite.Suite
	start time.Time
}

func TestAccountantSuite(t *testing.T) {
	suite.Run(t, new(AccountantTestSuite))
}

func (suite *AccountantTestSuite) SetupTest() {
	suite.start = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *AccountantTestSuite) bars(closes ...float64) []types.MarketData {
	bars := make([]types.MarketData, len(closes))
	for i, c := range closes {
		bars[i] = types.MarketData{
			Symbol: "AAPL",
			Time:   suite.start.AddDate(0, 0, i),
			Close:  c,
		}
	}

	return bars
}

func (suite *AccountantTestSuite) pairFrame(closes, pairCloses []float64) types.IndicatorFrame {
	frame := types.NewIndicatorFrame(types.NewPriceSeries("KO", suite.bars(closes...)))
	frame.PairSymbol = "PEP"
	frame.PairClose = pairCloses

	return frame
}

func (suite *AccountantTestSuite) TestSingleFlipCompoundsReturn() {
	bars := suite.bars(100, 100, 110, 121, 110, 99, 88)
	positions := []types.Signal{0, 1, 1, 1, -1, 0, -1}

	ledger, err := Single(bars, positions)
	suite.Require().NoError(err)

	suite.Require().Len(ledger.Trades, 2)
	suite.Equal(1, ledger.Trades[0].BarIndex)
	suite.Equal(types.TradeActionOpen, ledger.Trades[0].Action)
	suite.Equal(types.SignalLong, ledger.Trades[0].Direction)
	suite.Equal(100.0, ledger.Trades[0].Price)

	suite.Equal(4, ledger.Trades[1].BarIndex)
	suite.Equal(types.TradeActionFlip, ledger.Trades[1].Action)
	suite.Equal(types.SignalShort, ledger.Trades[1].Direction)
	suite.InDelta(1.1, ledger.Trades[1].Multiplier, 1e-12)

	suite.Len(ledger.CumulativeReturns, len(bars))

	expected := []float64{1, 1, 1, 1, 1.1, 1.1, 1.1}
	for i := range expected {
		suite.InDelta(expected[i], ledger.CumulativeReturns[i], 1e-12, "bar %d", i)
	}
}

func (suite *AccountantTestSuite) TestSingleShortLeg() {
	ledger, err := Single(suite.bars(100, 100, 80), []types.Signal{0, -1, 1})
	suite.Require().NoError(err)

	suite.Len(ledger.Trades, 2)
	suite.InDelta(1.25, ledger.CumulativeReturns[2], 1e-12)
}

func (suite *AccountantTestSuite) TestSingleReturnToFlatKeepsLeg() {
	ledger, err := Single(suite.bars(100, 100, 120, 130, 90), []types.Signal{0, 1, 0, 1, -1})
	suite.Require().NoError(err)

	// the leg opened on bar 1 is closed by the flip on bar 4
	suite.Require().Len(ledger.Trades, 2)
	suite.Equal(1, ledger.Trades[0].BarIndex)
	suite.Equal(4, ledger.Trades[1].BarIndex)
	suite.InDelta(0.9, ledger.CumulativeReturns[4], 1e-12)
}

func (suite *AccountantTestSuite) TestSingleAllFlat() {
	bars := suite.bars(100, 101, 99, 102)
	ledger, err := Single(bars, types.FlatSignals(len(bars)))
	suite.Require().NoError(err)

	suite.Empty(ledger.Trades)
	suite.Equal([]float64{1, 1, 1, 1}, ledger.CumulativeReturns)
}

func (suite *AccountantTestSuite) TestSingleEmpty() {
	ledger, err := Single(nil, nil)
	suite.Require().NoError(err)
	suite.Empty(ledger.Trades)
	suite.Empty(ledger.CumulativeReturns)
}

func (suite *AccountantTestSuite) TestSingleTradeTimesIncrease() {
	bars := suite.bars(100, 100, 105, 95, 100, 110, 90, 95)
	ledger, err := Single(bars, []types.Signal{0, 1, -1, 1, -1, 1, -1, 1})
	suite.Require().NoError(err)

	suite.Len(ledger.Trades, 7)

	for i := 1; i < len(ledger.Trades); i++ {
		suite.True(ledger.Trades[i].Time.After(ledger.Trades[i-1].Time))
	}
}

func (suite *AccountantTestSuite) TestSingleLengthMismatch() {
	_, err := Single(suite.bars(1, 2, 3), []types.Signal{0, 1})
	suite.True(errors.HasCode(err, errors.ErrCodeSeriesMisaligned))
	suite.Equal(errors.CategoryComputation, errors.CategoryOf(err))
}

func (suite *AccountantTestSuite) TestSingleNonFinite() {
	_, err := Single(suite.bars(1, 0, 5), []types.Signal{0, 1, -1})
	suite.True(errors.HasCode(err, errors.ErrCodeNonFiniteValue))
}

func (suite *AccountantTestSuite) TestPair() {
	frame := suite.pairFrame([]float64{100, 100, 100, 100}, []float64{100, 110, 121, 130})
	ledger, err := Pair(frame, []types.Signal{0, 1, -1, 0})
	suite.Require().NoError(err)

	suite.Require().Len(ledger.Trades, 2)
	suite.Equal(types.TradeActionPair, ledger.Trades[0].Action)
	suite.Equal(110.0, ledger.Trades[0].PairPrice)
	suite.Equal("KO", ledger.Trades[0].Symbol)

	suite.Len(ledger.CumulativeReturns, 4)
	suite.InDelta(1.0, ledger.CumulativeReturns[0], 1e-12)
	suite.InDelta(1.1, ledger.CumulativeReturns[1], 1e-12)
	suite.InDelta(1.1/1.21, ledger.CumulativeReturns[2], 1e-12)
	suite.Equal(ledger.CumulativeReturns[2], ledger.CumulativeReturns[3])
}

func (suite *AccountantTestSuite) TestPairEveryBarTrades() {
	frame := suite.pairFrame([]float64{10, 10, 10}, []float64{10, 10, 10})
	ledger, err := Pair(frame, []types.Signal{0, 1, 1})
	suite.Require().NoError(err)
	suite.Len(ledger.Trades, 2)
}

func (suite *AccountantTestSuite) TestPairErrors() {
	single := types.NewIndicatorFrame(types.NewPriceSeries("KO", suite.bars(1, 2)))
	_, err := Pair(single, []types.Signal{0, 0})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidMarketData))

	frame := suite.pairFrame([]float64{1, 2}, []float64{1, 2})
	_, err = Pair(frame, []types.Signal{0})
	suite.True(errors.HasCode(err, errors.ErrCodeSeriesMisaligned))

	frame = suite.pairFrame([]float64{1, 0}, []float64{1, 2})
	_, err = Pair(frame, []types.Signal{0, 1})
	suite.True(errors.HasCode(err, errors.ErrCodeNonFiniteValue))
}
